package repository

import (
	"errors"

	"github.com/fadilmartias/ats-interviewer/internal/apperror"
	"github.com/fadilmartias/ats-interviewer/internal/model"
	"gorm.io/gorm"
)

type InterviewRepository struct {
	db *gorm.DB
}

func NewInterviewRepository(db *gorm.DB) *InterviewRepository {
	return &InterviewRepository{db}
}

// Create inserts the interview for an application. The unique index on
// application_id keeps the ownership 1:1 even if two creations race.
func (r *InterviewRepository) Create(iv *model.Interview) error {
	if err := r.db.Create(iv).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperror.Wrap(apperror.KindInvalidTransition, "interview already exists for application", err)
		}
		return err
	}
	return nil
}

func (r *InterviewRepository) FindByID(id string) (*model.Interview, error) {
	var iv model.Interview
	err := r.db.First(&iv, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.Wrap(apperror.KindInterviewNotFound, "interview not found", err)
	}
	return &iv, err
}

func (r *InterviewRepository) FindByApplicationID(applicationID string) (*model.Interview, error) {
	var iv model.Interview
	err := r.db.First(&iv, "application_id = ?", applicationID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.Wrap(apperror.KindInterviewNotFound, "interview not found", err)
	}
	return &iv, err
}

func (r *InterviewRepository) Save(iv *model.Interview) error {
	return r.db.Save(iv).Error
}

func (r *InterviewRepository) CountByStatus(status model.InterviewStatus) (int64, error) {
	var count int64
	err := r.db.Model(&model.Interview{}).Where("status = ?", status).Count(&count).Error
	return count, err
}
