package repository

import (
	"errors"

	"github.com/fadilmartias/ats-interviewer/internal/apperror"
	"github.com/fadilmartias/ats-interviewer/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ApplicationRepository struct {
	db *gorm.DB
}

func NewApplicationRepository(db *gorm.DB) *ApplicationRepository {
	return &ApplicationRepository{db}
}

// Create persists a new application. The unique (candidate_id, job_id) index
// makes this the atomic check-and-insert for duplicate applications: under
// concurrent applies exactly one insert wins and the rest surface
// DuplicateApplication.
func (r *ApplicationRepository) Create(app *model.Application) error {
	if err := r.db.Create(app).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperror.Wrap(apperror.KindDuplicateApplication, "already applied for this job", err)
		}
		return err
	}
	return nil
}

func (r *ApplicationRepository) FindByID(id string) (*model.Application, error) {
	var app model.Application
	err := r.db.First(&app, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.Wrap(apperror.KindApplicationNotFound, "application not found", err)
	}
	return &app, err
}

func (r *ApplicationRepository) ListByCandidate(candidateID string) ([]model.Application, error) {
	var apps []model.Application
	err := r.db.Where("candidate_id = ?", candidateID).Order("applied_at DESC").Find(&apps).Error
	return apps, err
}

func (r *ApplicationRepository) ListByJob(jobID string) ([]model.Application, error) {
	var apps []model.Application
	err := r.db.Where("job_id = ?", jobID).Order("applied_at DESC").Find(&apps).Error
	return apps, err
}

func (r *ApplicationRepository) CountByCandidate(candidateID string, status model.ApplicationStatus) (int64, error) {
	var count int64
	q := r.db.Model(&model.Application{}).Where("candidate_id = ?", candidateID)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	err := q.Count(&count).Error
	return count, err
}

func (r *ApplicationRepository) CountByStatus(status model.ApplicationStatus) (int64, error) {
	var count int64
	err := r.db.Model(&model.Application{}).Where("status = ?", status).Count(&count).Error
	return count, err
}

// AttachResume performs the Pending→Interviewing step and the interview
// creation as one transaction. The row is locked for the duration so the
// status check cannot race another attach; if the interview insert fails the
// resume update rolls back with it.
func (r *ApplicationRepository) AttachResume(id, resumePath, resumeText string, iv *model.Interview) (*model.Application, error) {
	var app model.Application
	err := r.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&app, "id = ?", id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.Wrap(apperror.KindApplicationNotFound, "application not found", err)
		}
		if err != nil {
			return err
		}
		if app.Status != model.ApplicationPending {
			return apperror.New(apperror.KindInvalidTransition, "resume can only be attached while pending")
		}

		app.ResumePath = resumePath
		app.ResumeText = resumeText
		app.Status = model.ApplicationInterviewing
		if err := tx.Save(&app).Error; err != nil {
			return err
		}

		iv.ApplicationID = app.ID
		if err := tx.Create(iv).Error; err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &app, nil
}

// TransitionStatus moves the application from exactly the given status to the
// next one. The WHERE guard makes the transition a compare-and-swap: it
// reports false when the row was not in the expected status, which callers
// use both for idempotency (already moved) and for conflict detection.
func (r *ApplicationRepository) TransitionStatus(id string, from, to model.ApplicationStatus) (bool, error) {
	res := r.db.Model(&model.Application{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}
