package repository

import (
	"errors"

	"github.com/fadilmartias/ats-interviewer/internal/apperror"
	"github.com/fadilmartias/ats-interviewer/internal/model"
	"gorm.io/gorm"
)

type JobRepository struct {
	db *gorm.DB
}

func NewJobRepository(db *gorm.DB) *JobRepository {
	return &JobRepository{db}
}

func (r *JobRepository) Create(job *model.Job) error {
	return r.db.Create(job).Error
}

func (r *JobRepository) Update(job *model.Job) error {
	return r.db.Save(job).Error
}

func (r *JobRepository) FindByID(id string) (*model.Job, error) {
	var j model.Job
	err := r.db.First(&j, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.Wrap(apperror.KindJobNotFound, "job not found", err)
	}
	return &j, err
}

func (r *JobRepository) ListActive(page, pageSize int) ([]model.Job, int64, error) {
	var jobs []model.Job
	var total int64

	q := r.db.Model(&model.Job{}).Where("status = ?", "active")
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&jobs).Error
	return jobs, total, err
}

func (r *JobRepository) ListByRecruiter(recruiterID string) ([]model.Job, error) {
	var jobs []model.Job
	err := r.db.Where("recruiter_id = ?", recruiterID).Order("created_at DESC").Find(&jobs).Error
	return jobs, err
}

func (r *JobRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&model.Job{}).Count(&count).Error
	return count, err
}
