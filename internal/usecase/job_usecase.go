package usecase

import (
	"context"

	"github.com/fadilmartias/ats-interviewer/internal/apperror"
	"github.com/fadilmartias/ats-interviewer/internal/model"
	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"go.uber.org/zap"
)

type JobCatalogStore interface {
	Create(job *model.Job) error
	Update(job *model.Job) error
	FindByID(id string) (*model.Job, error)
	ListActive(page, pageSize int) ([]model.Job, int64, error)
	ListByRecruiter(recruiterID string) ([]model.Job, error)
}

type UserStore interface {
	FindByID(id string) (*model.User, error)
}

type Embedder interface {
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)
}

// JobUsecase covers the job-posting collaborator surface: recruiters create
// and list postings, candidates browse active ones. Job descriptions get an
// embedding so the question bank can rank templates against them; embedding
// failure only costs relevance, never the posting.
type JobUsecase struct {
	jobs       JobCatalogStore
	apps       ApplicationStore
	interviews InterviewStore
	users      UserStore
	embedder   Embedder
	log        *zap.Logger
}

func NewJobUsecase(jobs JobCatalogStore, apps ApplicationStore, interviews InterviewStore, users UserStore, embedder Embedder, log *zap.Logger) *JobUsecase {
	return &JobUsecase{jobs: jobs, apps: apps, interviews: interviews, users: users, embedder: embedder, log: log}
}

func (uc *JobUsecase) Create(ctx context.Context, recruiterID uuid.UUID, title, description, requirements string) (*model.Job, error) {
	job := &model.Job{
		Title:        title,
		Description:  description,
		Requirements: requirements,
		RecruiterID:  recruiterID,
		Status:       "active",
	}
	if embedding, err := uc.embedder.GenerateEmbedding(ctx, description); err == nil {
		job.Embedding = pgvector.NewVector(embedding)
	} else {
		uc.log.Warn("job embedding failed", zap.Error(err))
	}
	if err := uc.jobs.Create(job); err != nil {
		return nil, err
	}
	return job, nil
}

func (uc *JobUsecase) Get(ctx context.Context, id string) (*model.Job, error) {
	return uc.jobs.FindByID(id)
}

func (uc *JobUsecase) ListActive(ctx context.Context, page, pageSize int) ([]model.Job, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return uc.jobs.ListActive(page, pageSize)
}

func (uc *JobUsecase) ListByRecruiter(ctx context.Context, recruiterID uuid.UUID) ([]model.Job, error) {
	return uc.jobs.ListByRecruiter(recruiterID.String())
}

// JobApplicationRow is one line of the recruiter's per-job applicant view.
type JobApplicationRow struct {
	Application    model.Application `json:"application"`
	CandidateName  string            `json:"candidate_name"`
	CandidateEmail string            `json:"candidate_email"`
	InterviewScore *float64          `json:"interview_score,omitempty"`
	InterviewState string            `json:"interview_status,omitempty"`
}

// ApplicationsForJob lists a job's applications with candidate identity and
// interview outcome, for the recruiter that owns the job.
func (uc *JobUsecase) ApplicationsForJob(ctx context.Context, jobID string, recruiterID uuid.UUID) ([]JobApplicationRow, error) {
	job, err := uc.jobs.FindByID(jobID)
	if err != nil {
		return nil, err
	}
	if job.RecruiterID != recruiterID {
		return nil, apperror.New(apperror.KindNotAuthorized, "job belongs to another recruiter")
	}

	apps, err := uc.apps.ListByJob(jobID)
	if err != nil {
		return nil, err
	}

	rows := make([]JobApplicationRow, 0, len(apps))
	for _, app := range apps {
		row := JobApplicationRow{Application: app}
		if candidate, err := uc.users.FindByID(app.CandidateID.String()); err == nil {
			row.CandidateName = candidate.FullName
			row.CandidateEmail = candidate.Email
		}
		if iv, err := uc.interviews.FindByApplicationID(app.ID.String()); err == nil {
			row.InterviewScore = iv.Score
			row.InterviewState = string(iv.Status)
		}
		rows = append(rows, row)
	}
	return rows, nil
}
