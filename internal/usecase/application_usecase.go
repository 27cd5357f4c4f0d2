package usecase

import (
	"context"
	"time"

	"github.com/fadilmartias/ats-interviewer/internal/apperror"
	"github.com/fadilmartias/ats-interviewer/internal/model"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ApplicationStore is the persistence surface the state machine drives.
// Implemented by repository.ApplicationRepository.
type ApplicationStore interface {
	Create(app *model.Application) error
	FindByID(id string) (*model.Application, error)
	ListByCandidate(candidateID string) ([]model.Application, error)
	ListByJob(jobID string) ([]model.Application, error)
	CountByCandidate(candidateID string, status model.ApplicationStatus) (int64, error)
	AttachResume(id, resumePath, resumeText string, iv *model.Interview) (*model.Application, error)
	TransitionStatus(id string, from, to model.ApplicationStatus) (bool, error)
}

type JobStore interface {
	FindByID(id string) (*model.Job, error)
}

// QuestionProvider supplies the fixed ordered question set for a job. The
// set is opaque to the state engine beyond its ids and length.
type QuestionProvider interface {
	QuestionsForJob(ctx context.Context, job *model.Job) ([]model.Question, error)
}

// ApplicationUsecase owns Application.status. Every legal transition of the
// pipeline (apply, resume upload, completion, recruiter decision) goes
// through here; nothing else writes the status column.
type ApplicationUsecase struct {
	apps      ApplicationStore
	jobs      JobStore
	questions QuestionProvider
	log       *zap.Logger
}

func NewApplicationUsecase(apps ApplicationStore, jobs JobStore, questions QuestionProvider, log *zap.Logger) *ApplicationUsecase {
	return &ApplicationUsecase{apps: apps, jobs: jobs, questions: questions, log: log}
}

// RecordApplication creates a pending application for (candidate, job).
// A second apply for the same pair fails with DuplicateApplication; the
// uniqueness is enforced by the store so concurrent applies cannot both win.
func (uc *ApplicationUsecase) RecordApplication(ctx context.Context, candidateID, jobID uuid.UUID) (*model.Application, error) {
	job, err := uc.jobs.FindByID(jobID.String())
	if err != nil {
		return nil, err
	}
	if job.Status != "active" {
		return nil, apperror.New(apperror.KindInvalidTransition, "job is not accepting applications")
	}

	app := &model.Application{
		CandidateID: candidateID,
		JobID:       jobID,
		Status:      model.ApplicationPending,
		AppliedAt:   time.Now(),
	}
	if err := uc.apps.Create(app); err != nil {
		return nil, err
	}
	uc.log.Info("application recorded",
		zap.String("application_id", app.ID.String()),
		zap.String("job_id", jobID.String()))
	return app, nil
}

// AttachResume records the resume reference, moves the application to
// Interviewing and creates its interview, all as one atomic step. Legal only
// from Pending; a second attach fails with InvalidTransition.
func (uc *ApplicationUsecase) AttachResume(ctx context.Context, applicationID string, actor uuid.UUID, resumePath, resumeText string) (*model.Application, *model.Interview, error) {
	app, err := uc.apps.FindByID(applicationID)
	if err != nil {
		return nil, nil, err
	}
	if app.CandidateID != actor {
		return nil, nil, apperror.New(apperror.KindNotAuthorized, "application belongs to another candidate")
	}

	job, err := uc.jobs.FindByID(app.JobID.String())
	if err != nil {
		return nil, nil, err
	}
	questionSet, err := uc.questions.QuestionsForJob(ctx, job)
	if err != nil {
		return nil, nil, err
	}

	iv := &model.Interview{
		Questions: questionSet,
		Answers:   []model.Answer{},
		Status:    model.InterviewPending,
	}
	// The store revalidates the Pending status under a row lock, so a racing
	// attach loses there even though the check above passed for both.
	app, err = uc.apps.AttachResume(applicationID, resumePath, resumeText, iv)
	if err != nil {
		return nil, nil, err
	}
	uc.log.Info("resume attached, interview created",
		zap.String("application_id", app.ID.String()),
		zap.String("interview_id", iv.ID.String()),
		zap.Int("questions", len(questionSet)))
	return app, iv, nil
}

// MarkCompleted moves Interviewing→Completed. Called by the completion
// coordinator once the interview has been scored. Idempotent: marking an
// application that is already completed, or that a recruiter decision moved
// to a terminal status while evaluation was running, is a no-op. The decided
// status stands; the interview keeps its committed score either way.
func (uc *ApplicationUsecase) MarkCompleted(ctx context.Context, applicationID string) error {
	moved, err := uc.apps.TransitionStatus(applicationID, model.ApplicationInterviewing, model.ApplicationCompleted)
	if err != nil {
		return err
	}
	if moved {
		return nil
	}
	app, err := uc.apps.FindByID(applicationID)
	if err != nil {
		return err
	}
	if app.Status == model.ApplicationCompleted || app.Status.Terminal() {
		return nil
	}
	return apperror.New(apperror.KindInvalidTransition, "application is not interviewing")
}

// Decide applies the recruiter's terminal decision. Accepted/Rejected are
// reachable from any non-terminal status; once set they never change.
func (uc *ApplicationUsecase) Decide(ctx context.Context, applicationID string, actor uuid.UUID, decision model.ApplicationStatus) (*model.Application, error) {
	if decision != model.ApplicationAccepted && decision != model.ApplicationRejected {
		return nil, apperror.New(apperror.KindInvalidTransition, "decision must be accepted or rejected")
	}
	app, err := uc.apps.FindByID(applicationID)
	if err != nil {
		return nil, err
	}
	job, err := uc.jobs.FindByID(app.JobID.String())
	if err != nil {
		return nil, err
	}
	if job.RecruiterID != actor {
		return nil, apperror.New(apperror.KindNotAuthorized, "application belongs to another recruiter's job")
	}
	if app.Status.Terminal() {
		return nil, apperror.New(apperror.KindInvalidTransition, "application already decided")
	}

	moved, err := uc.apps.TransitionStatus(applicationID, app.Status, decision)
	if err != nil {
		return nil, err
	}
	if !moved {
		return nil, apperror.New(apperror.KindInvalidTransition, "application status changed concurrently")
	}
	app.Status = decision
	uc.log.Info("application decided",
		zap.String("application_id", applicationID),
		zap.String("decision", string(decision)))
	return app, nil
}

// GetState returns the application for status inspection by its owner or by
// the recruiter of the job it targets.
func (uc *ApplicationUsecase) GetState(ctx context.Context, applicationID string, actor uuid.UUID) (*model.Application, error) {
	app, err := uc.apps.FindByID(applicationID)
	if err != nil {
		return nil, err
	}
	if app.CandidateID != actor {
		job, err := uc.jobs.FindByID(app.JobID.String())
		if err != nil || job.RecruiterID != actor {
			return nil, apperror.New(apperror.KindNotAuthorized, "not allowed to view this application")
		}
	}
	return app, nil
}

func (uc *ApplicationUsecase) ListByCandidate(ctx context.Context, candidateID uuid.UUID) ([]model.Application, error) {
	return uc.apps.ListByCandidate(candidateID.String())
}

func (uc *ApplicationUsecase) Dashboard(ctx context.Context, candidateID uuid.UUID) (map[model.ApplicationStatus]int64, error) {
	counts := make(map[model.ApplicationStatus]int64)
	for _, status := range []model.ApplicationStatus{
		"", model.ApplicationPending, model.ApplicationInterviewing, model.ApplicationCompleted,
	} {
		n, err := uc.apps.CountByCandidate(candidateID.String(), status)
		if err != nil {
			return nil, err
		}
		counts[status] = n
	}
	return counts, nil
}
