package usecase

import (
	"context"
	"time"

	"github.com/fadilmartias/ats-interviewer/internal/apperror"
	"github.com/fadilmartias/ats-interviewer/internal/model"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// EvaluationInput is everything the evaluator sees: the fixed question set,
// the accumulated answers, and the job/resume context they were given for.
type EvaluationInput struct {
	Job        *model.Job
	ResumeText string
	Questions  []model.Question
	Answers    []model.Answer
}

// Evaluator converts a finished interview into a score and a structured
// analysis. Implementations must be side-effect free so the coordinator can
// retry a failed evaluation without consequence.
type Evaluator interface {
	Evaluate(ctx context.Context, in EvaluationInput) (float64, *model.Analysis, error)
}

// CompletionCoordinator guarantees exactly-once completion processing per
// interview. Concurrent completion attempts for the same interview collapse
// into a single evaluator invocation through the singleflight group, and the
// status re-check after the flight catches attempts that arrive once the
// interview is already completed.
type CompletionCoordinator struct {
	interviews InterviewStore
	apps       ApplicationStore
	jobs       JobStore
	evaluator  Evaluator
	states     *ApplicationUsecase
	timeout    time.Duration
	group      singleflight.Group
	log        *zap.Logger
}

func NewCompletionCoordinator(interviews InterviewStore, apps ApplicationStore, jobs JobStore, evaluator Evaluator, states *ApplicationUsecase, timeout time.Duration, log *zap.Logger) *CompletionCoordinator {
	if timeout <= 0 {
		timeout = 90 * time.Second
	}
	return &CompletionCoordinator{
		interviews: interviews,
		apps:       apps,
		jobs:       jobs,
		evaluator:  evaluator,
		states:     states,
		timeout:    timeout,
		log:        log,
	}
}

// Complete runs the evaluation for a saturated interview and commits the
// terminal state. Idempotent: completing an already-completed interview
// returns the existing score and analysis unchanged. On evaluator failure
// the interview stays in progress (the saturating answer is not rolled back)
// and Complete may be called again to retry.
func (c *CompletionCoordinator) Complete(ctx context.Context, interviewID string) (*model.Interview, error) {
	v, err, _ := c.group.Do(interviewID, func() (interface{}, error) {
		return c.complete(ctx, interviewID)
	})
	if err != nil {
		return nil, err
	}
	return v.(*model.Interview), nil
}

func (c *CompletionCoordinator) complete(ctx context.Context, interviewID string) (*model.Interview, error) {
	iv, err := c.interviews.FindByID(interviewID)
	if err != nil {
		return nil, err
	}
	if iv.Status == model.InterviewCompleted {
		return iv, nil
	}
	if !iv.Saturated() {
		return nil, apperror.New(apperror.KindInvalidTransition, "interview has unanswered questions")
	}

	app, err := c.apps.FindByID(iv.ApplicationID.String())
	if err != nil {
		return nil, err
	}
	job, err := c.jobs.FindByID(app.JobID.String())
	if err != nil {
		return nil, err
	}

	// The timeout bounds how long a completion attempt can hold the
	// interview's flight; a hung evaluator fails instead of blocking
	// every later retry.
	evalCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	score, analysis, err := c.evaluator.Evaluate(evalCtx, EvaluationInput{
		Job:        job,
		ResumeText: app.ResumeText,
		Questions:  iv.Questions,
		Answers:    iv.Answers,
	})
	if err != nil {
		c.log.Warn("evaluation failed, interview left retryable",
			zap.String("interview_id", interviewID),
			zap.Error(err))
		return nil, apperror.Wrap(apperror.KindEvaluationFailed, "evaluator malfunction", err)
	}

	now := time.Now()
	iv.Score = &score
	iv.Analysis = analysis
	iv.Status = model.InterviewCompleted
	iv.CompletedAt = &now
	if err := c.interviews.Save(iv); err != nil {
		return nil, err
	}
	if err := c.states.MarkCompleted(ctx, iv.ApplicationID.String()); err != nil {
		return nil, err
	}

	c.log.Info("interview completed",
		zap.String("interview_id", interviewID),
		zap.Float64("score", score))
	return iv, nil
}

// Retry re-runs a completion attempt that previously failed on evaluation.
// It is the same re-enterable path as Complete; the name exists for callers
// that reach it through the explicit retry endpoint.
func (c *CompletionCoordinator) Retry(ctx context.Context, interviewID string) (*model.Interview, error) {
	return c.Complete(ctx, interviewID)
}
