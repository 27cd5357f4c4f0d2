package usecase

import (
	"context"
	"time"

	"github.com/fadilmartias/ats-interviewer/internal/apperror"
	"github.com/fadilmartias/ats-interviewer/internal/lock"
	"github.com/fadilmartias/ats-interviewer/internal/model"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// InterviewStore is implemented by repository.InterviewRepository.
type InterviewStore interface {
	FindByID(id string) (*model.Interview, error)
	FindByApplicationID(applicationID string) (*model.Interview, error)
	Save(iv *model.Interview) error
}

// InterviewUsecase owns Interview.answers and Interview.status. Answers are
// append-only, at most one per question, and the usecase is the single place
// that detects when the set of answered questions saturates the question set.
type InterviewUsecase struct {
	interviews  InterviewStore
	apps        ApplicationStore
	coordinator *CompletionCoordinator
	locks       *lock.KeyMutex
	log         *zap.Logger
}

func NewInterviewUsecase(interviews InterviewStore, apps ApplicationStore, coordinator *CompletionCoordinator, log *zap.Logger) *InterviewUsecase {
	return &InterviewUsecase{
		interviews:  interviews,
		apps:        apps,
		coordinator: coordinator,
		locks:       lock.NewKeyMutex(),
		log:         log,
	}
}

type SubmitAnswerResult struct {
	Interview *model.Interview
	Completed bool
}

// SubmitAnswer appends one answer to the interview. The read-check-append
// runs under the interview's lock, so two concurrent submissions cannot both
// pass the duplicate check for the same question, and two submissions of the
// final two answers cannot both observe "not yet saturated". When the answer
// saturates the question set, completion runs before this returns and the
// caller sees the evaluated terminal state in the same response.
func (uc *InterviewUsecase) SubmitAnswer(ctx context.Context, interviewID string, actor uuid.UUID, questionID int, text string) (*SubmitAnswerResult, error) {
	uc.locks.Lock(interviewID)
	defer uc.locks.Unlock(interviewID)

	iv, err := uc.interviews.FindByID(interviewID)
	if err != nil {
		return nil, err
	}
	if err := uc.authorize(iv, actor); err != nil {
		return nil, err
	}

	if iv.Status == model.InterviewCompleted {
		return nil, apperror.New(apperror.KindInterviewAlreadyCompleted, "interview already completed")
	}
	if !iv.KnowsQuestion(questionID) {
		return nil, apperror.New(apperror.KindUnknownQuestion, "question is not part of this interview")
	}
	if iv.HasAnswer(questionID) {
		return nil, apperror.New(apperror.KindDuplicateAnswer, "question already answered")
	}

	now := time.Now()
	iv.Answers = append(iv.Answers, model.Answer{
		QuestionID:  questionID,
		Text:        text,
		SubmittedAt: now,
	})
	if iv.Status == model.InterviewPending {
		iv.Status = model.InterviewInProgress
		iv.StartedAt = &now
	}
	if err := uc.interviews.Save(iv); err != nil {
		return nil, err
	}

	uc.log.Debug("answer submitted",
		zap.String("interview_id", interviewID),
		zap.Int("question_id", questionID),
		zap.Int("answered", len(iv.Answers)),
		zap.Int("total", len(iv.Questions)))

	if !iv.Saturated() {
		return &SubmitAnswerResult{Interview: iv}, nil
	}

	// Saturating answer: hand over to the coordinator. The append above is
	// already committed and is not rolled back if evaluation fails.
	completed, err := uc.coordinator.Complete(ctx, interviewID)
	if err != nil {
		return nil, err
	}
	return &SubmitAnswerResult{Interview: completed, Completed: true}, nil
}

// GetState returns the interview for its owning candidate.
func (uc *InterviewUsecase) GetState(ctx context.Context, interviewID string, actor uuid.UUID) (*model.Interview, error) {
	iv, err := uc.interviews.FindByID(interviewID)
	if err != nil {
		return nil, err
	}
	if err := uc.authorize(iv, actor); err != nil {
		return nil, err
	}
	return iv, nil
}

// RetryEvaluation re-runs completion for a saturated interview whose
// evaluation previously failed.
func (uc *InterviewUsecase) RetryEvaluation(ctx context.Context, interviewID string, actor uuid.UUID) (*model.Interview, error) {
	iv, err := uc.interviews.FindByID(interviewID)
	if err != nil {
		return nil, err
	}
	if err := uc.authorize(iv, actor); err != nil {
		return nil, err
	}
	return uc.coordinator.Retry(ctx, interviewID)
}

// FindByApplication looks up the interview owned by an application, if any.
func (uc *InterviewUsecase) FindByApplication(ctx context.Context, applicationID string) (*model.Interview, error) {
	return uc.interviews.FindByApplicationID(applicationID)
}

func (uc *InterviewUsecase) authorize(iv *model.Interview, actor uuid.UUID) error {
	app, err := uc.apps.FindByID(iv.ApplicationID.String())
	if err != nil {
		return err
	}
	if app.CandidateID != actor {
		return apperror.New(apperror.KindNotAuthorized, "interview belongs to another candidate")
	}
	return nil
}
