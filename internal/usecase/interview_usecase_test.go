package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/fadilmartias/ats-interviewer/internal/apperror"
	"github.com/fadilmartias/ats-interviewer/internal/model"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// startedInterview walks an application through apply + resume upload and
// returns the interview ready for answers.
func startedInterview(t *testing.T, e *engine) (uuid.UUID, *model.Application, *model.Interview) {
	t.Helper()
	ctx := context.Background()
	candidate := uuid.New()
	job := e.job()

	app, err := e.appUC.RecordApplication(ctx, candidate, job.ID)
	require.NoError(t, err)
	app, iv, err := e.appUC.AttachResume(ctx, app.ID.String(), candidate, "/uploads/r.pdf", "resume text")
	require.NoError(t, err)
	return candidate, app, iv
}

func TestSubmitAnswer_Lifecycle(t *testing.T) {
	e := newEngine(t)
	ctx := context.Background()
	candidate, app, iv := startedInterview(t, e)

	// answers 1..4: interview moves to in_progress and stays there
	for _, q := range []int{1, 2, 3, 4} {
		res, err := e.interviewUC.SubmitAnswer(ctx, iv.ID.String(), candidate, q, fmt.Sprintf("answer %d", q))
		require.NoError(t, err)
		assert.False(t, res.Completed)
		assert.Equal(t, model.InterviewInProgress, res.Interview.Status)
		assert.Len(t, res.Interview.Answers, q)
	}

	// the saturating answer completes the interview in the same call
	res, err := e.interviewUC.SubmitAnswer(ctx, iv.ID.String(), candidate, 5, "answer 5")
	require.NoError(t, err)
	assert.True(t, res.Completed)
	assert.Equal(t, model.InterviewCompleted, res.Interview.Status)
	require.NotNil(t, res.Interview.Score)
	assert.InDelta(t, 75.5, *res.Interview.Score, 0.001)
	require.NotNil(t, res.Interview.Analysis)
	assert.NotEmpty(t, res.Interview.Analysis.Recommendation)
	assert.NotNil(t, res.Interview.CompletedAt)

	gotApp, err := e.apps.FindByID(app.ID.String())
	require.NoError(t, err)
	assert.Equal(t, model.ApplicationCompleted, gotApp.Status)

	assert.EqualValues(t, 1, e.evaluator.callCount())
}

func TestSubmitAnswer_FirstAnswerStartsInterview(t *testing.T) {
	e := newEngine(t)
	candidate, _, iv := startedInterview(t, e)

	assert.Equal(t, model.InterviewPending, iv.Status)
	assert.Nil(t, iv.StartedAt)

	res, err := e.interviewUC.SubmitAnswer(context.Background(), iv.ID.String(), candidate, 1, "first")
	require.NoError(t, err)
	assert.Equal(t, model.InterviewInProgress, res.Interview.Status)
	assert.NotNil(t, res.Interview.StartedAt)
}

func TestSubmitAnswer_UnknownQuestion(t *testing.T) {
	e := newEngine(t)
	candidate, _, iv := startedInterview(t, e)

	_, err := e.interviewUC.SubmitAnswer(context.Background(), iv.ID.String(), candidate, 99, "answer")
	assert.Equal(t, apperror.KindUnknownQuestion, apperror.KindOf(err))

	// answers unchanged
	got, err := e.interviews.FindByID(iv.ID.String())
	require.NoError(t, err)
	assert.Empty(t, got.Answers)
	assert.Equal(t, model.InterviewPending, got.Status)
}

func TestSubmitAnswer_DuplicateAnswer(t *testing.T) {
	e := newEngine(t)
	ctx := context.Background()
	candidate, _, iv := startedInterview(t, e)

	_, err := e.interviewUC.SubmitAnswer(ctx, iv.ID.String(), candidate, 2, "first take")
	require.NoError(t, err)

	_, err = e.interviewUC.SubmitAnswer(ctx, iv.ID.String(), candidate, 2, "second take")
	assert.Equal(t, apperror.KindDuplicateAnswer, apperror.KindOf(err))

	got, err := e.interviews.FindByID(iv.ID.String())
	require.NoError(t, err)
	require.Len(t, got.Answers, 1)
	assert.Equal(t, "first take", got.Answers[0].Text)
}

func TestSubmitAnswer_ConcurrentSameQuestion(t *testing.T) {
	e := newEngine(t)
	ctx := context.Background()
	candidate, _, iv := startedInterview(t, e)

	const attempts = 20
	var wg sync.WaitGroup
	results := make(chan error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := e.interviewUC.SubmitAnswer(ctx, iv.ID.String(), candidate, 3, "race")
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var successes, duplicates int
	for err := range results {
		switch {
		case err == nil:
			successes++
		case apperror.KindOf(err) == apperror.KindDuplicateAnswer:
			duplicates++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, successes)
	assert.Equal(t, attempts-1, duplicates)

	got, err := e.interviews.FindByID(iv.ID.String())
	require.NoError(t, err)
	assert.Len(t, got.Answers, 1)
}

func TestSubmitAnswer_AfterCompletion(t *testing.T) {
	e := newEngine(t)
	ctx := context.Background()
	candidate, _, iv := startedInterview(t, e)

	for q := 1; q <= 5; q++ {
		_, err := e.interviewUC.SubmitAnswer(ctx, iv.ID.String(), candidate, q, "answer")
		require.NoError(t, err)
	}

	_, err := e.interviewUC.SubmitAnswer(ctx, iv.ID.String(), candidate, 1, "late")
	assert.Equal(t, apperror.KindInterviewAlreadyCompleted, apperror.KindOf(err))
}

func TestSubmitAnswer_OwnerOnly(t *testing.T) {
	e := newEngine(t)
	_, _, iv := startedInterview(t, e)

	_, err := e.interviewUC.SubmitAnswer(context.Background(), iv.ID.String(), uuid.New(), 1, "answer")
	assert.Equal(t, apperror.KindNotAuthorized, apperror.KindOf(err))
}

func TestSubmitAnswer_InterviewNotFound(t *testing.T) {
	e := newEngine(t)
	_, err := e.interviewUC.SubmitAnswer(context.Background(), uuid.NewString(), uuid.New(), 1, "answer")
	assert.Equal(t, apperror.KindInterviewNotFound, apperror.KindOf(err))
}

func TestSubmitAnswer_EvaluationFailureIsRetryable(t *testing.T) {
	e := newEngine(t)
	ctx := context.Background()
	candidate, app, iv := startedInterview(t, e)
	e.evaluator.failWith = errors.New("model overloaded")

	for q := 1; q <= 4; q++ {
		_, err := e.interviewUC.SubmitAnswer(ctx, iv.ID.String(), candidate, q, "answer")
		require.NoError(t, err)
	}

	_, err := e.interviewUC.SubmitAnswer(ctx, iv.ID.String(), candidate, 5, "final answer")
	require.Error(t, err)
	assert.Equal(t, apperror.KindEvaluationFailed, apperror.KindOf(err))
	assert.True(t, apperror.Retryable(err))

	// the saturating answer was not rolled back; the interview is
	// saturated-but-unscored and the application untouched
	got, err := e.interviews.FindByID(iv.ID.String())
	require.NoError(t, err)
	assert.Equal(t, model.InterviewInProgress, got.Status)
	assert.Len(t, got.Answers, 5)
	assert.Nil(t, got.Score)

	gotApp, err := e.apps.FindByID(app.ID.String())
	require.NoError(t, err)
	assert.Equal(t, model.ApplicationInterviewing, gotApp.Status)

	// explicit retry after the evaluator recovers
	e.evaluator.failWith = nil
	completed, err := e.interviewUC.RetryEvaluation(ctx, iv.ID.String(), candidate)
	require.NoError(t, err)
	assert.Equal(t, model.InterviewCompleted, completed.Status)
	require.NotNil(t, completed.Score)
}

func TestGetState(t *testing.T) {
	e := newEngine(t)
	ctx := context.Background()
	candidate, _, iv := startedInterview(t, e)

	_, err := e.interviewUC.SubmitAnswer(ctx, iv.ID.String(), candidate, 1, "answer")
	require.NoError(t, err)

	got, err := e.interviewUC.GetState(ctx, iv.ID.String(), candidate)
	require.NoError(t, err)
	assert.Len(t, got.Answers, 1)
	assert.Len(t, got.Questions, 5)

	_, err = e.interviewUC.GetState(ctx, iv.ID.String(), uuid.New())
	assert.Equal(t, apperror.KindNotAuthorized, apperror.KindOf(err))
}
