package usecase

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/fadilmartias/ats-interviewer/internal/apperror"
	"github.com/fadilmartias/ats-interviewer/internal/model"
	"github.com/google/uuid"
)

// In-memory stores standing in for the gorm repositories. They copy records
// on the way in and out so tests observe committed state, not shared
// pointers, and they reproduce the repositories' uniqueness and guard
// semantics.

type fakeApplicationStore struct {
	mu         sync.Mutex
	apps       map[string]*model.Application
	interviews *fakeInterviewStore
}

func newFakeApplicationStore(interviews *fakeInterviewStore) *fakeApplicationStore {
	return &fakeApplicationStore{
		apps:       make(map[string]*model.Application),
		interviews: interviews,
	}
}

func cloneApplication(app *model.Application) *model.Application {
	c := *app
	return &c
}

func (s *fakeApplicationStore) Create(app *model.Application) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.apps {
		if existing.CandidateID == app.CandidateID && existing.JobID == app.JobID {
			return apperror.New(apperror.KindDuplicateApplication, "already applied for this job")
		}
	}
	app.ID = uuid.New()
	s.apps[app.ID.String()] = cloneApplication(app)
	return nil
}

func (s *fakeApplicationStore) FindByID(id string) (*model.Application, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	app, ok := s.apps[id]
	if !ok {
		return nil, apperror.New(apperror.KindApplicationNotFound, "application not found")
	}
	return cloneApplication(app), nil
}

func (s *fakeApplicationStore) ListByCandidate(candidateID string) ([]model.Application, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Application
	for _, app := range s.apps {
		if app.CandidateID.String() == candidateID {
			out = append(out, *cloneApplication(app))
		}
	}
	return out, nil
}

func (s *fakeApplicationStore) ListByJob(jobID string) ([]model.Application, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Application
	for _, app := range s.apps {
		if app.JobID.String() == jobID {
			out = append(out, *cloneApplication(app))
		}
	}
	return out, nil
}

func (s *fakeApplicationStore) CountByCandidate(candidateID string, status model.ApplicationStatus) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var count int64
	for _, app := range s.apps {
		if app.CandidateID.String() != candidateID {
			continue
		}
		if status == "" || app.Status == status {
			count++
		}
	}
	return count, nil
}

func (s *fakeApplicationStore) CountByStatus(status model.ApplicationStatus) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var count int64
	for _, app := range s.apps {
		if app.Status == status {
			count++
		}
	}
	return count, nil
}

func (s *fakeApplicationStore) AttachResume(id, resumePath, resumeText string, iv *model.Interview) (*model.Application, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	app, ok := s.apps[id]
	if !ok {
		return nil, apperror.New(apperror.KindApplicationNotFound, "application not found")
	}
	if app.Status != model.ApplicationPending {
		return nil, apperror.New(apperror.KindInvalidTransition, "resume can only be attached while pending")
	}
	app.ResumePath = resumePath
	app.ResumeText = resumeText
	app.Status = model.ApplicationInterviewing
	iv.ApplicationID = app.ID
	if err := s.interviews.add(iv); err != nil {
		// roll the attach back, mirroring the repository transaction
		app.ResumePath = ""
		app.ResumeText = ""
		app.Status = model.ApplicationPending
		return nil, err
	}
	return cloneApplication(app), nil
}

func (s *fakeApplicationStore) TransitionStatus(id string, from, to model.ApplicationStatus) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	app, ok := s.apps[id]
	if !ok || app.Status != from {
		return false, nil
	}
	app.Status = to
	return true, nil
}

type fakeInterviewStore struct {
	mu         sync.Mutex
	interviews map[string]*model.Interview
}

func newFakeInterviewStore() *fakeInterviewStore {
	return &fakeInterviewStore{interviews: make(map[string]*model.Interview)}
}

func cloneInterview(iv *model.Interview) *model.Interview {
	c := *iv
	c.Questions = append([]model.Question(nil), iv.Questions...)
	c.Answers = append([]model.Answer(nil), iv.Answers...)
	return &c
}

func (s *fakeInterviewStore) add(iv *model.Interview) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.interviews {
		if existing.ApplicationID == iv.ApplicationID {
			return apperror.New(apperror.KindInvalidTransition, "interview already exists for application")
		}
	}
	iv.ID = uuid.New()
	s.interviews[iv.ID.String()] = cloneInterview(iv)
	return nil
}

func (s *fakeInterviewStore) FindByID(id string) (*model.Interview, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	iv, ok := s.interviews[id]
	if !ok {
		return nil, apperror.New(apperror.KindInterviewNotFound, "interview not found")
	}
	return cloneInterview(iv), nil
}

func (s *fakeInterviewStore) FindByApplicationID(applicationID string) (*model.Interview, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, iv := range s.interviews {
		if iv.ApplicationID.String() == applicationID {
			return cloneInterview(iv), nil
		}
	}
	return nil, apperror.New(apperror.KindInterviewNotFound, "interview not found")
}

func (s *fakeInterviewStore) Save(iv *model.Interview) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.interviews[iv.ID.String()] = cloneInterview(iv)
	return nil
}

func (s *fakeInterviewStore) CountByStatus(status model.InterviewStatus) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var count int64
	for _, iv := range s.interviews {
		if iv.Status == status {
			count++
		}
	}
	return count, nil
}

type fakeJobStore struct {
	mu   sync.Mutex
	jobs map[string]*model.Job
}

func newFakeJobStore() *fakeJobStore {
	return &fakeJobStore{jobs: make(map[string]*model.Job)}
}

func (s *fakeJobStore) add(job *model.Job) *model.Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	if job.ID == uuid.Nil {
		job.ID = uuid.New()
	}
	if job.Status == "" {
		job.Status = "active"
	}
	s.jobs[job.ID.String()] = job
	return job
}

func (s *fakeJobStore) FindByID(id string) (*model.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	job, ok := s.jobs[id]
	if !ok {
		return nil, apperror.New(apperror.KindJobNotFound, "job not found")
	}
	c := *job
	return &c, nil
}

type staticQuestionProvider struct {
	questions []model.Question
}

func (p *staticQuestionProvider) QuestionsForJob(ctx context.Context, job *model.Job) ([]model.Question, error) {
	return append([]model.Question(nil), p.questions...), nil
}

func fiveQuestions() []model.Question {
	return []model.Question{
		{ID: 1, Text: "q1", Category: "technical"},
		{ID: 2, Text: "q2", Category: "behavioral"},
		{ID: 3, Text: "q3", Category: "general"},
		{ID: 4, Text: "q4", Category: "general"},
		{ID: 5, Text: "q5", Category: "behavioral"},
	}
}

// stubEvaluator counts invocations and can be told to fail or block until
// its context expires.
type stubEvaluator struct {
	calls       int32
	failWith    error
	blockOnCtx  bool
	score       float64
	gateEntered chan struct{}
}

func (e *stubEvaluator) Evaluate(ctx context.Context, in EvaluationInput) (float64, *model.Analysis, error) {
	atomic.AddInt32(&e.calls, 1)
	if e.gateEntered != nil {
		e.gateEntered <- struct{}{}
	}
	if e.blockOnCtx {
		<-ctx.Done()
		return 0, nil, ctx.Err()
	}
	if e.failWith != nil {
		return 0, nil, e.failWith
	}
	score := e.score
	if score == 0 {
		score = 75.5
	}
	return score, &model.Analysis{
		OverallAssessment: "Strong candidate with good technical knowledge",
		Strengths:         []string{"Clear communication", "Relevant experience"},
		Recommendation:    "Proceed to next round",
	}, nil
}

func (e *stubEvaluator) callCount() int32 {
	return atomic.LoadInt32(&e.calls)
}
