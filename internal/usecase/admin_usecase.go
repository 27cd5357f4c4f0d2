package usecase

import (
	"context"

	"github.com/fadilmartias/ats-interviewer/internal/model"
)

type ApplicationCounter interface {
	CountByStatus(status model.ApplicationStatus) (int64, error)
}

type InterviewCounter interface {
	CountByStatus(status model.InterviewStatus) (int64, error)
}

type JobCounter interface {
	Count() (int64, error)
}

type UserCounter interface {
	CountByRole(role model.UserRole) (int64, error)
}

type PlatformStats struct {
	Candidates          int64 `json:"candidates"`
	Recruiters          int64 `json:"recruiters"`
	Jobs                int64 `json:"jobs"`
	PendingApplications int64 `json:"pending_applications"`
	InterviewingNow     int64 `json:"interviewing_now"`
	CompletedPipelines  int64 `json:"completed_pipelines"`
	ScoredInterviews    int64 `json:"scored_interviews"`
}

// AdminUsecase aggregates platform-wide counts for the admin overview.
type AdminUsecase struct {
	apps       ApplicationCounter
	interviews InterviewCounter
	jobs       JobCounter
	users      UserCounter
}

func NewAdminUsecase(apps ApplicationCounter, interviews InterviewCounter, jobs JobCounter, users UserCounter) *AdminUsecase {
	return &AdminUsecase{apps: apps, interviews: interviews, jobs: jobs, users: users}
}

func (uc *AdminUsecase) Stats(ctx context.Context) (*PlatformStats, error) {
	stats := &PlatformStats{}

	var err error
	if stats.Candidates, err = uc.users.CountByRole(model.RoleCandidate); err != nil {
		return nil, err
	}
	if stats.Recruiters, err = uc.users.CountByRole(model.RoleRecruiter); err != nil {
		return nil, err
	}
	if stats.Jobs, err = uc.jobs.Count(); err != nil {
		return nil, err
	}
	if stats.PendingApplications, err = uc.apps.CountByStatus(model.ApplicationPending); err != nil {
		return nil, err
	}
	if stats.InterviewingNow, err = uc.apps.CountByStatus(model.ApplicationInterviewing); err != nil {
		return nil, err
	}
	if stats.CompletedPipelines, err = uc.apps.CountByStatus(model.ApplicationCompleted); err != nil {
		return nil, err
	}
	if stats.ScoredInterviews, err = uc.interviews.CountByStatus(model.InterviewCompleted); err != nil {
		return nil, err
	}
	return stats, nil
}
