package dto

import (
	"time"

	"github.com/fadilmartias/ats-interviewer/internal/model"
	"github.com/google/uuid"
)

type ApplicationDTO struct {
	ID          uuid.UUID               `json:"id"`
	CandidateID uuid.UUID               `json:"candidate_id"`
	JobID       uuid.UUID               `json:"job_id"`
	Status      model.ApplicationStatus `json:"status"`
	HasResume   bool                    `json:"has_resume"`
	AppliedAt   time.Time               `json:"applied_at"`
}

func NewApplicationDTO(app *model.Application) ApplicationDTO {
	return ApplicationDTO{
		ID:          app.ID,
		CandidateID: app.CandidateID,
		JobID:       app.JobID,
		Status:      app.Status,
		HasResume:   app.ResumePath != "",
		AppliedAt:   app.AppliedAt,
	}
}

// ApplicationSummaryDTO joins an application with its job and interview for
// the candidate's my-applications listing.
type ApplicationSummaryDTO struct {
	ApplicationID   uuid.UUID               `json:"application_id"`
	JobTitle        string                  `json:"job_title"`
	JobDescription  string                  `json:"job_description"`
	Status          model.ApplicationStatus `json:"status"`
	AppliedAt       time.Time               `json:"applied_at"`
	HasInterview    bool                    `json:"has_interview"`
	InterviewID     *uuid.UUID              `json:"interview_id,omitempty"`
	InterviewStatus *model.InterviewStatus  `json:"interview_status,omitempty"`
}

type CandidateDashboardDTO struct {
	TotalApplications int64 `json:"total_applications"`
	Pending           int64 `json:"pending"`
	Interviewing      int64 `json:"interviewing"`
	Completed         int64 `json:"completed"`
}
