package model

import (
	"time"

	"github.com/google/uuid"
)

type ApplicationStatus string

const (
	ApplicationPending      ApplicationStatus = "pending"
	ApplicationInterviewing ApplicationStatus = "interviewing"
	ApplicationCompleted    ApplicationStatus = "completed"
	ApplicationAccepted     ApplicationStatus = "accepted"
	ApplicationRejected     ApplicationStatus = "rejected"
)

// Terminal reports whether no further transition is legal from s.
func (s ApplicationStatus) Terminal() bool {
	return s == ApplicationAccepted || s == ApplicationRejected
}

// Application tracks one candidate's progress against one job. The
// (candidate_id, job_id) pair is unique so a second apply for the same job
// is rejected at the database level even under concurrent requests.
type Application struct {
	ID          uuid.UUID         `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	CandidateID uuid.UUID         `gorm:"type:uuid;uniqueIndex:idx_candidate_job" json:"candidate_id"`
	JobID       uuid.UUID         `gorm:"type:uuid;uniqueIndex:idx_candidate_job" json:"job_id"`
	ResumePath  string            `json:"resume_path,omitempty"`
	ResumeText  string            `gorm:"type:text" json:"-"`
	Status      ApplicationStatus `gorm:"type:varchar(20);default:pending" json:"status"`
	AppliedAt   time.Time         `json:"applied_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

func (a *Application) TableName() string {
	return "applications"
}
