package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
)

type Job struct {
	ID           uuid.UUID       `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Title        string          `json:"title"`
	Description  string          `gorm:"type:text" json:"description"`
	Requirements string          `gorm:"type:text" json:"requirements"`
	RecruiterID  uuid.UUID       `gorm:"type:uuid;index" json:"recruiter_id"`
	Status       string          `gorm:"type:varchar(20);default:active" json:"status"`
	Embedding    pgvector.Vector `gorm:"type:vector(3072)" json:"-"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

func (j *Job) TableName() string {
	return "jobs"
}
