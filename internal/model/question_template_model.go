package model

import (
	"time"

	"github.com/pgvector/pgvector-go"
)

// QuestionTemplate is a question-bank entry. Templates carry an embedding of
// their text so the bank can rank them against a job description.
type QuestionTemplate struct {
	ID        int             `gorm:"primaryKey;autoIncrement" json:"id"`
	Text      string          `gorm:"type:text" json:"text"`
	Category  string          `gorm:"type:varchar(50)" json:"category"`
	Embedding pgvector.Vector `gorm:"type:vector(3072)" json:"-"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

func (q *QuestionTemplate) TableName() string {
	return "question_templates"
}
