package model

import (
	"time"

	"github.com/google/uuid"
)

type InterviewStatus string

const (
	InterviewPending    InterviewStatus = "pending"
	InterviewInProgress InterviewStatus = "in_progress"
	InterviewCompleted  InterviewStatus = "completed"
)

// Question is one entry of an interview's fixed question set. The set is
// copied onto the interview at creation time and never changes afterwards.
type Question struct {
	ID       int    `json:"id"`
	Text     string `json:"text"`
	Category string `json:"category"`
}

type Answer struct {
	QuestionID  int       `json:"question_id"`
	Text        string    `json:"text"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// Analysis is the structured record produced by the evaluator alongside the
// numeric score.
type Analysis struct {
	OverallAssessment   string   `json:"overall_assessment"`
	Strengths           []string `json:"strengths"`
	AreasForImprovement []string `json:"areas_for_improvement"`
	Recommendation      string   `json:"recommendation"`
}

// Interview is owned 1:1 by its application and created lazily on resume
// upload. Answers are append-only; score and analysis are written exactly
// once, when the interview completes.
type Interview struct {
	ID            uuid.UUID       `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	ApplicationID uuid.UUID       `gorm:"type:uuid;uniqueIndex" json:"application_id"`
	Questions     []Question      `gorm:"serializer:json;type:jsonb" json:"questions"`
	Answers       []Answer        `gorm:"serializer:json;type:jsonb" json:"answers"`
	Score         *float64        `json:"score,omitempty"`
	Analysis      *Analysis       `gorm:"serializer:json;type:jsonb" json:"analysis,omitempty"`
	Status        InterviewStatus `gorm:"type:varchar(20);default:pending" json:"status"`
	StartedAt     *time.Time      `json:"started_at,omitempty"`
	CompletedAt   *time.Time      `json:"completed_at,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

func (i *Interview) TableName() string {
	return "interviews"
}

// HasAnswer reports whether questionID has already been answered.
func (i *Interview) HasAnswer(questionID int) bool {
	for _, a := range i.Answers {
		if a.QuestionID == questionID {
			return true
		}
	}
	return false
}

// KnowsQuestion reports whether questionID belongs to the question set.
func (i *Interview) KnowsQuestion(questionID int) bool {
	for _, q := range i.Questions {
		if q.ID == questionID {
			return true
		}
	}
	return false
}

// Saturated reports whether every question has an answer.
func (i *Interview) Saturated() bool {
	return len(i.Answers) >= len(i.Questions)
}
