package dto

import (
	"time"

	"github.com/fadilmartias/ats-interviewer/internal/model"
	"github.com/google/uuid"
)

// InterviewStateDTO is the answer to "where am I in this interview".
// CurrentQuestionIndex counts answered questions, so it doubles as the index
// of the next unanswered question while the interview is in progress.
type InterviewStateDTO struct {
	InterviewID          uuid.UUID             `json:"interview_id"`
	Questions            []model.Question      `json:"questions"`
	Answers              []model.Answer        `json:"answers"`
	Status               model.InterviewStatus `json:"status"`
	CurrentQuestionIndex int                   `json:"current_question_index"`
	Score                *float64              `json:"score,omitempty"`
	Analysis             *model.Analysis       `json:"analysis,omitempty"`
	CompletedAt          *time.Time            `json:"completed_at,omitempty"`
}

func NewInterviewStateDTO(iv *model.Interview) InterviewStateDTO {
	return InterviewStateDTO{
		InterviewID:          iv.ID,
		Questions:            iv.Questions,
		Answers:              iv.Answers,
		Status:               iv.Status,
		CurrentQuestionIndex: len(iv.Answers),
		Score:                iv.Score,
		Analysis:             iv.Analysis,
		CompletedAt:          iv.CompletedAt,
	}
}

type SubmitAnswerRequest struct {
	QuestionID int    `json:"question_id"`
	Answer     string `json:"answer"`
}

// SubmitAnswerDTO reports the outcome of one answer submission. When the
// answer saturated the question set, Completed is true and Score/Analysis
// carry the evaluation produced before the call returned.
type SubmitAnswerDTO struct {
	Completed    bool            `json:"completed"`
	NextQuestion *int            `json:"next_question,omitempty"`
	Score        *float64        `json:"score,omitempty"`
	Analysis     *model.Analysis `json:"analysis,omitempty"`
}
