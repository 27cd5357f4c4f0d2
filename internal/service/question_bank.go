package service

import (
	"context"

	"github.com/fadilmartias/ats-interviewer/internal/model"
	"github.com/pgvector/pgvector-go"
	"go.uber.org/zap"
)

const questionsPerInterview = 5

// QuestionTemplateStore is implemented by repository.QuestionRepository.
type QuestionTemplateStore interface {
	Create(q *model.QuestionTemplate) error
	Update(q *model.QuestionTemplate) error
	SearchByEmbedding(embedding pgvector.Vector, topK int) ([]model.QuestionTemplate, error)
	Count() (int64, error)
}

type Embedder interface {
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)
}

// QuestionBank assembles the fixed ordered question set for an interview.
// When templates with embeddings exist it picks the ones nearest the job
// description; otherwise it serves the default set. Interview creation never
// fails because of the embedding backend: any AI failure degrades to the
// default set.
type QuestionBank struct {
	templates QuestionTemplateStore
	embedder  Embedder
	log       *zap.Logger
}

func NewQuestionBank(templates QuestionTemplateStore, embedder Embedder, log *zap.Logger) *QuestionBank {
	return &QuestionBank{templates: templates, embedder: embedder, log: log}
}

func (b *QuestionBank) QuestionsForJob(ctx context.Context, job *model.Job) ([]model.Question, error) {
	count, err := b.templates.Count()
	if err != nil || count == 0 {
		return defaultQuestions(), nil
	}

	embedding, err := b.embedder.GenerateEmbedding(ctx, job.Description)
	if err != nil {
		b.log.Warn("job embedding failed, using default question set",
			zap.String("job_id", job.ID.String()),
			zap.Error(err))
		return defaultQuestions(), nil
	}

	templates, err := b.templates.SearchByEmbedding(pgvector.NewVector(embedding), questionsPerInterview)
	if err != nil || len(templates) == 0 {
		b.log.Warn("question template search failed, using default question set",
			zap.String("job_id", job.ID.String()),
			zap.Error(err))
		return defaultQuestions(), nil
	}

	questions := make([]model.Question, 0, len(templates))
	for _, t := range templates {
		questions = append(questions, model.Question{
			ID:       t.ID,
			Text:     t.Text,
			Category: t.Category,
		})
	}
	return questions, nil
}

// SeedDefaults inserts the default question set as templates, embedding each
// one so relevance search works out of the box. Called once in development.
func (b *QuestionBank) SeedDefaults(ctx context.Context) error {
	count, err := b.templates.Count()
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	for _, q := range defaultQuestions() {
		template := &model.QuestionTemplate{
			Text:     q.Text,
			Category: q.Category,
		}
		if embedding, err := b.embedder.GenerateEmbedding(ctx, q.Text); err == nil {
			template.Embedding = pgvector.NewVector(embedding)
		} else {
			b.log.Warn("seeding template without embedding", zap.Error(err))
		}
		if err := b.templates.Create(template); err != nil {
			return err
		}
	}
	return nil
}

func defaultQuestions() []model.Question {
	return []model.Question{
		{ID: 1, Text: "Tell me about your experience with backend programming?", Category: "technical"},
		{ID: 2, Text: "Describe a challenging project you worked on and how you overcame obstacles.", Category: "behavioral"},
		{ID: 3, Text: "What interests you about this position?", Category: "general"},
		{ID: 4, Text: "How do you stay updated with new technologies?", Category: "general"},
		{ID: 5, Text: "Describe your experience working in a team environment.", Category: "behavioral"},
	}
}
