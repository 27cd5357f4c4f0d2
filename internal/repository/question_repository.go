package repository

import (
	"github.com/fadilmartias/ats-interviewer/internal/model"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type QuestionRepository struct {
	db *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) *QuestionRepository {
	return &QuestionRepository{db}
}

func (r *QuestionRepository) Create(q *model.QuestionTemplate) error {
	return r.db.Create(q).Error
}

func (r *QuestionRepository) Update(q *model.QuestionTemplate) error {
	return r.db.Save(q).Error
}

// SearchByEmbedding ranks templates by distance to the given embedding.
func (r *QuestionRepository) SearchByEmbedding(embedding pgvector.Vector, topK int) ([]model.QuestionTemplate, error) {
	var templates []model.QuestionTemplate

	err := r.db.Raw(`
        SELECT *, embedding <-> ? AS distance
        FROM question_templates
        ORDER BY embedding <-> ?
        LIMIT ?
    `, embedding, embedding, topK).Scan(&templates).Error

	return templates, err
}

func (r *QuestionRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&model.QuestionTemplate{}).Count(&count).Error
	return count, err
}
