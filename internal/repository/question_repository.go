package repository

import (
	"llm_survey_backend/internal/model"

	"gorm.io/gorm"
)

type QuestionRepository struct {
	DB *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) *QuestionRepository {
	return &QuestionRepository{DB: db}
}

// ListOrdered returns every question; the slice index plus one is the
// question's position.
func (r *QuestionRepository) ListOrdered() ([]model.Question, error) {
	var qs []model.Question
	err := r.DB.Order("question_id asc").Find(&qs).Error
	return qs, err
}
