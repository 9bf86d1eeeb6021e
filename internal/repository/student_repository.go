package repository

import (
	"errors"
	"llm_survey_backend/internal/model"

	"gorm.io/gorm"
)

type StudentRepository struct {
	DB *gorm.DB
}

func NewStudentRepository(db *gorm.DB) *StudentRepository {
	return &StudentRepository{DB: db}
}

// FindByEmail returns nil without error when no student has the email.
func (r *StudentRepository) FindByEmail(email string) (*model.Student, error) {
	var s model.Student
	err := r.DB.Where("student_email = ?", email).First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *StudentRepository) FindByID(id uint) (*model.Student, error) {
	var s model.Student
	err := r.DB.First(&s, id).Error
	return &s, err
}
