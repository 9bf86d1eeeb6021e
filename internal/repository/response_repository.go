package repository

import (
	"errors"
	"llm_survey_backend/internal/model"

	"gorm.io/gorm"
)

type ResponseRepository struct {
	DB *gorm.DB
}

func NewResponseRepository(db *gorm.DB) *ResponseRepository {
	return &ResponseRepository{DB: db}
}

func (r *ResponseRepository) ListDefaults() ([]model.DefaultResponse, error) {
	var rs []model.DefaultResponse
	err := r.DB.Find(&rs).Error
	return rs, err
}

// FindStudentSet 查询学生在某个回答变体表中的记录，不存在时返回 nil, nil
func (r *ResponseRepository) FindStudentSet(variant model.ResponseVariant, studentID uint) (*model.StudentResponseSet, error) {
	var set model.StudentResponseSet
	err := r.DB.Table(variant.TableName()).Where("student_id = ?", studentID).First(&set).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &set, nil
}
