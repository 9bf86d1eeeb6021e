package repository

import (
	"database/sql"
	"llm_survey_backend/internal/model"

	"gorm.io/gorm"
)

type FeedbackRepository struct {
	DB *gorm.DB
}

func NewFeedbackRepository(db *gorm.DB) *FeedbackRepository {
	return &FeedbackRepository{DB: db}
}

func (r *FeedbackRepository) CountByStudent(studentID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Feedback{}).Where("student_id = ?", studentID).Count(&count).Error
	return count, err
}

func (r *FeedbackRepository) CountByStudentAndQuestions(studentID uint, questionIDs []uint) (int64, error) {
	var count int64
	if len(questionIDs) == 0 {
		return 0, nil
	}
	err := r.DB.Model(&model.Feedback{}).
		Where("student_id = ? AND question_id IN ?", studentID, questionIDs).
		Count(&count).Error
	return count, err
}

// CreateBatch inserts all rows in one transaction.
func (r *FeedbackRepository) CreateBatch(rows []model.Feedback) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		for i := range rows {
			if err := tx.Create(&rows[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// DumpAll 读取 llm_feedback 全表，列名取自数据库返回的结果集
func (r *FeedbackRepository) DumpAll() (*model.FeedbackTable, error) {
	rows, err := r.DB.Raw("SELECT * FROM " + model.Feedback{}.TableName() + " ORDER BY id").Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	table := &model.FeedbackTable{Columns: columns}
	values := make([]sql.NullString, len(columns))
	dest := make([]interface{}, len(columns))
	for i := range values {
		dest[i] = &values[i]
	}

	for rows.Next() {
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		row := make([]*string, len(columns))
		for i, v := range values {
			if v.Valid {
				s := v.String
				row[i] = &s
			}
		}
		table.Rows = append(table.Rows, row)
	}

	return table, rows.Err()
}
