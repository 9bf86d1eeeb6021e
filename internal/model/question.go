package model

type Question struct {
	QuestionID uint   `gorm:"column:question_id;primaryKey;autoIncrement"`
	Body       string `gorm:"column:question;type:text"`
}

func (Question) TableName() string {
	return "questions"
}
