package model

// Feedback 学生对某一题五种回答的排序及前后理解程度
type Feedback struct {
	ID                   uint `gorm:"column:id;primaryKey;autoIncrement"`
	StudentID            uint `gorm:"column:student_id;index;not null"`
	QuestionID           uint `gorm:"column:question_id;not null"`
	InitialUnderstanding int  `gorm:"column:initial_understanding"`
	DefaultRank          int  `gorm:"column:llm_default_rank"`
	SkillsRank           int  `gorm:"column:llm_skills_rank"`
	HobbiesRank          int  `gorm:"column:llm_hobbies_rank"`
	SubjectsRank         int  `gorm:"column:llm_subjects_rank"`
	AllRank              int  `gorm:"column:llm_all_rank"`
	FinalUnderstanding   int  `gorm:"column:final_understanding"`
}

func (Feedback) TableName() string {
	return "llm_feedback"
}

// FeedbackTable is a raw dump of llm_feedback with the store's column names.
// A nil cell is a NULL value.
type FeedbackTable struct {
	Columns []string
	Rows    [][]*string
}
