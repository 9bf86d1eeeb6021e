// Package testutil provides an in-memory store seeded with survey fixtures.
package testutil

import (
	"llm_survey_backend/internal/model"
	"llm_survey_backend/pkg/database"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// NewTestDB opens a migrated in-memory SQLite database. A single connection
// keeps every query on the same in-memory instance.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// SeedQuestions inserts seven questions whose ids equal their positions.
func SeedQuestions(t *testing.T, db *gorm.DB) []model.Question {
	t.Helper()

	qs := make([]model.Question, 0, int(model.TopicCoding))
	for topic := model.TopicJava; topic <= model.TopicCoding; topic++ {
		qs = append(qs, model.Question{
			QuestionID: uint(topic),
			Body:       "## " + topic.String() + " question",
		})
	}
	if err := db.Create(&qs).Error; err != nil {
		t.Fatalf("seed questions: %v", err)
	}

	defaults := make([]model.DefaultResponse, 0, len(qs))
	for _, q := range qs {
		defaults = append(defaults, model.DefaultResponse{
			QuestionID: q.QuestionID,
			Response:   "default answer for " + model.Topic(q.QuestionID).String(),
		})
	}
	if err := db.Create(&defaults).Error; err != nil {
		t.Fatalf("seed defaults: %v", err)
	}
	return qs
}

// SeedStudent inserts a student with the given skill labels in declared
// topic order.
func SeedStudent(t *testing.T, db *gorm.DB, email string, levels [model.SkillCount]string) *model.Student {
	t.Helper()

	s := &model.Student{
		Email:           email,
		JavaProgramming: levels[0],
		SQL:             levels[1],
		DataMiningAndML: levels[2],
		IoT:             levels[3],
		HCI:             levels[4],
		Blockchains:     levels[5],
	}
	if err := db.Create(s).Error; err != nil {
		t.Fatalf("seed student: %v", err)
	}
	return s
}

// SeedResponseSet inserts a per-student variant row whose texts name the
// variant and topic.
func SeedResponseSet(t *testing.T, db *gorm.DB, variant model.ResponseVariant, studentID uint) {
	t.Helper()

	prefix := string(variant) + " "
	set := &model.StudentResponseSet{
		StudentID:           studentID,
		JavaResponse:        prefix + model.TopicJava.String(),
		SQLResponse:         prefix + model.TopicSQL.String(),
		DataMiningResponse:  prefix + model.TopicDataMining.String(),
		IoTResponse:         prefix + model.TopicIoT.String(),
		HCIResponse:         prefix + model.TopicHCI.String(),
		BlockchainsResponse: prefix + model.TopicBlockchains.String(),
		CodingResponse:      prefix + model.TopicCoding.String(),
	}
	if err := db.Table(variant.TableName()).Create(set).Error; err != nil {
		t.Fatalf("seed %s: %v", variant, err)
	}
}

// SeedFeedback inserts one feedback row for the student and question.
func SeedFeedback(t *testing.T, db *gorm.DB, studentID, questionID uint) {
	t.Helper()

	fb := &model.Feedback{
		StudentID:            studentID,
		QuestionID:           questionID,
		InitialUnderstanding: 2,
		DefaultRank:          1,
		SkillsRank:           2,
		HobbiesRank:          3,
		SubjectsRank:         4,
		AllRank:              5,
		FinalUnderstanding:   4,
	}
	if err := db.Create(fb).Error; err != nil {
		t.Fatalf("seed feedback: %v", err)
	}
}
