package service

import (
	"fmt"
	"llm_survey_backend/internal/model"
	"llm_survey_backend/internal/repository"
	"llm_survey_backend/internal/testutil"
	"llm_survey_backend/internal/util"
	"llm_survey_backend/pkg/markdown"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var skillLevels = [model.SkillCount]string{"Beginner", "Very proficient", "Not familiar at all", "Moderate", "Proficient", "Beginner"}

func newSurveyService(db *gorm.DB) *SurveyService {
	return NewSurveyService(
		repository.NewStudentRepository(db),
		repository.NewQuestionRepository(db),
		repository.NewResponseRepository(db),
		repository.NewFeedbackRepository(db),
		markdown.NewRenderer(markdown.DefaultStyle),
	)
}

func TestTermTopics(t *testing.T) {
	db := testutil.NewTestDB(t)
	s := testutil.SeedStudent(t, db, "a@example.com", skillLevels)
	svc := newSurveyService(db)

	topics, err := svc.TermTopics(s.ID)
	require.NoError(t, err)
	// DM(0), java(1), blockchains(1), IoT(2), HCI(3), SQL(4)
	assert.Equal(t, []model.Topic{model.TopicDataMining, model.TopicJava, model.TopicHCI, model.TopicSQL}, topics)

	_, err = svc.TermTopics(999)
	assert.ErrorIs(t, err, util.ErrStudentNotFound)
}

func TestBuildPageRendersAllVariants(t *testing.T) {
	db := testutil.NewTestDB(t)
	testutil.SeedQuestions(t, db)
	s := testutil.SeedStudent(t, db, "a@example.com", skillLevels)
	for _, v := range model.StudentVariants {
		testutil.SeedResponseSet(t, db, v, s.ID)
	}
	svc := newSurveyService(db)

	views, err := svc.BuildPage(s.ID, []model.Topic{model.TopicIoT, model.TopicJava})
	require.NoError(t, err)
	require.Len(t, views, 2)

	first := views[0]
	assert.Equal(t, 1, first.Index)
	assert.Equal(t, model.TopicIoT, first.Topic)
	assert.Equal(t, uint(4), first.QuestionID)
	assert.Contains(t, string(first.Question), "<h2>IoT question</h2>")
	assert.Contains(t, string(first.Default), "default answer for IoT")
	assert.Contains(t, string(first.Skills), "skills IoT")
	assert.Contains(t, string(first.Hobbies), "hobbies IoT")
	assert.Contains(t, string(first.Subjects), "subjects IoT")
	assert.Contains(t, string(first.All), "all IoT")
	assert.Len(t, first.Variants(), RankCount)

	assert.Equal(t, 2, views[1].Index)
	assert.Contains(t, string(views[1].Skills), "skills java_programming")
}

func TestBuildPageMissingVariantRowsRenderEmpty(t *testing.T) {
	db := testutil.NewTestDB(t)
	testutil.SeedQuestions(t, db)
	s := testutil.SeedStudent(t, db, "a@example.com", skillLevels)
	testutil.SeedResponseSet(t, db, model.VariantSubjects, s.ID)
	svc := newSurveyService(db)

	views, err := svc.BuildPage(s.ID, []model.Topic{model.TopicCoding})
	require.NoError(t, err)
	require.Len(t, views, 1)

	v := views[0]
	assert.Equal(t, uint(7), v.QuestionID)
	assert.Empty(t, v.Skills)
	assert.Empty(t, v.Hobbies)
	assert.Empty(t, v.All)
	assert.Contains(t, string(v.Subjects), "subjects coding")
	assert.NotEmpty(t, v.Default)
}

func TestBuildPageQuestionOutOfRange(t *testing.T) {
	db := testutil.NewTestDB(t)
	require.NoError(t, db.Create(&model.Question{QuestionID: 1, Body: "only"}).Error)
	svc := newSurveyService(db)

	_, err := svc.BuildPage(1, []model.Topic{model.TopicCoding})
	assert.ErrorIs(t, err, util.ErrQuestionNotFound)
}

func TestPageCompleted(t *testing.T) {
	db := testutil.NewTestDB(t)
	testutil.SeedQuestions(t, db)
	s := testutil.SeedStudent(t, db, "a@example.com", skillLevels)
	svc := newSurveyService(db)

	done, err := svc.PageCompleted(s.ID, []model.Topic{model.TopicCoding})
	require.NoError(t, err)
	assert.False(t, done)

	testutil.SeedFeedback(t, db, s.ID, uint(model.TopicCoding))
	done, err = svc.PageCompleted(s.ID, []model.Topic{model.TopicCoding})
	require.NoError(t, err)
	assert.True(t, done)

	done, err = svc.PageCompleted(s.ID, []model.Topic{model.TopicJava, model.TopicSQL})
	require.NoError(t, err)
	assert.False(t, done)
}

// formValues builds a complete submission answering the given question ids.
func formValues(ids ...uint) map[string]string {
	form := map[string]string{}
	for i, id := range ids {
		idx := i + 1
		form[fmt.Sprintf("question_id_%d", idx)] = strconv.Itoa(int(id))
		form[fmt.Sprintf("pre_score_%d", idx)] = "2"
		form[fmt.Sprintf("post_score_%d", idx)] = "4"
		for j := 1; j <= RankCount; j++ {
			form[fmt.Sprintf("rank_%d_%d", j, idx)] = strconv.Itoa(j)
		}
	}
	return form
}

func getter(form map[string]string) func(string) string {
	return func(key string) string { return form[key] }
}

func TestParseFeedbackForm(t *testing.T) {
	entries, err := ParseFeedbackForm(getter(formValues(11, 12)), 2)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, FeedbackEntry{
		QuestionID: 12,
		PreScore:   2,
		PostScore:  4,
		Ranks:      [RankCount]int{1, 2, 3, 4, 5},
	}, entries[1])
}

func TestParseFeedbackFormRejectsMalformed(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"missing question id", "question_id_1", ""},
		{"zero question id", "question_id_1", "0"},
		{"non numeric pre score", "pre_score_1", "high"},
		{"missing post score", "post_score_1", ""},
		{"missing rank", "rank_3_1", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := formValues(11)
			form[tt.key] = tt.value
			_, err := ParseFeedbackForm(getter(form), 1)
			assert.ErrorIs(t, err, util.ErrInvalidSubmission)
		})
	}
}

var termPage = []model.Topic{model.TopicJava, model.TopicSQL, model.TopicDataMining, model.TopicIoT}

func TestSubmitPageInsertsOneRowPerEntry(t *testing.T) {
	db := testutil.NewTestDB(t)
	testutil.SeedQuestions(t, db)
	svc := newSurveyService(db)

	entries, err := ParseFeedbackForm(getter(formValues(1, 2, 3, 4)), 4)
	require.NoError(t, err)
	require.NoError(t, svc.SubmitPage(3, termPage, entries))

	var rows []model.Feedback
	require.NoError(t, db.Order("id").Find(&rows).Error)
	require.Len(t, rows, 4)
	assert.Equal(t, model.Feedback{
		ID:                   1,
		StudentID:            3,
		QuestionID:           1,
		InitialUnderstanding: 2,
		DefaultRank:          1,
		SkillsRank:           2,
		HobbiesRank:          3,
		SubjectsRank:         4,
		AllRank:              5,
		FinalUnderstanding:   4,
	}, rows[0])
}

func countRows(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var count int64
	require.NoError(t, db.Model(&model.Feedback{}).Count(&count).Error)
	return count
}

func TestSubmitPageRejectsOutOfRangeWithoutWriting(t *testing.T) {
	db := testutil.NewTestDB(t)
	testutil.SeedQuestions(t, db)
	svc := newSurveyService(db)

	entries, err := ParseFeedbackForm(getter(formValues(1, 2, 3, 4)), 4)
	require.NoError(t, err)
	entries[3].Ranks[2] = 9

	err = svc.SubmitPage(3, termPage, entries)
	assert.ErrorIs(t, err, util.ErrInvalidSubmission)
	assert.Zero(t, countRows(t, db))

	assert.ErrorIs(t, svc.SubmitPage(3, termPage, nil), util.ErrInvalidSubmission)
}

func TestSubmitPageRejectsQuestionsOffThePage(t *testing.T) {
	db := testutil.NewTestDB(t)
	testutil.SeedQuestions(t, db)
	svc := newSurveyService(db)

	tests := []struct {
		name string
		ids  []uint
	}{
		{"same question repeated", []uint{7, 7, 7, 7}},
		{"positions swapped", []uint{2, 1, 3, 4}},
		{"unknown question", []uint{1, 2, 3, 99}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries, err := ParseFeedbackForm(getter(formValues(tt.ids...)), len(tt.ids))
			require.NoError(t, err)
			assert.ErrorIs(t, svc.SubmitPage(3, termPage, entries), util.ErrInvalidSubmission)
		})
	}

	// fewer entries than questions on the page
	entries, err := ParseFeedbackForm(getter(formValues(1, 2)), 2)
	require.NoError(t, err)
	assert.ErrorIs(t, svc.SubmitPage(3, termPage, entries), util.ErrInvalidSubmission)

	assert.Zero(t, countRows(t, db))
}
