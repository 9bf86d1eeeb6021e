package repository

import (
	"llm_survey_backend/internal/model"
	"llm_survey_backend/internal/testutil"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allModerate = [model.SkillCount]string{"Moderate", "Moderate", "Moderate", "Moderate", "Moderate", "Moderate"}

func TestStudentRepositoryFindByEmail(t *testing.T) {
	db := testutil.NewTestDB(t)
	seeded := testutil.SeedStudent(t, db, "a@example.com", allModerate)
	repo := NewStudentRepository(db)

	s, err := repo.FindByEmail("a@example.com")
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.Equal(t, seeded.ID, s.ID)
	assert.Equal(t, "Moderate", s.SQL)

	missing, err := repo.FindByEmail("nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, missing)

	byID, err := repo.FindByID(seeded.ID)
	require.NoError(t, err)
	assert.Equal(t, "a@example.com", byID.Email)
}

func TestQuestionRepositoryListOrdered(t *testing.T) {
	db := testutil.NewTestDB(t)
	// 乱序插入
	require.NoError(t, db.Create(&model.Question{QuestionID: 3, Body: "c"}).Error)
	require.NoError(t, db.Create(&model.Question{QuestionID: 1, Body: "a"}).Error)
	require.NoError(t, db.Create(&model.Question{QuestionID: 2, Body: "b"}).Error)

	qs, err := NewQuestionRepository(db).ListOrdered()
	require.NoError(t, err)
	require.Len(t, qs, 3)
	assert.Equal(t, []string{"a", "b", "c"}, []string{qs[0].Body, qs[1].Body, qs[2].Body})
}

func TestResponseRepository(t *testing.T) {
	db := testutil.NewTestDB(t)
	testutil.SeedQuestions(t, db)
	s := testutil.SeedStudent(t, db, "a@example.com", allModerate)
	testutil.SeedResponseSet(t, db, model.VariantHobbies, s.ID)
	repo := NewResponseRepository(db)

	defaults, err := repo.ListDefaults()
	require.NoError(t, err)
	assert.Len(t, defaults, int(model.TopicCoding))

	set, err := repo.FindStudentSet(model.VariantHobbies, s.ID)
	require.NoError(t, err)
	require.NotNil(t, set)
	assert.Equal(t, "hobbies IoT", set.ForTopic(model.TopicIoT))

	none, err := repo.FindStudentSet(model.VariantSkills, s.ID)
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestFeedbackRepositoryCounts(t *testing.T) {
	db := testutil.NewTestDB(t)
	testutil.SeedFeedback(t, db, 1, 3)
	testutil.SeedFeedback(t, db, 1, 4)
	testutil.SeedFeedback(t, db, 2, 3)
	repo := NewFeedbackRepository(db)

	n, err := repo.CountByStudent(1)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	n, err = repo.CountByStudentAndQuestions(1, []uint{4, 7})
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	n, err = repo.CountByStudentAndQuestions(1, nil)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestFeedbackRepositoryCreateBatchIsAtomic(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewFeedbackRepository(db)

	rows := []model.Feedback{
		{StudentID: 1, QuestionID: 1, DefaultRank: 1},
		{ID: 99, StudentID: 1, QuestionID: 2, DefaultRank: 2},
		// 主键冲突，整批回滚
		{ID: 99, StudentID: 1, QuestionID: 3, DefaultRank: 3},
	}
	require.Error(t, repo.CreateBatch(rows))

	n, err := repo.CountByStudent(1)
	require.NoError(t, err)
	assert.Zero(t, n)

	require.NoError(t, repo.CreateBatch([]model.Feedback{
		{StudentID: 1, QuestionID: 1},
		{StudentID: 1, QuestionID: 2},
	}))
	n, err = repo.CountByStudent(1)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)
}

func TestFeedbackRepositoryDumpAll(t *testing.T) {
	db := testutil.NewTestDB(t)
	testutil.SeedFeedback(t, db, 5, 2)
	require.NoError(t, db.Exec("INSERT INTO llm_feedback (student_id, question_id) VALUES (?, ?)", 6, 3).Error)

	table, err := NewFeedbackRepository(db).DumpAll()
	require.NoError(t, err)

	assert.Equal(t, []string{
		"id", "student_id", "question_id", "initial_understanding",
		"llm_default_rank", "llm_skills_rank", "llm_hobbies_rank",
		"llm_subjects_rank", "llm_all_rank", "final_understanding",
	}, table.Columns)
	require.Len(t, table.Rows, 2)

	first := table.Rows[0]
	require.Len(t, first, len(table.Columns))
	require.NotNil(t, first[1])
	assert.Equal(t, "5", *first[1])

	second := table.Rows[1]
	assert.Equal(t, "6", *second[1])
	assert.Nil(t, second[3], "unset score is NULL")
}
