package service

import (
	"errors"
	"fmt"
	"html/template"
	"llm_survey_backend/internal/model"
	"llm_survey_backend/internal/repository"
	"llm_survey_backend/internal/util"
	"llm_survey_backend/pkg/markdown"
	"llm_survey_backend/pkg/monitoring"
	"strconv"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

// RankCount is the number of response variants ranked per question.
const RankCount = 5

type SurveyService struct {
	StudentRepo  *repository.StudentRepository
	QuestionRepo *repository.QuestionRepository
	ResponseRepo *repository.ResponseRepository
	FeedbackRepo *repository.FeedbackRepository
	Renderer     *markdown.Renderer
	validate     *validator.Validate
}

func NewSurveyService(
	studentRepo *repository.StudentRepository,
	questionRepo *repository.QuestionRepository,
	responseRepo *repository.ResponseRepository,
	feedbackRepo *repository.FeedbackRepository,
	renderer *markdown.Renderer,
) *SurveyService {
	return &SurveyService{
		StudentRepo:  studentRepo,
		QuestionRepo: questionRepo,
		ResponseRepo: responseRepo,
		FeedbackRepo: feedbackRepo,
		Renderer:     renderer,
		validate:     validator.New(),
	}
}

// QuestionView 页面上一道题及五种回答的渲染结果
type QuestionView struct {
	Index      int
	Topic      model.Topic
	QuestionID uint
	Question   template.HTML
	Default    template.HTML
	Skills     template.HTML
	Hobbies    template.HTML
	Subjects   template.HTML
	All        template.HTML
}

// Variants returns the rendered answers in form rank order.
func (v QuestionView) Variants() []template.HTML {
	return []template.HTML{v.Default, v.Skills, v.Hobbies, v.Subjects, v.All}
}

// TermTopics returns the four general-survey topics for the student.
func (s *SurveyService) TermTopics(studentID uint) ([]model.Topic, error) {
	student, err := s.StudentRepo.FindByID(studentID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrStudentNotFound
	}
	if err != nil {
		return nil, err
	}
	return SelectTopics(student.SkillLevels()), nil
}

func questionAt(questions []model.Question, topic model.Topic) (*model.Question, error) {
	pos := int(topic)
	if pos < 1 || pos > len(questions) {
		return nil, fmt.Errorf("%w: position %d of %d", util.ErrQuestionNotFound, pos, len(questions))
	}
	return &questions[pos-1], nil
}

// BuildPage renders the questions at the given positions together with every
// response variant. Missing per-student variant rows render empty.
func (s *SurveyService) BuildPage(studentID uint, topics []model.Topic) ([]QuestionView, error) {
	questions, err := s.QuestionRepo.ListOrdered()
	if err != nil {
		return nil, err
	}

	defaults, err := s.ResponseRepo.ListDefaults()
	if err != nil {
		return nil, err
	}
	defaultByQuestion := make(map[uint]string, len(defaults))
	for _, d := range defaults {
		defaultByQuestion[d.QuestionID] = d.Response
	}

	sets := make(map[model.ResponseVariant]*model.StudentResponseSet, len(model.StudentVariants))
	for _, v := range model.StudentVariants {
		set, err := s.ResponseRepo.FindStudentSet(v, studentID)
		if err != nil {
			return nil, err
		}
		sets[v] = set
	}

	variantHTML := func(v model.ResponseVariant, topic model.Topic) template.HTML {
		set := sets[v]
		if set == nil {
			return ""
		}
		return s.Renderer.Render(set.ForTopic(topic))
	}

	views := make([]QuestionView, 0, len(topics))
	for i, topic := range topics {
		q, err := questionAt(questions, topic)
		if err != nil {
			return nil, err
		}
		views = append(views, QuestionView{
			Index:      i + 1,
			Topic:      topic,
			QuestionID: q.QuestionID,
			Question:   s.Renderer.Render(q.Body),
			Default:    s.Renderer.Render(defaultByQuestion[q.QuestionID]),
			Skills:     variantHTML(model.VariantSkills, topic),
			Hobbies:    variantHTML(model.VariantHobbies, topic),
			Subjects:   variantHTML(model.VariantSubjects, topic),
			All:        variantHTML(model.VariantAll, topic),
		})
	}
	return views, nil
}

// PageQuestionIDs resolves the question id at each topic position.
func (s *SurveyService) PageQuestionIDs(topics []model.Topic) ([]uint, error) {
	questions, err := s.QuestionRepo.ListOrdered()
	if err != nil {
		return nil, err
	}
	ids := make([]uint, 0, len(topics))
	for _, topic := range topics {
		q, err := questionAt(questions, topic)
		if err != nil {
			return nil, err
		}
		ids = append(ids, q.QuestionID)
	}
	return ids, nil
}

// PageCompleted reports whether the student already left feedback on any
// question of the page.
func (s *SurveyService) PageCompleted(studentID uint, topics []model.Topic) (bool, error) {
	ids, err := s.PageQuestionIDs(topics)
	if err != nil {
		return false, err
	}
	n, err := s.FeedbackRepo.CountByStudentAndQuestions(studentID, ids)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// FeedbackEntry is one question's submitted scores. Ranks follow the variant
// order default, skills, hobbies, subjects, all.
type FeedbackEntry struct {
	QuestionID uint           `validate:"required"`
	PreScore   int            `validate:"min=1,max=5"`
	PostScore  int            `validate:"min=1,max=5"`
	Ranks      [RankCount]int `validate:"dive,min=1,max=5"`
}

// ParseFeedbackForm reads n entries from form fields named question_id_{i},
// pre_score_{i}, post_score_{i} and rank_{j}_{i}, with i and j 1-based.
func ParseFeedbackForm(get func(key string) string, n int) ([]FeedbackEntry, error) {
	atoi := func(key string) (int, error) {
		v, err := strconv.Atoi(get(key))
		if err != nil {
			return 0, fmt.Errorf("%w: field %s", util.ErrInvalidSubmission, key)
		}
		return v, nil
	}

	entries := make([]FeedbackEntry, 0, n)
	for idx := 1; idx <= n; idx++ {
		var e FeedbackEntry

		qid, err := atoi(fmt.Sprintf("question_id_%d", idx))
		if err != nil {
			return nil, err
		}
		if qid <= 0 {
			return nil, fmt.Errorf("%w: question_id_%d", util.ErrInvalidSubmission, idx)
		}
		e.QuestionID = uint(qid)

		if e.PreScore, err = atoi(fmt.Sprintf("pre_score_%d", idx)); err != nil {
			return nil, err
		}
		if e.PostScore, err = atoi(fmt.Sprintf("post_score_%d", idx)); err != nil {
			return nil, err
		}
		for j := 1; j <= RankCount; j++ {
			if e.Ranks[j-1], err = atoi(fmt.Sprintf("rank_%d_%d", j, idx)); err != nil {
				return nil, err
			}
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// SubmitPage validates and stores one feedback row per entry in a single
// transaction. Entry i must answer the question at position topics[i].
func (s *SurveyService) SubmitPage(studentID uint, topics []model.Topic, entries []FeedbackEntry) error {
	if len(entries) == 0 || len(entries) != len(topics) {
		return fmt.Errorf("%w: %d entries for %d questions", util.ErrInvalidSubmission, len(entries), len(topics))
	}

	ids, err := s.PageQuestionIDs(topics)
	if err != nil {
		return err
	}

	rows := make([]model.Feedback, 0, len(entries))
	for i, e := range entries {
		if err := s.validate.Struct(e); err != nil {
			return fmt.Errorf("%w: %v", util.ErrInvalidSubmission, err)
		}
		// 题号必须与本页对应位置的题目一致
		if e.QuestionID != ids[i] {
			return fmt.Errorf("%w: question_id_%d is %d, want %d", util.ErrInvalidSubmission, i+1, e.QuestionID, ids[i])
		}
		rows = append(rows, model.Feedback{
			StudentID:            studentID,
			QuestionID:           e.QuestionID,
			InitialUnderstanding: e.PreScore,
			DefaultRank:          e.Ranks[0],
			SkillsRank:           e.Ranks[1],
			HobbiesRank:          e.Ranks[2],
			SubjectsRank:         e.Ranks[3],
			AllRank:              e.Ranks[4],
			FinalUnderstanding:   e.PostScore,
		})
	}

	if err := s.FeedbackRepo.CreateBatch(rows); err != nil {
		return err
	}
	monitoring.FeedbackRows.Add(float64(len(rows)))
	return nil
}
