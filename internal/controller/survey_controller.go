package controller

import (
	"errors"
	"llm_survey_backend/internal/config"
	"llm_survey_backend/internal/model"
	"llm_survey_backend/internal/service"
	"llm_survey_backend/internal/util"
	"llm_survey_backend/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// surveyPage describes one step of the survey flow.
type surveyPage struct {
	template string
	next     string
	// last pages end the session once submitted
	last   bool
	topics func(studentID uint) ([]model.Topic, error)
}

type SurveyController struct {
	Service *service.SurveyService
	Session *config.SessionConfig
	term    surveyPage
	coding  surveyPage
}

func NewSurveyController(svc *service.SurveyService, session *config.SessionConfig) *SurveyController {
	c := &SurveyController{Service: svc, Session: session}
	c.term = surveyPage{
		template: "term.html",
		next:     "/coding",
		topics:   svc.TermTopics,
	}
	c.coding = surveyPage{
		template: "coding.html",
		next:     "/thankyou",
		last:     true,
		topics: func(uint) ([]model.Topic, error) {
			return []model.Topic{model.TopicCoding}, nil
		},
	}
	return c
}

// @Summary 综合问卷（两个最弱、两个最强的主题）
// @Router /term [get]
// @Router /term [post]
func (c *SurveyController) Term(ctx *gin.Context) {
	c.handle(ctx, c.term)
}

// @Summary 编程专项问卷
// @Router /coding [get]
// @Router /coding [post]
func (c *SurveyController) Coding(ctx *gin.Context) {
	c.handle(ctx, c.coding)
}

// @Router /thankyou [get]
func (c *SurveyController) ThankYou(ctx *gin.Context) {
	ctx.HTML(http.StatusOK, "thankyou.html", gin.H{})
}

func (c *SurveyController) handle(ctx *gin.Context, page surveyPage) {
	studentID, ok := util.GetStudentID(ctx)
	if !ok {
		ctx.Redirect(http.StatusFound, "/login")
		return
	}

	topics, err := page.topics(studentID)
	if errors.Is(err, util.ErrStudentNotFound) {
		// 令牌有效但学生记录已不存在
		clearSessionCookie(ctx, c.Session)
		ctx.Redirect(http.StatusFound, "/login")
		return
	}
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	done, err := c.Service.PageCompleted(studentID, topics)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	if done {
		c.advance(ctx, page)
		return
	}

	if ctx.Request.Method == http.MethodPost {
		c.submit(ctx, page, studentID, topics)
		return
	}

	views, err := c.Service.BuildPage(studentID, topics)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	ctx.HTML(http.StatusOK, page.template, gin.H{
		"Responses":    views,
		"HighlightCSS": c.Service.Renderer.CSS(),
		"Scale":        scale(),
		"Variants":     variantLabels,
	})
}

func (c *SurveyController) submit(ctx *gin.Context, page surveyPage, studentID uint, topics []model.Topic) {
	entries, err := service.ParseFeedbackForm(ctx.PostForm, len(topics))
	if err == nil {
		err = c.Service.SubmitPage(studentID, topics, entries)
	}
	if errors.Is(err, util.ErrInvalidSubmission) {
		logger.Log.Warn("rejected survey submission",
			zap.Uint("student_id", studentID),
			zap.String("page", page.template),
			zap.Error(err))
		util.BadRequestPage(ctx, "Please answer every question before submitting.")
		return
	}
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	logger.Log.Info("survey page submitted",
		zap.Uint("student_id", studentID),
		zap.String("page", page.template),
		zap.Int("rows", len(entries)))
	c.advance(ctx, page)
}

func (c *SurveyController) advance(ctx *gin.Context, page surveyPage) {
	if page.last {
		clearSessionCookie(ctx, c.Session)
	}
	ctx.Redirect(http.StatusFound, page.next)
}

// variantLabels 与表单中 rank_{j}_{i} 的 j 一一对应
var variantLabels = []string{"Response A", "Response B", "Response C", "Response D", "Response E"}

func scale() []int {
	out := make([]int, service.RankCount)
	for i := range out {
		out[i] = i + 1
	}
	return out
}
