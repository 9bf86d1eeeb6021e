package controller

import (
	"llm_survey_backend/internal/config"
	"llm_survey_backend/internal/service"
	"llm_survey_backend/internal/util"
	"llm_survey_backend/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AuthController struct {
	AuthService *service.AuthService
	Session     *config.SessionConfig
}

func NewAuthController(authService *service.AuthService, session *config.SessionConfig) *AuthController {
	return &AuthController{
		AuthService: authService,
		Session:     session,
	}
}

type LoginRequest struct {
	Email string `form:"email" binding:"required"`
}

// @Router / [get]
func (c *AuthController) Index(ctx *gin.Context) {
	ctx.Redirect(http.StatusFound, "/login")
}

// @Summary 登录页
// @Router /login [get]
func (c *AuthController) LoginPage(ctx *gin.Context) {
	ctx.HTML(http.StatusOK, "login.html", gin.H{})
}

// @Summary 按邮箱登录
// @Description 未登记邮箱显示提示页；已提交过反馈的学生直接跳转到完成页
// @Router /login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req LoginRequest
	if err := ctx.ShouldBind(&req); err != nil {
		ctx.HTML(http.StatusBadRequest, "login.html", gin.H{"Error": "Please enter your email address."})
		return
	}

	res, err := c.AuthService.Login(req.Email)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	switch res.Outcome {
	case service.LoginUnregistered:
		ctx.HTML(http.StatusOK, "unregistered.html", gin.H{"Email": req.Email})
	case service.LoginCompleted:
		ctx.Redirect(http.StatusFound, "/thankyou")
	default:
		logger.Log.Info("session granted", zap.Uint("student_id", res.StudentID))
		setSessionCookie(ctx, c.Session, res.Token)
		ctx.Redirect(http.StatusFound, "/term")
	}
}

func setSessionCookie(ctx *gin.Context, cfg *config.SessionConfig, token string) {
	maxAge := int(cfg.ExpireTime.Seconds())
	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(cfg.CookieName, token, maxAge, "/", "", cfg.Secure, true)
}

func clearSessionCookie(ctx *gin.Context, cfg *config.SessionConfig) {
	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(cfg.CookieName, "", -1, "/", "", cfg.Secure, true)
}
