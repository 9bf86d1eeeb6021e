package app

import (
	"llm_survey_backend/internal/config"
	"llm_survey_backend/internal/middleware"
	"llm_survey_backend/pkg/monitoring"
	"net/http"

	"github.com/gin-gonic/gin"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	router.GET("/metrics", monitoring.PrometheusHandler())
	router.GET("/health", c.health.HealthCheck)

	// 1. 学生问卷流程
	a.registerSurveyRoutes(router, c, cfg)

	// 2. 管理员查看与导出
	a.registerAdminRoutes(router, c, cfg)
}

func (a *App) registerSurveyRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	survey := router.Group("/")
	survey.Use(middleware.Session(cfg.Session.CookieName, a.services.auth))
	{
		survey.GET("/", c.auth.Index)
		survey.GET("/login", c.auth.LoginPage)
		survey.POST("/login", a.limiter.Middleware(http.MethodPost), c.auth.Login)
		survey.GET("/thankyou", c.survey.ThankYou)

		// 需要有效会话
		gated := survey.Group("/")
		gated.Use(middleware.RequireStudent())
		{
			gated.Match([]string{http.MethodGet, http.MethodPost}, "/term", c.survey.Term)
			gated.Match([]string{http.MethodGet, http.MethodPost}, "/coding", c.survey.Coding)
		}
	}
}

func (a *App) registerAdminRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	admin := router.Group("/")
	admin.Use(middleware.AdminAuth(cfg.Admin.Username, cfg.Admin.Password))
	{
		admin.GET("/feedback", c.admin.Feedback)
		admin.GET("/download_feedback", c.admin.DownloadFeedback)
	}
}
