package util

import (
	"llm_survey_backend/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Response 统一 JSON 响应结构（健康检查等接口使用）
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    http.StatusOK,
		Message: "success",
		Data:    data,
	})
}

func Error(c *gin.Context, code int, message string) {
	c.JSON(code, Response{
		Code:    code,
		Message: message,
	})
}

// ErrorPage renders the shared HTML error page.
func ErrorPage(c *gin.Context, code int, message string) {
	c.HTML(code, "error.html", gin.H{
		"Code":    code,
		"Message": message,
	})
}

func BadRequestPage(c *gin.Context, message string) {
	ErrorPage(c, http.StatusBadRequest, message)
}

func InternalServerErrorPage(c *gin.Context) {
	ErrorPage(c, http.StatusInternalServerError, "Internal server error")
}

func LogInternalError(c *gin.Context, err error) {
	logger.Log.Error("Internal server error",
		zap.String("path", c.Request.URL.Path),
		zap.String("request_id", c.GetString("request_id")),
		zap.Error(err))
	InternalServerErrorPage(c)
}
