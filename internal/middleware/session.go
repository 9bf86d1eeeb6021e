package middleware

import (
	"llm_survey_backend/internal/util"
	"net/http"

	"github.com/gin-gonic/gin"
)

// SessionVerifier resolves a session token to a student id.
type SessionVerifier interface {
	VerifySession(token string) (uint, error)
}

// Session 从 Cookie 中解析会话令牌，校验通过后把学生 ID 写入上下文
func Session(cookieName string, verifier SessionVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(cookieName)
		if err == nil && token != "" {
			if id, err := verifier.VerifySession(token); err == nil {
				util.SetStudentID(c, id)
			}
		}
		c.Next()
	}
}

// RequireStudent redirects to the login page when no verified session exists.
func RequireStudent() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := util.GetStudentID(c); !ok {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

// AdminAuth guards admin views with basic auth; empty credentials disable it.
func AdminAuth(username, password string) gin.HandlerFunc {
	if username == "" || password == "" {
		return func(c *gin.Context) { c.Next() }
	}
	return gin.BasicAuthForRealm(gin.Accounts{username: password}, "feedback")
}
