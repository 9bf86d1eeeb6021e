package util

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const studentContextKey = "student_id"

type SessionClaims struct {
	StudentID uint `json:"sid"`
	jwt.RegisteredClaims
}

// GenerateSessionToken signs a token for the student. A zero expiration
// produces a token that never expires.
func GenerateSessionToken(studentID uint, secret string, expiration time.Duration) (string, error) {
	now := time.Now()
	claims := &SessionClaims{
		StudentID: studentID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	if expiration > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(expiration))
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func ParseSessionToken(tokenString, secret string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, errors.Join(ErrInvalidSession, err)
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid || claims.StudentID == 0 {
		return nil, ErrInvalidSession
	}
	return claims, nil
}

func SetStudentID(c *gin.Context, id uint) {
	c.Set(studentContextKey, id)
}

// GetStudentID returns the authenticated student for this request.
func GetStudentID(c *gin.Context) (uint, bool) {
	v, exists := c.Get(studentContextKey)
	if !exists {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok && id != 0
}
