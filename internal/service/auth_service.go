package service

import (
	"llm_survey_backend/internal/config"
	"llm_survey_backend/internal/repository"
	"llm_survey_backend/internal/util"
	"llm_survey_backend/pkg/monitoring"
	"strings"
)

type LoginOutcome string

const (
	// LoginUnregistered: 邮箱不在学生名单中
	LoginUnregistered LoginOutcome = "unregistered"
	// LoginCompleted: 已提交过反馈，不再发放会话
	LoginCompleted LoginOutcome = "completed"
	LoginGranted   LoginOutcome = "granted"
)

type LoginResult struct {
	Outcome   LoginOutcome
	StudentID uint
	Token     string
}

type AuthService struct {
	StudentRepo  *repository.StudentRepository
	FeedbackRepo *repository.FeedbackRepository
	Cfg          *config.SessionConfig
}

func NewAuthService(studentRepo *repository.StudentRepository, feedbackRepo *repository.FeedbackRepository, cfg *config.SessionConfig) *AuthService {
	return &AuthService{
		StudentRepo:  studentRepo,
		FeedbackRepo: feedbackRepo,
		Cfg:          cfg,
	}
}

func (s *AuthService) Login(email string) (*LoginResult, error) {
	student, err := s.StudentRepo.FindByEmail(strings.TrimSpace(email))
	if err != nil {
		return nil, err
	}
	if student == nil {
		monitoring.Logins.WithLabelValues(string(LoginUnregistered)).Inc()
		return &LoginResult{Outcome: LoginUnregistered}, nil
	}

	count, err := s.FeedbackRepo.CountByStudent(student.ID)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		monitoring.Logins.WithLabelValues(string(LoginCompleted)).Inc()
		return &LoginResult{Outcome: LoginCompleted, StudentID: student.ID}, nil
	}

	token, err := util.GenerateSessionToken(student.ID, s.Cfg.Secret, s.Cfg.ExpireTime)
	if err != nil {
		return nil, err
	}
	monitoring.Logins.WithLabelValues(string(LoginGranted)).Inc()
	return &LoginResult{Outcome: LoginGranted, StudentID: student.ID, Token: token}, nil
}

// VerifySession returns the student id carried by a session token.
func (s *AuthService) VerifySession(token string) (uint, error) {
	claims, err := util.ParseSessionToken(token, s.Cfg.Secret)
	if err != nil {
		return 0, err
	}
	return claims.StudentID, nil
}
