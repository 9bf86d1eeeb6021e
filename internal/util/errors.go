package util

import "errors"

var (
	ErrStudentNotFound   = errors.New("student not found")
	ErrQuestionNotFound  = errors.New("question not found")
	ErrInvalidSubmission = errors.New("invalid survey submission")
	ErrInvalidSession    = errors.New("invalid session token")
)
