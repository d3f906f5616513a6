package assistant

import "errors"

var (
	// ErrEmptyQuestion is returned when a reply is requested for a blank question.
	ErrEmptyQuestion = errors.New("question must not be empty")
	// ErrQuestionTooLong is returned when the question exceeds the accepted length.
	ErrQuestionTooLong = errors.New("question exceeds the maximum length")
)
