package assistant

import (
	"strings"
	"unicode/utf8"
)

// maxQuestionLen caps accepted questions; anything longer is rejected rather
// than truncated so the caller can tell the client.
const maxQuestionLen = 2000

// greeting is the canned opener, kept byte for byte as the product copy.
const greeting = "Hey!  Its great to hear from you. Hows everything going? Let me know whats on your mind—Im here to help with anything you need!"

type cannedResponder struct{}

// New creates a Responder with canned replies.
func New() Responder {
	return &cannedResponder{}
}

func (r *cannedResponder) Greeting() string {
	return greeting
}

func (r *cannedResponder) Reply(question string) (string, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return "", ErrEmptyQuestion
	}
	if utf8.RuneCountInString(question) > maxQuestionLen {
		return "", ErrQuestionTooLong
	}
	return "answer of " + question, nil
}
