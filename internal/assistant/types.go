package assistant

// Responder describes the behaviour required from the chat backend.
type Responder interface {
	// Greeting returns the opener shown before any question is asked.
	Greeting() string
	// Reply answers a single question.
	Reply(question string) (string, error)
}
