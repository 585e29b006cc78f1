package session

import "errors"

var (
	// ErrInvalidAnswer is returned when the selected option is not one of the question's options
	ErrInvalidAnswer = errors.New("answer does not match any option")
	// ErrQuit is returned by a presenter when the learner ends the session early
	ErrQuit = errors.New("session ended by learner")
	// ErrMalformedQuestion is returned for questions that cannot be presented
	ErrMalformedQuestion = errors.New("malformed question")
)
