package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyQuestion indicates a blank or whitespace-only question
	ErrEmptyQuestion = errors.New("question is empty")
	// ErrBusy indicates a question is already in flight
	ErrBusy = errors.New("a question is already in flight")
	// ErrQuestionTooLong indicates the question exceeds the length limit
	ErrQuestionTooLong = errors.New("question too long")
)

// BackendError is a failure the backend reported in its response body,
// as opposed to a transport failure where no usable response arrived.
type BackendError struct {
	Status  int
	Message string
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("backend returned %d: %s", e.Status, e.Message)
}
