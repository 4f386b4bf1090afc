package service

import (
	"errors"
	"fmt"
)

// ValidationError is an input problem caught before any remote call.
// Message is shown to the user as is.
type ValidationError struct {
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

var (
	ErrEmptyText          = &ValidationError{Message: "Please enter some text to analyze"}
	ErrTextTooLong        = &ValidationError{Message: fmt.Sprintf("Text must be at most %d characters", MaxTextLength)}
	ErrMissingTopic       = &ValidationError{Message: "Please select a topic"}
	ErrMissingCustomTopic = &ValidationError{Message: "Please enter a custom topic"}
)

var (
	// ErrRemoteUnavailable means the model stayed rate limited after every retry
	ErrRemoteUnavailable = errors.New("analysis service is temporarily unavailable")
	// ErrRemoteFailure is any other failure of the remote call
	ErrRemoteFailure = errors.New("analysis request failed")
	// ErrMalformedResponse means the model answered but the answer could not be used
	ErrMalformedResponse = errors.New("analysis response could not be interpreted")
)

// IsValidation reports whether err is an input validation error
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
