package domain

import "errors"

var (
	ErrNotFound      = errors.New("not found")
	ErrInvalidCursor = errors.New("invalid cursor")
)

// GenericFailure is the message used when a failed remote call offers nothing better.
const GenericFailure = "request failed"

// RemoteError is the single failure callers of the planning client ever see.
// Message is never empty.
type RemoteError struct {
	Message string
}

func (e *RemoteError) Error() string { return e.Message }

func NewRemoteError(msg string) *RemoteError {
	if msg == "" {
		msg = GenericFailure
	}
	return &RemoteError{Message: msg}
}

func IsRemote(err error) bool {
	var re *RemoteError
	return errors.As(err, &re)
}
