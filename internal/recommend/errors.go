package recommend

import (
	"errors"
	"fmt"
)

// Failure kinds. Every error returned by a Source or the Retriever matches
// exactly one of them with errors.Is.
var (
	ErrTransport   = errors.New("transport failure")
	ErrDecode      = errors.New("malformed response")
	ErrEmpty       = errors.New("no recommendations")
	ErrDataset     = errors.New("recommendation dataset unavailable")
	ErrUnavailable = errors.New("source unavailable")
	ErrUnknownMode = errors.New("no source registered for mode")
	ErrCanceled    = errors.New("retrieval canceled")
)

var kinds = []error{ErrTransport, ErrDecode, ErrEmpty, ErrDataset, ErrUnavailable, ErrUnknownMode, ErrCanceled}

// Error describes a failed retrieval.
type Error struct {
	Kind   error
	Source string
	UserID int64
	Err    error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s recommendations for user %d: %v", e.Source, e.UserID, e.Kind)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap exposes both the kind and the underlying cause.
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// KindOf returns the failure kind of err, or nil if err is not a retrieval
// failure.
func KindOf(err error) error {
	if err == nil {
		return nil
	}
	for _, kind := range kinds {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return nil
}

func newError(kind error, source string, userID int64, cause error) *Error {
	return &Error{Kind: kind, Source: source, UserID: userID, Err: cause}
}
