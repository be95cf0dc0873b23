package apperror

import (
	"errors"
	"fmt"
)

// Kind classifies a failure so the HTTP layer can pick a status and the
// caller can decide whether a retry makes sense.
type Kind int

const (
	KindInternal Kind = iota
	KindUnauthenticated
	KindInvalidInput
	KindModelUnavailable
	KindPersistenceConflict
	KindSinkFailure
	KindNotFound
	KindConflict
)

type AppError struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// KindOf extracts the kind from err, defaulting to KindInternal.
func KindOf(err error) Kind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

func New(kind Kind, message string) *AppError {
	return &AppError{Kind: kind, Message: message}
}

func Wrap(kind Kind, message string, err error) *AppError {
	return &AppError{Kind: kind, Message: message, Err: err}
}

func Unauthenticated(message string) *AppError {
	return New(KindUnauthenticated, message)
}

func InvalidInput(message string) *AppError {
	return New(KindInvalidInput, message)
}

func ModelUnavailable(err error) *AppError {
	return Wrap(KindModelUnavailable, "model invocation failed", err)
}

func PersistenceConflict(err error) *AppError {
	return Wrap(KindPersistenceConflict, "transcript write conflict persisted after retries", err)
}

func SinkFailure(err error) *AppError {
	return Wrap(KindSinkFailure, "journal entry could not be durably recorded", err)
}

func NotFound(message string) *AppError {
	return New(KindNotFound, message)
}

func Conflict(message string) *AppError {
	return New(KindConflict, message)
}
