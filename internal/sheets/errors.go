package sheets

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/api/googleapi"
)

var (
	ErrInvalidRange  = errors.New("invalid range")
	ErrRowNotFound   = errors.New("row not found")
	ErrSheetNotFound = errors.New("sheet not found")
)

// Code classifies a store failure so callers can decide whether to retry.
type Code string

const (
	CodeInvalidRange Code = "invalid_range"
	CodeNotFound     Code = "not_found"
	CodeUnavailable  Code = "unavailable"
	CodeRejected     Code = "rejected"
)

// Error is returned by every Store operation that fails.
type Error struct {
	Op    string
	Range string
	Code  Code
	Err   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("sheets %s %s (%s): %v", e.Op, e.Range, e.Code, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Temporary reports whether retrying the operation may succeed.
func (e *Error) Temporary() bool { return e.Code == CodeUnavailable }

// CodeOf returns the Code carried by err, or "" when err is not a store error.
func CodeOf(err error) Code {
	var se *Error
	if errors.As(err, &se) {
		return se.Code
	}
	return ""
}

func wrap(op, rng string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Op: op, Range: rng, Code: classify(err), Err: err}
}

func classify(err error) Code {
	switch {
	case errors.Is(err, ErrInvalidRange):
		return CodeInvalidRange
	case errors.Is(err, ErrRowNotFound), errors.Is(err, ErrSheetNotFound):
		return CodeNotFound
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return CodeUnavailable
	}

	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		if gerr.Code == http.StatusTooManyRequests || gerr.Code >= http.StatusInternalServerError {
			return CodeUnavailable
		}
		return CodeRejected
	}
	return CodeUnavailable
}
