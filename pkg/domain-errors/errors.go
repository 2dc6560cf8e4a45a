// Package dErrors defines the coded error taxonomy shared by services and
// transport. Stores return sentinel errors (pkg/platform/sentinel); services
// translate them into coded errors so handlers can map codes to HTTP statuses
// without inspecting error strings.
package dErrors

import (
	"errors"
	"fmt"
)

// Code classifies an error for transport mapping and caller branching.
type Code string

const (
	// CodeValidation marks malformed input: bad word length, empty batches.
	// Caller's fault, never retried.
	CodeValidation Code = "validation_failed"
	// CodeBadRequest marks structurally broken requests (unparseable body,
	// missing parameters) before domain validation runs.
	CodeBadRequest Code = "bad_request"
	// CodeNotFound marks a referenced server or user profile that does not exist.
	CodeNotFound Code = "not_found"
	// CodeConflict marks duplicate creation or an all-conflict word batch.
	CodeConflict Code = "conflict"
	// CodeReservedWord marks an attempt to treat a structural document field
	// as a flagged word. Distinct from validation: the input is well formed,
	// the dedicated accessor must be used instead.
	CodeReservedWord Code = "reserved_word"
	// CodeOutOfRange marks an identifier outside the positive int64 range.
	CodeOutOfRange Code = "out_of_range"
	// CodeUnauthorized marks a missing or invalid service token.
	CodeUnauthorized Code = "unauthorized"
	// CodeInternal marks store failures and everything else that is not the
	// caller's fault. Details are logged, not echoed to clients.
	CodeInternal Code = "internal_error"
)

// Error carries a code, a human-readable message and an optional cause.
type Error struct {
	Code    Code
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

// New builds a coded error with no underlying cause.
func New(code Code, message string) error {
	return &Error{Code: code, Message: message}
}

// Newf builds a coded error with a formatted message.
func Newf(code Code, format string, args ...any) error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a code and message to an underlying error. The cause stays
// reachable through errors.Is/errors.As.
func Wrap(err error, code Code, message string) error {
	if err == nil {
		return nil
	}
	return &Error{Code: code, Message: message, cause: err}
}

// HasCode reports whether any error in the chain carries the given code.
func HasCode(err error, code Code) bool {
	var coded *Error
	for errors.As(err, &coded) {
		if coded.Code == code {
			return true
		}
		err = coded.cause
		coded = nil
	}
	return false
}

// CodeOf returns the outermost code in the chain, or CodeInternal when the
// error carries no code.
func CodeOf(err error) Code {
	var coded *Error
	if errors.As(err, &coded) {
		return coded.Code
	}
	return CodeInternal
}

// MessageOf returns the outermost coded message, or empty when uncoded.
func MessageOf(err error) string {
	var coded *Error
	if errors.As(err, &coded) {
		return coded.Message
	}
	return ""
}
