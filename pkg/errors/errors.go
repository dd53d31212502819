// Package errors defines the coded errors corescene reports at its
// boundaries: loading and validating documents, resolving papers and track
// types, storage, rendering and export.
//
// The scene engine does not return errors for interactions that simply have
// no effect. Codes are for callers that have to tell failures apart, such as
// the CLI exit path and the HTTP server's status mapping.
//
//	err := errors.New(errors.ErrCodeInvalidTrack, "unknown track type %q", name)
//	if errors.IsInvalid(err) {
//	    // caller mistake, report it as such
//	}
//
//	err = errors.Wrap(errors.ErrCodeStorage, err, "put %s", id)
package errors

import (
	"errors"
	"fmt"
)

// Code is a machine-readable error code.
type Code string

const (
	ErrCodeInvalidInput    Code = "INVALID_INPUT"
	ErrCodeInvalidFormat   Code = "INVALID_FORMAT"
	ErrCodeInvalidPaper    Code = "INVALID_PAPER"
	ErrCodeInvalidTrack    Code = "INVALID_TRACK"
	ErrCodeInvalidDocument Code = "INVALID_DOCUMENT"
	ErrCodeInvalidPage     Code = "INVALID_PAGE"

	ErrCodeNotFound         Code = "NOT_FOUND"
	ErrCodeDocumentNotFound Code = "DOCUMENT_NOT_FOUND"
	ErrCodeFileNotFound     Code = "FILE_NOT_FOUND"

	ErrCodeRenderFailed Code = "RENDER_FAILED"
	ErrCodeStorage      Code = "STORAGE"
	ErrCodeInternal     Code = "INTERNAL_ERROR"
	ErrCodeUnsupported  Code = "UNSUPPORTED"
)

// Category groups codes by who is at fault.
type Category int

const (
	// Failure is anything the caller could not have avoided.
	Failure Category = iota
	// Invalid marks a request or document the caller has to fix.
	Invalid
	// Missing marks a reference to something that does not exist.
	Missing
)

var categories = map[Code]Category{
	ErrCodeInvalidInput:     Invalid,
	ErrCodeInvalidFormat:    Invalid,
	ErrCodeInvalidPaper:     Invalid,
	ErrCodeInvalidTrack:     Invalid,
	ErrCodeInvalidDocument:  Invalid,
	ErrCodeInvalidPage:      Invalid,
	ErrCodeNotFound:         Missing,
	ErrCodeDocumentNotFound: Missing,
	ErrCodeFileNotFound:     Missing,
}

// Category returns the category of c. Unknown codes are failures.
func (c Code) Category() Category {
	return categories[c]
}

// Error is a coded error with an optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

// New returns an error with code and a formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap returns an error with code, a formatted message and cause.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// Is reports whether any *Error in err's chain carries code.
func Is(err error, code Code) bool {
	for err != nil {
		if e, ok := err.(*Error); ok && e.Code == code {
			return true
		}
		err = errors.Unwrap(err)
	}
	return false
}

// GetCode returns the code of the outermost *Error in err's chain, or "".
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns the message of the outermost *Error without its code,
// or err's text for any other error.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// IsNotFound reports whether err's code names a missing resource.
func IsNotFound(err error) bool {
	return GetCode(err).Category() == Missing
}

// IsInvalid reports whether err is a caller mistake rather than a failure.
func IsInvalid(err error) bool {
	return GetCode(err).Category() == Invalid
}
