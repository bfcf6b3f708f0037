package core

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// Error codes used throughout the compiler.
const (
	NOERROR     int = 0
	EMISSING    int = 122 // input file or resource does not exist
	EINVALID    int = 123 // validation of input, configuration or table failed
	ECONNECTION int = 124 // stream could not be read
	EINTERNAL   int = 125 // internal error
)

var errorTexts = map[int]string{
	NOERROR:     "OK",
	EMISSING:    "not found",
	EINVALID:    "invalid",
	ECONNECTION: "read error",
	EINTERNAL:   "internal error",
}

func errorText(ecode int) string {
	if t, ok := errorTexts[ecode]; ok {
		return t
	}
	return "undefined error"
}

// AppError is an error with an associated error code and a message suitable
// for presenting to a user of the command line tool.
type AppError interface {
	error
	ErrorCode() int
	UserMessage() string
}

type coreError struct {
	error
	code int
	msg  string
}

func (e coreError) Unwrap() error       { return e.error }
func (e coreError) ErrorCode() int      { return e.code }
func (e coreError) UserMessage() string { return e.msg }

func (e coreError) Error() string {
	if e.msg == "" {
		return fmt.Sprintf("[%d] %v", e.code, e.error)
	}
	return fmt.Sprintf("[%d] %s: %v", e.code, e.msg, e.error)
}

var _ AppError = coreError{}

// ErrorWithCode adds an error code to err's error chain.
// A nil err is replaced by an error carrying the code's text.
func ErrorWithCode(err error, code int) error {
	if err == nil {
		err = errors.New(errorText(code))
	}
	return coreError{err, code, errorText(code)}
}

// WrapError wraps err, featuring an error code and a user message.
func WrapError(err error, code int, format string, v ...interface{}) error {
	if err == nil {
		err = errors.New(errorText(code))
	}
	return coreError{err, code, fmt.Sprintf(format, v...)}
}

// Error creates an error with an error code and a user message.
func Error(code int, format string, v ...interface{}) error {
	return coreError{
		errors.New(errorText(code)),
		code,
		fmt.Sprintf(format, v...),
	}
}

// Code returns the code associated with an error.
// Errors without a code report EINTERNAL, a nil error reports NOERROR.
func Code(err error) int {
	if err == nil {
		return NOERROR
	}
	if e := AppError(nil); errors.As(err, &e) {
		return e.ErrorCode()
	}
	return EINTERNAL
}

// UserMessage returns the user message associated with an error.
// If err is nil, it returns "".
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	if e := AppError(nil); errors.As(err, &e) {
		return e.UserMessage()
	}
	return errorText(Code(err))
}

// IsMissing is a predicate: does err report a missing input or resource?
func IsMissing(err error) bool {
	return Code(err) == EMISSING
}

// UserError reports err on stderr.
func UserError(err error) {
	FprintUserError(os.Stderr, err)
}

// FprintUserError reports err on w, prefixed by its code if it has one.
func FprintUserError(w io.Writer, err error) {
	if err == nil {
		return
	}
	if e := AppError(nil); errors.As(err, &e) {
		fmt.Fprintf(w, "[%d] %s\n", e.ErrorCode(), e.UserMessage())
		return
	}
	fmt.Fprintf(w, "Error: %s\n", err.Error())
}
