package cssdocs

import (
	"errors"
	"fmt"
)

// Application error codes.
const (
	ECONFIG    = "config"
	EINTERNAL  = "internal"
	EINVALID   = "invalid"
	EPARSE     = "parse"
	ETRANSPORT = "transport"
)

// Error represents an application-specific error.
type Error struct {
	Code    string
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("cssdocs error: code=%s message=%s", e.Code, e.Message)
}

// Errorf is a helper function to return an Error with a given code and formatted message.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// ErrorCode unwraps an application error and returns its code.
// Non-application errors always return EINTERNAL.
func ErrorCode(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Code
	}
	return EINTERNAL
}

// ErrorMessage unwraps an application error and returns its message.
// Non-application errors always return "Internal error."
func ErrorMessage(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Message
	}
	return "Internal error."
}

// Step identifies one of the two queries issued per scope.
type Step string

// Step constants.
const (
	StepProperties Step = "properties"
	StepValues     Step = "values"
)

// StepError attributes a failure to the scope and step at which it occurred.
type StepError struct {
	Scope string
	Step  Step
	Err   error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("%s query for scope %q: %v", e.Step, e.Scope, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}
