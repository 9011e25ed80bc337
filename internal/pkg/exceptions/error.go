package exceptions

import (
	"errors"
	"fmt"
	"personas-web/internal/pkg/constvars"
	"runtime"
)

// ErrorKind classifies a failure so that call sites can log it differently
// while still presenting the same notification to the user.
type ErrorKind string

const (
	KindValidation ErrorKind = "validation"
	KindNetwork    ErrorKind = "network"
	KindService    ErrorKind = "service"
	KindInternal   ErrorKind = "internal"
)

type CustomError struct {
	StatusCode    int       `json:"status_code"`
	Success       bool      `json:"success"`
	ClientMessage string    `json:"message"`
	DevMessage    string    `json:"dev_message,omitempty"`
	Kind          ErrorKind `json:"-"`
	Location      *Location `json:"location,omitempty"`
	Err           error     `json:"-"`
}

type Location struct {
	File         string `json:"file"`
	Line         int    `json:"line"`
	FunctionName string `json:"function_name"`
}

func (e *CustomError) Error() string {
	if e.Location == nil {
		return e.DevMessage
	}
	return fmt.Sprintf("%s (%s:%d %s)", e.DevMessage, e.Location.File, e.Location.Line, e.Location.FunctionName)
}

func (e *CustomError) Unwrap() error {
	return e.Err
}

func BuildNewCustomError(err error, statusCode int, clientMessage, devMessage string, kind ErrorKind) *CustomError {
	location := getLocation(3)
	if err != nil {
		devMessage = fmt.Sprintf("%s: %s", devMessage, err.Error())
	}
	return &CustomError{
		StatusCode:    statusCode,
		ClientMessage: clientMessage,
		DevMessage:    devMessage,
		Kind:          kind,
		Location:      &location,
		Err:           err,
	}
}

// KindOf reports the kind of err. Errors that were not built by this package
// are internal.
func KindOf(err error) ErrorKind {
	var customErr *CustomError
	if errors.As(err, &customErr) {
		return customErr.Kind
	}
	return KindInternal
}

// ClientMessageOf returns the message that is safe to show to the user.
func ClientMessageOf(err error) string {
	var customErr *CustomError
	if errors.As(err, &customErr) {
		return customErr.ClientMessage
	}
	return constvars.ErrClientSomethingWrongWithApplication
}

func getLocation(skip int) Location {
	pc, file, line, ok := runtime.Caller(skip)
	if !ok {
		return Location{
			File:         constvars.ResponseUnknown,
			Line:         0,
			FunctionName: constvars.ResponseUnknown,
		}
	}
	function := runtime.FuncForPC(pc).Name()
	return Location{
		File:         file,
		Line:         line,
		FunctionName: function,
	}
}
