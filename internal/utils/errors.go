package utils

import (
	"errors"
	"net/http"
	"strings"
)

type Code string

const (
	CodeInvalidArgument Code = "INVALID_ARGUMENT"
	CodeUnauthorized    Code = "UNAUTHORIZED"
	CodeForbidden       Code = "FORBIDDEN"
	CodeNotFound        Code = "NOT_FOUND"
	CodeConflict        Code = "CONFLICT"
	CodeUnavailable     Code = "UNAVAILABLE"
	CodeTimeout         Code = "TIMEOUT"
	CodeInternal        Code = "INTERNAL"
)

// AppError is the error contract shared by repositories, services and
// handlers. Message is safe to return to clients verbatim; Err holds
// the underlying cause for logs only.
type AppError struct {
	Code    Code
	Op      string // ex: "StudentService.Save"
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e == nil {
		return "<nil>"
	}
	parts := make([]string, 0, 3)
	if e.Op != "" {
		parts = append(parts, e.Op)
	}
	if e.Message != "" {
		parts = append(parts, e.Message)
	}
	if e.Err != nil {
		parts = append(parts, e.Err.Error())
	}
	if len(parts) == 0 {
		return string(e.Code)
	}
	return strings.Join(parts, ": ")
}

func (e *AppError) Unwrap() error { return e.Err }

func E(code Code, op, msg string, err error) error {
	return &AppError{Code: code, Op: op, Message: msg, Err: err}
}

func IsCode(err error, code Code) bool {
	var ae *AppError
	return errors.As(err, &ae) && ae.Code == code
}

var statusByCode = map[Code]int{
	CodeInvalidArgument: http.StatusBadRequest,
	CodeUnauthorized:    http.StatusUnauthorized,
	CodeForbidden:       http.StatusForbidden,
	CodeNotFound:        http.StatusNotFound,
	CodeConflict:        http.StatusConflict,
	CodeUnavailable:     http.StatusServiceUnavailable,
	CodeTimeout:         http.StatusGatewayTimeout,
}

// HTTPStatus picks the response status for an error that escaped to a
// handler. Unknown errors are 500; a bare ErrNotFound that was never
// wrapped still maps to 404.
func HTTPStatus(err error) int {
	var ae *AppError
	if errors.As(err, &ae) {
		if s, ok := statusByCode[ae.Code]; ok {
			return s
		}
		return http.StatusInternalServerError
	}
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

// ErrNotFound is returned by repositories when a row legitimately does
// not exist; it is never a transport failure.
var ErrNotFound = errors.New("not found")
