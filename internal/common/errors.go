package common

import (
	"errors"
	"fmt"
	"log"
	"net/http"
)

// ErrorCode classifies failures so handlers can map them to HTTP statuses
// without inspecting message strings.
type ErrorCode string

const (
	CodeAuthorization ErrorCode = "authorization"
	CodeValidation    ErrorCode = "validation"
	CodeNotFound      ErrorCode = "not_found"
	CodeConflict      ErrorCode = "conflict"
	CodeStore         ErrorCode = "store"
)

type AppError struct {
	Code    ErrorCode
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

func Forbiddenf(format string, args ...interface{}) *AppError {
	return &AppError{Code: CodeAuthorization, Message: fmt.Sprintf(format, args...)}
}

func Validationf(format string, args ...interface{}) *AppError {
	return &AppError{Code: CodeValidation, Message: fmt.Sprintf(format, args...)}
}

func NotFoundf(format string, args ...interface{}) *AppError {
	return &AppError{Code: CodeNotFound, Message: fmt.Sprintf(format, args...)}
}

func Conflictf(format string, args ...interface{}) *AppError {
	return &AppError{Code: CodeConflict, Message: fmt.Sprintf(format, args...)}
}

func Storef(err error, format string, args ...interface{}) *AppError {
	return &AppError{Code: CodeStore, Message: fmt.Sprintf(format, args...), Err: err}
}

// GetCode returns the classification of err, defaulting to CodeStore for
// anything that is not an *AppError.
func GetCode(err error) ErrorCode {
	if err == nil {
		return ""
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeStore
}

// PublicMessage returns the client-safe text for err. Store failures log
// their full wrapped cause here and surface only the classification message,
// so raw database detail never reaches a response body. Domain kinds
// (authorization, validation, not found, conflict) carry no cause and are
// surfaced verbatim.
func PublicMessage(err error) string {
	if err == nil {
		return ""
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		if appErr.Code == CodeStore {
			log.Printf("❌ store failure: %v", appErr)
			return appErr.Message
		}
		return appErr.Message
	}
	log.Printf("❌ unclassified failure: %v", err)
	return "internal error"
}

// HTTPStatus maps an error classification to its response status.
func HTTPStatus(err error) int {
	switch GetCode(err) {
	case CodeAuthorization:
		return http.StatusForbidden
	case CodeValidation:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	case CodeConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
