// Package errortypes classifies the errors surfaced by textdigest so that
// callers can map them to exit codes and HTTP statuses.
package errortypes

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
)

// ErrorType is the category of an AppError.
type ErrorType string

const (
	ErrorTypeInvalidArgument ErrorType = "invalid_argument"
	ErrorTypeConfig          ErrorType = "config"
	ErrorTypeIO              ErrorType = "io"
	ErrorTypeInternal        ErrorType = "internal"
)

// AppError wraps an underlying error with a category and context fields.
type AppError struct {
	Err     error
	Type    ErrorType
	Message string
	Fields  map[string]any
}

func (e *AppError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Err.Error()
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// WithField attaches a key/value pair that LogError will emit.
func (e *AppError) WithField(key string, value any) *AppError {
	if e.Fields == nil {
		e.Fields = make(map[string]any)
	}
	e.Fields[key] = value
	return e
}

func newAppError(errType ErrorType, err error, message string) *AppError {
	if err == nil {
		err = errors.New(string(errType))
	}
	return &AppError{Err: err, Type: errType, Message: message}
}

// InvalidArgument reports a caller mistake such as an out of range percentage.
func InvalidArgument(err error, message string) *AppError {
	return newAppError(ErrorTypeInvalidArgument, err, message)
}

func ConfigError(err error, message string) *AppError {
	return newAppError(ErrorTypeConfig, err, message)
}

func IOError(err error, message string) *AppError {
	return newAppError(ErrorTypeIO, err, message)
}

func InternalError(err error, message string) *AppError {
	return newAppError(ErrorTypeInternal, err, message)
}

// TypeOf returns the category of err, or ErrorTypeInternal for errors that
// were never classified.
func TypeOf(err error) ErrorType {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type
	}
	return ErrorTypeInternal
}

func IsInvalidArgument(err error) bool {
	return err != nil && TypeOf(err) == ErrorTypeInvalidArgument
}

func IsConfigError(err error) bool {
	return err != nil && TypeOf(err) == ErrorTypeConfig
}

func IsIOError(err error) bool {
	return err != nil && TypeOf(err) == ErrorTypeIO
}

// LogError logs err on logger, or on slog.Default when logger is nil.
// AppErrors are logged with their type and fields.
func LogError(logger *slog.Logger, err error) {
	if logger == nil {
		logger = slog.Default()
	}

	var appErr *AppError
	if !errors.As(err, &appErr) {
		logger.Error(err.Error(), "error", err)
		return
	}

	args := []any{
		"type", string(appErr.Type),
		"original_error", appErr.Err.Error(),
	}
	keys := make([]string, 0, len(appErr.Fields))
	for k := range appErr.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		args = append(args, k, appErr.Fields[k])
	}
	msg := appErr.Message
	if msg == "" {
		msg = appErr.Err.Error()
	}
	logger.Error(msg, args...)
}
