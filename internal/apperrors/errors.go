package apperrors

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrValidation    = errors.New("validation failed")
	ErrInvalidStatus = errors.New("invalid status")
	ErrNotFound      = errors.New("resource not found")
	ErrSizeExceeded  = errors.New("file size exceeds limit")
	ErrEmptyExport   = errors.New("no data to export")
	ErrParse         = errors.New("malformed value")
	ErrUpload        = errors.New("referenced upload does not exist")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrInvalidPath   = errors.New("invalid field path")
)

// ValidationError перечисляет поля, не прошедшие проверку
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s", strings.Join(e.Fields, ", "))
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// Validation возвращает nil, если список полей пуст
func Validation(fields ...string) error {
	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: fields}
}
