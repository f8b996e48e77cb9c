package common

import (
	"errors"
	"fmt"
)

// AppError represents application-specific errors
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Failure categories. Decode and recognition errors are fatal for a single
// page only; validation blocks a confirmation wholesale; storage errors are
// isolated to the affected bank's merge.
var (
	ErrDecode       = errors.New("document bytes could not be decoded")
	ErrRecognition  = errors.New("text recognition failed")
	ErrValidation   = errors.New("validation failed")
	ErrStorageRead  = errors.New("ledger read failed")
	ErrStorageWrite = errors.New("ledger write failed")
	ErrNotFound     = errors.New("resource not found")
	ErrInvalidInput = errors.New("invalid input")
)

// Error constructors
func NewAppError(code, message string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

func DecodeError(message string, cause error) *AppError {
	if cause == nil {
		cause = ErrDecode
	} else {
		cause = fmt.Errorf("%w: %w", ErrDecode, cause)
	}
	return NewAppError("DECODE_ERROR", message, cause)
}

func RecognitionError(message string, cause error) *AppError {
	if cause == nil {
		cause = ErrRecognition
	} else {
		cause = fmt.Errorf("%w: %w", ErrRecognition, cause)
	}
	return NewAppError("RECOGNITION_ERROR", message, cause)
}

func ValidationError(message string) *AppError {
	return NewAppError("VALIDATION_ERROR", message, ErrValidation)
}

func StorageReadError(message string, cause error) *AppError {
	if cause == nil {
		cause = ErrStorageRead
	} else {
		cause = fmt.Errorf("%w: %w", ErrStorageRead, cause)
	}
	return NewAppError("STORAGE_READ_ERROR", message, cause)
}

func StorageWriteError(message string, cause error) *AppError {
	if cause == nil {
		cause = ErrStorageWrite
	} else {
		cause = fmt.Errorf("%w: %w", ErrStorageWrite, cause)
	}
	return NewAppError("STORAGE_WRITE_ERROR", message, cause)
}

func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
