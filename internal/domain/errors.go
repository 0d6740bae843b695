package domain

import "errors"

// Common failure classes shared across services.
var (
	ErrNotFound      = errors.New("resource not found")
	ErrAlreadyExists = errors.New("resource already exists")
	ErrInvalidInput  = errors.New("invalid input")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrForbidden     = errors.New("forbidden")
	ErrInternalError = errors.New("internal error")
)

// AppError carries the HTTP status, a machine-readable code for API
// clients, and a user-facing message.
type AppError struct {
	Status  int
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewValidationError(code, msg string) *AppError {
	return &AppError{Status: 400, Code: code, Message: msg, Err: ErrInvalidInput}
}

func NewConflictError(code, msg string) *AppError {
	return &AppError{Status: 409, Code: code, Message: msg, Err: ErrAlreadyExists}
}

func NewNotFoundError(code, msg string) *AppError {
	return &AppError{Status: 404, Code: code, Message: msg, Err: ErrNotFound}
}

func NewUnauthorizedError(code, msg string) *AppError {
	return &AppError{Status: 401, Code: code, Message: msg, Err: ErrUnauthorized}
}

func NewForbiddenError(code, msg string) *AppError {
	return &AppError{Status: 403, Code: code, Message: msg, Err: ErrForbidden}
}

func NewInternalError(msg string, err error) *AppError {
	return &AppError{Status: 500, Code: "SERVER_ERROR", Message: msg, Err: err}
}
