package errors

import (
	"errors"
	"net/http"
)

// Domain errors
var (
	ErrNotFound           = errors.New("resource not found")
	ErrAlreadyExists      = errors.New("resource already exists")
	ErrInvalidInput       = errors.New("invalid input")
	ErrBadRequest         = errors.New("bad request")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrInvalidPhoneNumber = errors.New("invalid Kenyan phone number, expected +254XXXXXXXXX")
	ErrPhoneNumberTaken   = errors.New("phone number already registered")
	ErrInvalidKRAPin      = errors.New("invalid KRA PIN")
	ErrDuplicateDocument  = errors.New("document already submitted")
	ErrNotVendor          = errors.New("user is not a vendor")
	ErrInsufficientTokens = errors.New("insufficient token balance")
	ErrConsistency        = errors.New("dependent record creation failed")
	ErrUnreadableImage    = errors.New("image is unreadable or corrupt")
)

// AppError represents an application error with an HTTP status
type AppError struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new app error
func NewAppError(status int, message string, err error) *AppError {
	return &AppError{
		Status:  status,
		Message: message,
		Err:     err,
	}
}

// Common error constructors
func NotFound(message string) *AppError {
	return NewAppError(http.StatusNotFound, message, ErrNotFound)
}

func BadRequest(message string) *AppError {
	return NewAppError(http.StatusBadRequest, message, ErrInvalidInput)
}

func Unauthorized(message string) *AppError {
	return NewAppError(http.StatusUnauthorized, message, ErrUnauthorized)
}

func Forbidden(message string) *AppError {
	return NewAppError(http.StatusForbidden, message, ErrForbidden)
}

func Conflict(message string) *AppError {
	return NewAppError(http.StatusConflict, message, ErrAlreadyExists)
}

func Consistency(message string) *AppError {
	return NewAppError(http.StatusInternalServerError, message, ErrConsistency)
}

func InternalError(err error) *AppError {
	return NewAppError(http.StatusInternalServerError, "internal server error", err)
}

// NewError creates a new error with a custom message wrapping an existing error
func NewError(message string, err error) error {
	return &AppError{
		Status:  http.StatusBadRequest,
		Message: message,
		Err:     err,
	}
}

// StatusFor maps a domain error to the HTTP status it should surface as
func StatusFor(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Status
	}
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrUnauthorized), errors.Is(err, ErrInvalidCredentials), errors.Is(err, ErrTokenExpired):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrAlreadyExists), errors.Is(err, ErrPhoneNumberTaken), errors.Is(err, ErrDuplicateDocument):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrBadRequest),
		errors.Is(err, ErrInvalidPhoneNumber), errors.Is(err, ErrInvalidKRAPin),
		errors.Is(err, ErrNotVendor), errors.Is(err, ErrUnreadableImage):
		return http.StatusBadRequest
	case errors.Is(err, ErrInsufficientTokens):
		return http.StatusPaymentRequired
	default:
		return http.StatusInternalServerError
	}
}
