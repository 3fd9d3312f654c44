package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError is the single error shape crossing the service boundary. Code is a
// stable machine-readable identifier, Status the HTTP status it maps to.
type AppError struct {
	Code    string
	Message string
	Status  int
	Fields  map[string]string
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// As unwraps err into an *AppError when possible.
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

func Validation(message string, fields map[string]string) *AppError {
	return &AppError{
		Code:    "VALIDATION_ERROR",
		Message: message,
		Status:  http.StatusBadRequest,
		Fields:  fields,
	}
}

func InvalidCredentials() *AppError {
	return &AppError{
		Code:    "INVALID_CREDENTIALS",
		Message: "invalid email or password",
		Status:  http.StatusUnauthorized,
	}
}

func Forbidden() *AppError {
	return &AppError{
		Code:    "FORBIDDEN",
		Message: "access denied",
		Status:  http.StatusForbidden,
	}
}

func EmailDuplicated() *AppError {
	return &AppError{
		Code:    "EMAIL_DUPLICATED",
		Message: "email is already in use",
		Status:  http.StatusConflict,
	}
}

func FeedbackDuplicated() *AppError {
	return &AppError{
		Code:    "FEEDBACK_DUPLICATED",
		Message: "feedback already exists for this chat",
		Status:  http.StatusConflict,
	}
}

func ThreadNotFound() *AppError {
	return &AppError{
		Code:    "THREAD_NOT_FOUND",
		Message: "thread does not exist",
		Status:  http.StatusNotFound,
	}
}

func ChatNotFound() *AppError {
	return &AppError{
		Code:    "CHAT_NOT_FOUND",
		Message: "chat does not exist",
		Status:  http.StatusNotFound,
	}
}

func FeedbackNotFound() *AppError {
	return &AppError{
		Code:    "FEEDBACK_NOT_FOUND",
		Message: "feedback does not exist",
		Status:  http.StatusNotFound,
	}
}

func DocumentNotFound() *AppError {
	return &AppError{
		Code:    "DOCUMENT_NOT_FOUND",
		Message: "document does not exist",
		Status:  http.StatusNotFound,
	}
}

// ExternalService classifies completion-provider failures: unreachable host,
// non-success response, malformed body, or an empty answer. Never retried and
// never accompanied by partial persisted state.
func ExternalService(detail string) *AppError {
	return &AppError{
		Code:    "OPENAI_ERROR",
		Message: detail,
		Status:  http.StatusBadGateway,
	}
}

func Internal() *AppError {
	return &AppError{
		Code:    "INTERNAL_ERROR",
		Message: "internal server error",
		Status:  http.StatusInternalServerError,
	}
}
