package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

var (
	ErrUnauthorized   = NewError("UNAUTHORIZED", "Authorization token required", http.StatusUnauthorized)
	ErrBadRequest     = NewError("BAD_REQUEST", "Invalid request body", http.StatusBadRequest)
	ErrInternalServer = NewError("INTERNAL_SERVER_ERROR", "Internal server error", http.StatusInternalServerError)
)

// Error is an HTTP-facing error rendered as {"error": message, "details": ...}
type Error struct {
	Code       string
	Message    string
	StatusCode int
	Details    map[string]interface{}
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewError creates an API error
func NewError(code, message string, statusCode int) *Error {
	return &Error{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
	}
}

// ParseValidationErrors turns binding failures into a 400 with per-field messages
func ParseValidationErrors(err error) *Error {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return &Error{
			Code:       ErrBadRequest.Code,
			Message:    ErrBadRequest.Message,
			StatusCode: http.StatusBadRequest,
			Details:    map[string]interface{}{"reason": err.Error()},
		}
	}

	fields := make([]map[string]string, 0, len(validationErrors))
	for _, fieldErr := range validationErrors {
		fields = append(fields, map[string]string{
			"field":   fieldName(fieldErr),
			"message": validationMessage(fieldErr),
		})
	}

	return &Error{
		Code:       "VALIDATION_ERROR",
		Message:    "Message and username required",
		StatusCode: http.StatusBadRequest,
		Details:    map[string]interface{}{"fields": fields},
	}
}

func fieldName(fe validator.FieldError) string {
	return strings.ToLower(fe.Field())
}

func validationMessage(fe validator.FieldError) string {
	name := fieldName(fe)

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", name)
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", name, fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", name, fe.Param())
	default:
		return fmt.Sprintf("%s failed '%s' validation", name, fe.Tag())
	}
}

// abort writes err and stops the handler chain
func abort(c *gin.Context, err *Error) {
	body := gin.H{"error": err.Message}
	if len(err.Details) > 0 {
		body["details"] = err.Details
	}
	c.AbortWithStatusJSON(err.StatusCode, body)
}
