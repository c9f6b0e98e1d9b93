package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/smallbiznis/pictora/internal/gallery"
	"github.com/smallbiznis/pictora/internal/imageapi"
	presetdomain "github.com/smallbiznis/pictora/internal/preset/domain"
)

type ValidationError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func (v *ValidationErrors) Error() string {
	return "validation error"
}

type errorPayload struct {
	Type    string            `json:"type"`
	Message string            `json:"message"`
	Errors  []ValidationError `json:"errors,omitempty"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

var (
	ErrNotFound       = errors.New("not_found")
	ErrInvalidRequest = errors.New("invalid_request")
)

func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err)
		c.Header("Content-Type", "application/json")
		c.AbortWithStatusJSON(status, errorResponse{Error: payload})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func invalidRequestError() error {
	return newValidationError("request", "invalid_request", "invalid request")
}

func newValidationError(field, code, message string) error {
	return &ValidationErrors{
		Errors: []ValidationError{
			{
				Field:   field,
				Code:    code,
				Message: message,
			},
		},
	}
}

func mapError(err error) (int, errorPayload) {
	if err == nil {
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}

	var vErr *ValidationErrors
	if errors.As(err, &vErr) {
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors:  vErr.Errors,
		}
	}

	if code, ok := presetValidationCode(err); ok {
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors: []ValidationError{
				{
					Field:   presetValidationField(code),
					Code:    code,
					Message: presetValidationMessage(code),
				},
			},
		}
	}

	if apiErr, ok := imageapi.AsAPIError(err); ok {
		return apiErr.StatusCode, errorPayload{
			Type:    "upstream_error",
			Message: apiErr.Message,
		}
	}

	switch {
	case errors.Is(err, presetdomain.ErrDuplicateName):
		return http.StatusConflict, errorPayload{
			Type:    "conflict",
			Message: "a preset with this name already exists in the category",
		}
	case errors.Is(err, presetdomain.ErrNotFound),
		errors.Is(err, gallery.ErrNotFound),
		errors.Is(err, ErrNotFound):
		return http.StatusNotFound, errorPayload{
			Type:    "not_found",
			Message: "not found",
		}
	case errors.Is(err, ErrInvalidRequest):
		return http.StatusBadRequest, errorPayload{
			Type:    "invalid_request",
			Message: "invalid request",
		}
	default:
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}
}

func presetValidationCode(err error) (string, bool) {
	switch {
	case errors.Is(err, presetdomain.ErrInvalidName):
		return "invalid_name", true
	case errors.Is(err, presetdomain.ErrInvalidModel):
		return "invalid_model", true
	case errors.Is(err, presetdomain.ErrInvalidPrompt):
		return "invalid_prompt", true
	case errors.Is(err, presetdomain.ErrInvalidID):
		return "invalid_id", true
	default:
		return "", false
	}
}

func presetValidationField(code string) string {
	switch code {
	case "invalid_name":
		return "name"
	case "invalid_model":
		return "model"
	case "invalid_prompt":
		return "prompt"
	case "invalid_id":
		return "id"
	default:
		return "request"
	}
}

func presetValidationMessage(code string) string {
	switch code {
	case "invalid_name":
		return "name is required"
	case "invalid_model":
		return "model is required"
	case "invalid_prompt":
		return "prompt is required"
	case "invalid_id":
		return "invalid id"
	default:
		return "invalid request"
	}
}
