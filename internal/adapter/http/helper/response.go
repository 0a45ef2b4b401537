package helper

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	. "blogapp/internal/adapter/http/validation"
	"blogapp/internal/core/domain"
	"blogapp/internal/core/model/response"
)

const msgUnexpected = "An unexpected error occurred"

var kindStatus = map[domain.ErrorKind]int{
	domain.KindValidation:         http.StatusBadRequest,
	domain.KindPasswordMismatch:   http.StatusBadRequest,
	domain.KindDuplicateEmail:     http.StatusBadRequest,
	domain.KindInvalidCode:        http.StatusBadRequest,
	domain.KindCodeExpired:        http.StatusBadRequest,
	domain.KindAccountNotVerified: http.StatusBadRequest,
	domain.KindMissingField:       http.StatusBadRequest,
	domain.KindBadCredentials:     http.StatusUnauthorized,
	domain.KindInvalidToken:       http.StatusUnauthorized,
	domain.KindUserNotFound:       http.StatusNotFound,
	domain.KindNotFound:           http.StatusNotFound,
	domain.KindConflict:           http.StatusConflict,
	domain.KindUnexpected:         http.StatusInternalServerError,
}

// StatusFor maps an error kind to its HTTP status.
func StatusFor(kind domain.ErrorKind) int {
	if status, ok := kindStatus[kind]; ok {
		return status
	}
	return http.StatusInternalServerError
}

func SendSuccess(c *gin.Context, statusCode int, data any, message ...string) {
	response := response.SuccessResponse{
		Data: data,
	}

	if len(message) > 0 && message[0] != "" {
		response.Message = message[0]
	}

	c.JSON(statusCode, response)
}

func SendAuthResponse(c *gin.Context, res *response.AuthResponse) {
	c.JSON(res.StatusCode, res)
}

func SendError(c *gin.Context, statusCode int, code string, message string, fieldErrors ...response.FieldError) {
	c.JSON(statusCode, response.ErrorResponse{
		Status:      statusCode,
		Code:        code,
		Message:     message,
		FieldErrors: fieldErrors,
	})
}

// SendDomainError writes err using its kind. Unexpected failures are logged
// and never expose their cause.
func SendDomainError(c *gin.Context, err error) {
	kind := domain.KindOf(err)
	status := StatusFor(kind)

	if kind == domain.KindUnexpected {
		slog.ErrorContext(c.Request.Context(), "Unexpected error", "path", c.FullPath(), "error", err)
		SendError(c, status, kind.String(), msgUnexpected)
		return
	}

	message := err.Error()
	var de *domain.Error
	if errors.As(err, &de) {
		message = de.Message
	}

	SendError(c, status, kind.String(), message)
}

func SendValidationError(c *gin.Context, err error) {
	SendError(c, http.StatusBadRequest, domain.KindValidation.String(), "Validation failed", FormatValidationErrors(err)...)
}

func SendBadRequestError(c *gin.Context, message string) {
	SendError(c, http.StatusBadRequest, domain.KindValidation.String(), message)
}

func SendUnauthorizedError(c *gin.Context, message string) {
	SendError(c, http.StatusUnauthorized, "UNAUTHORIZED", message)
}

func SendForbiddenError(c *gin.Context, message string) {
	SendError(c, http.StatusForbidden, "FORBIDDEN", message)
}

func SendNotFoundError(c *gin.Context, message string) {
	SendError(c, http.StatusNotFound, domain.KindNotFound.String(), message)
}
