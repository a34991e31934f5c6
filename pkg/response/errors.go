package response

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/passin/backend/pkg/validation"
)

// BadRequestError is a business-rule violation reported to the client as 400.
type BadRequestError struct {
	Message string
}

func (e *BadRequestError) Error() string { return e.Message }

// NewBadRequest returns a *BadRequestError with msg.
func NewBadRequest(msg string) error {
	return &BadRequestError{Message: msg}
}

// NotFoundError is reported to the client as 404.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }

// NewNotFound returns a *NotFoundError with msg.
func NewNotFound(msg string) error {
	return &NotFoundError{Message: msg}
}

// Error writes err using the status its kind maps to. Unknown errors are logged
// and answered with a generic 500.
func Error(c *gin.Context, logger *zap.Logger, err error) {
	var badReq *BadRequestError
	var notFound *NotFoundError
	switch {
	case errors.As(err, &badReq):
		BadRequest(c, badReq.Message)
	case errors.As(err, &notFound):
		NotFound(c, notFound.Message)
	case validation.IsValidationError(err):
		ValidationFailed(c, validation.Messages(err))
	default:
		if logger != nil {
			logger.Error("request failed",
				zap.Error(err),
				zap.String("method", c.Request.Method),
				zap.String("path", c.Request.URL.Path),
			)
		}
		Internal(c, "Internal server error!")
	}
}
