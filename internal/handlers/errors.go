package handlers

import (
	"errors"
	"log"

	apierrors "github.com/foodbridge/donation-api/internal/errors"
	"github.com/foodbridge/donation-api/internal/services"
	"github.com/gin-gonic/gin"
)

// respondServiceError logs a failed operation and maps the service error kind
// to an HTTP response. Messages of 5xx responses never carry internal detail.
func respondServiceError(c *gin.Context, op string, id interface{}, err error) {
	log.Printf("%s failed id=%v: %v", op, id, err)

	switch {
	case errors.Is(err, services.ErrSignatureMismatch):
		apierrors.SignatureMismatch(c)
	case errors.Is(err, services.ErrValidation):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		apierrors.InvalidCredentials(c)
	case errors.Is(err, services.ErrUnauthorized):
		apierrors.Unauthorized(c, err.Error())
	case errors.Is(err, services.ErrNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrInvalidState):
		apierrors.InvalidState(c, err.Error())
	case errors.Is(err, services.ErrConflict):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrGatewayNotConfigured):
		apierrors.ServiceUnavailable(c, "Payment gateway is not configured")
	case errors.Is(err, services.ErrUpstream):
		apierrors.UpstreamError(c, "")
	default:
		apierrors.InternalError(c, "")
	}
}
