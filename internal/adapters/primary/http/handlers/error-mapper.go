package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"vehicle-inference-service/internal/adapters/primary/http/dto"
	"vehicle-inference-service/internal/adapters/primary/http/middleware"
	"vehicle-inference-service/internal/core/domain"
)

// statusClientClosedRequest is the nginx convention for a caller that hung up
// before the answer was ready.
const statusClientClosedRequest = 499

func mapDomainError(err error) (int, dto.ErrorResponse) {
	var verr *domain.ValidationError
	var ierr *domain.InferenceError

	switch {
	case errors.As(err, &verr):
		return http.StatusBadRequest, dto.ErrorResponse{Error: verr.Error(), Field: verr.Field}

	case errors.As(err, &ierr):
		body := dto.ErrorResponse{Error: ierr.Error(), Stage: string(ierr.Stage)}
		switch ierr.Stage {
		case domain.StageEncode:
			return http.StatusUnprocessableEntity, body
		case domain.StageTimeout:
			return http.StatusServiceUnavailable, body
		case domain.StageCanceled:
			return statusClientClosedRequest, body
		default:
			return http.StatusInternalServerError, body
		}

	// Bad request
	case errors.Is(err, domain.ErrMissingCredentials),
		errors.Is(err, domain.ErrPasswordTooLong):
		return http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()}

	// Conflict
	case errors.Is(err, domain.ErrEmailAlreadyRegistered):
		return http.StatusConflict, dto.ErrorResponse{Error: err.Error()}

	// Unauthorized
	case errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrUnauthenticated):
		return http.StatusUnauthorized, dto.ErrorResponse{Error: err.Error()}

	default:
		return http.StatusInternalServerError, dto.ErrorResponse{Error: "internal server error"}
	}
}

func (h *Handler) writeError(c *gin.Context, err error) {
	status, body := mapDomainError(err)
	if status == http.StatusInternalServerError {
		requestLog(c).WithError(err).Error("unhandled error")
	}
	c.JSON(status, body)
}

// writePredictionError is writeError for the prediction routes. With
// LegacyAlways200 set, validation and inference failures go out as 200 for
// form clients that only read the body.
func (h *Handler) writePredictionError(c *gin.Context, err error) {
	status, body := mapDomainError(err)
	if body.Field == "" && body.Stage == "" {
		requestLog(c).WithError(err).Error("unhandled error")
		c.JSON(status, body)
		return
	}

	requestLog(c).WithError(err).Warn("prediction failed")
	if status == http.StatusServiceUnavailable {
		c.Header("Retry-After", "1")
	}
	if h.opts.LegacyAlways200 {
		status = http.StatusOK
	}
	c.JSON(status, body)
}

func requestLog(c *gin.Context) *log.Entry {
	return log.WithField("request_id", c.GetString(middleware.ContextRequestID))
}
