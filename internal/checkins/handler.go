package checkins

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/passin/backend/internal/models"
	"github.com/passin/backend/pkg/metrics"
	"github.com/passin/backend/pkg/response"
	"github.com/passin/backend/pkg/validation"
)

const (
	msgAlreadyCheckedIn = "Attendee already checked in!"
	msgAttendeeNotFound = "Attendee not found."
)

// Store is the check-in persistence the handler needs.
type Store interface {
	GetByAttendee(ctx context.Context, attendeeID int64) (*models.CheckIn, error)
	Create(ctx context.Context, attendeeID int64) (*models.CheckIn, error)
}

// AttendeeParams is the path of /attendees/:attendeeId routes.
type AttendeeParams struct {
	AttendeeID int64 `uri:"attendeeId" binding:"gt=0"`
}

// Handler handles check-in HTTP endpoints.
type Handler struct {
	repo    Store
	metrics *metrics.Metrics
	logger  *zap.Logger
}

// NewHandler creates a check-ins handler.
func NewHandler(repo Store, m *metrics.Metrics, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{repo: repo, metrics: m, logger: logger}
}

// CheckIn handles GET /attendees/:attendeeId/check-in.
func (h *Handler) CheckIn(c *gin.Context) {
	var params AttendeeParams
	if err := c.ShouldBindUri(&params); err != nil {
		response.Error(c, h.logger, validation.Wrap(err))
		return
	}
	if err := h.checkIn(c.Request.Context(), params.AttendeeID); err != nil {
		response.Error(c, h.logger, err)
		return
	}
	h.metrics.CheckedIn()
	h.logger.Info("attendee checked in", zap.Int64("attendee_id", params.AttendeeID))
	response.CreatedEmpty(c)
}

func (h *Handler) checkIn(ctx context.Context, attendeeID int64) error {
	existing, err := h.repo.GetByAttendee(ctx, attendeeID)
	if err != nil {
		return err
	}
	if existing != nil {
		h.metrics.Rejected(metrics.ReasonAlreadyCheckedIn)
		return response.NewBadRequest(msgAlreadyCheckedIn)
	}

	_, err = h.repo.Create(ctx, attendeeID)
	switch {
	case errors.Is(err, ErrAlreadyCheckedIn):
		h.metrics.Rejected(metrics.ReasonAlreadyCheckedIn)
		return response.NewBadRequest(msgAlreadyCheckedIn)
	case errors.Is(err, ErrAttendeeNotFound):
		return response.NewNotFound(msgAttendeeNotFound)
	}
	return err
}
