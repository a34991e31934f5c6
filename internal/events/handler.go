package events

import (
	"context"
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/passin/backend/internal/models"
	"github.com/passin/backend/pkg/metrics"
	"github.com/passin/backend/pkg/response"
	"github.com/passin/backend/pkg/validation"
	"github.com/passin/backend/pkg/utils"
)

const msgDuplicateSlug = "Another event with same title already exists."

// Store is the event persistence the handler needs.
type Store interface {
	Create(ctx context.Context, e *models.Event) error
	GetBySlug(ctx context.Context, slug string) (*models.Event, error)
	GetSummary(ctx context.Context, id uuid.UUID) (*models.EventSummary, error)
}

// CreateRequest is the body for POST /events.
type CreateRequest struct {
	Title            string  `json:"title" binding:"required,min=4"`
	Details          *string `json:"details"`
	MaximumAttendees *int    `json:"maximumAttendees" binding:"omitempty,gt=0,lte=2147483647"`
}

// EventParams is the path of /events/:eventId routes.
type EventParams struct {
	EventID string `uri:"eventId" binding:"required,uuid_rfc4122"`
}

// Handler handles event HTTP endpoints.
type Handler struct {
	repo    Store
	metrics *metrics.Metrics
	logger  *zap.Logger
}

// NewHandler creates an events handler.
func NewHandler(repo Store, m *metrics.Metrics, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{repo: repo, metrics: m, logger: logger}
}

// Create handles POST /events. Rejects titles whose slug is already in use.
func (h *Handler) Create(c *gin.Context) {
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, h.logger, validation.Wrap(err))
		return
	}

	e, err := h.create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	h.metrics.EventCreated()
	h.logger.Info("event created", zap.String("event_id", e.ID.String()), zap.String("slug", e.Slug))
	response.Created(c, gin.H{"eventId": e.ID})
}

func (h *Handler) create(ctx context.Context, req CreateRequest) (*models.Event, error) {
	slug := utils.GenerateSlug(req.Title)

	existing, err := h.repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("lookup slug %q: %w", slug, err)
	}
	if existing != nil {
		h.metrics.Rejected(metrics.ReasonDuplicateSlug)
		return nil, response.NewBadRequest(msgDuplicateSlug)
	}

	e := &models.Event{
		Title:            req.Title,
		Slug:             slug,
		Details:          req.Details,
		MaximumAttendees: req.MaximumAttendees,
	}
	if err := h.repo.Create(ctx, e); err != nil {
		// Lost a race with a concurrent create of the same slug.
		if errors.Is(err, ErrSlugTaken) {
			h.metrics.Rejected(metrics.ReasonDuplicateSlug)
			return nil, response.NewBadRequest(msgDuplicateSlug)
		}
		return nil, err
	}
	return e, nil
}

// Get handles GET /events/:eventId.
func (h *Handler) Get(c *gin.Context) {
	var params EventParams
	if err := c.ShouldBindUri(&params); err != nil {
		response.Error(c, h.logger, validation.Wrap(err))
		return
	}
	id := uuid.MustParse(params.EventID)

	summary, err := h.repo.GetSummary(c.Request.Context(), id)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	if summary == nil {
		response.NotFound(c, "Event not found.")
		return
	}
	response.OK(c, gin.H{"event": summary})
}
