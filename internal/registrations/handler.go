package registrations

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/passin/backend/internal/models"
	"github.com/passin/backend/pkg/metrics"
	"github.com/passin/backend/pkg/response"
	"github.com/passin/backend/pkg/validation"
)

const (
	msgAlreadyRegistered = "This e-mail is already registered for this event."
	msgCapacityReached   = "The maximum number of attendees for this event has been reached."
	msgEventNotFound     = "Event not found."
	msgAttendeeNotFound  = "Attendee not found."
)

// Store is the attendee persistence the handler needs.
type Store interface {
	Create(ctx context.Context, a *models.Attendee) error
	GetByEventAndEmail(ctx context.Context, eventID uuid.UUID, email string) (*models.Attendee, error)
	CountByEvent(ctx context.Context, eventID uuid.UUID) (int, error)
	GetBadge(ctx context.Context, attendeeID int64) (*models.Badge, error)
	ListByEvent(ctx context.Context, eventID uuid.UUID, f ListFilter) ([]models.AttendeeListItem, error)
}

// EventFinder looks events up by ID.
type EventFinder interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Event, error)
}

// RegisterRequest is the body for POST /events/:eventId/attendee.
type RegisterRequest struct {
	Name  string `json:"name" binding:"required,min=4"`
	Email string `json:"email" binding:"required,email"`
}

// EventParams is the path of /events/:eventId routes.
type EventParams struct {
	EventID string `uri:"eventId" binding:"required,uuid_rfc4122"`
}

// AttendeeParams is the path of /attendees/:attendeeId routes.
type AttendeeParams struct {
	AttendeeID int64 `uri:"attendeeId" binding:"gt=0"`
}

// ListQuery is the query string of GET /events/:eventId/attendees.
type ListQuery struct {
	Query     string `form:"query"`
	PageIndex int    `form:"pageIndex" binding:"gte=0,lte=1000000"`
}

// Handler handles attendee registration HTTP endpoints.
type Handler struct {
	repo          Store
	events        EventFinder
	publicBaseURL string
	metrics       *metrics.Metrics
	logger        *zap.Logger
}

// NewHandler creates a registrations handler. publicBaseURL prefixes badge check-in links.
func NewHandler(repo Store, events EventFinder, publicBaseURL string, m *metrics.Metrics, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{repo: repo, events: events, publicBaseURL: publicBaseURL, metrics: m, logger: logger}
}

// Register handles POST /events/:eventId/attendee.
func (h *Handler) Register(c *gin.Context) {
	var params EventParams
	if err := c.ShouldBindUri(&params); err != nil {
		response.Error(c, h.logger, validation.Wrap(err))
		return
	}
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, h.logger, validation.Wrap(err))
		return
	}
	eventID := uuid.MustParse(params.EventID)

	a, err := h.register(c.Request.Context(), eventID, req)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	h.metrics.AttendeeRegistered()
	h.logger.Info("attendee registered",
		zap.String("event_id", eventID.String()),
		zap.Int64("attendee_id", a.ID),
	)
	response.Created(c, gin.H{"attendeeId": a.ID})
}

// register applies the registration rules in order: duplicate email first, then
// event existence and capacity from two concurrent reads, then the insert.
func (h *Handler) register(ctx context.Context, eventID uuid.UUID, req RegisterRequest) (*models.Attendee, error) {
	existing, err := h.repo.GetByEventAndEmail(ctx, eventID, req.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		h.metrics.Rejected(metrics.ReasonAlreadyRegistered)
		return nil, response.NewBadRequest(msgAlreadyRegistered)
	}

	var (
		event *models.Event
		count int
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		e, err := h.events.GetByID(gctx, eventID)
		if err != nil {
			return fmt.Errorf("get event %s: %w", eventID, err)
		}
		event = e
		return nil
	})
	g.Go(func() error {
		n, err := h.repo.CountByEvent(gctx, eventID)
		if err != nil {
			return fmt.Errorf("count attendees of %s: %w", eventID, err)
		}
		count = n
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if event == nil {
		return nil, response.NewNotFound(msgEventNotFound)
	}
	if capacityReached(event.MaximumAttendees, count) {
		h.metrics.Rejected(metrics.ReasonCapacityReached)
		return nil, response.NewBadRequest(msgCapacityReached)
	}

	a := &models.Attendee{Name: req.Name, Email: req.Email, EventID: eventID}
	if err := h.repo.Create(ctx, a); err != nil {
		switch {
		case errors.Is(err, ErrAlreadyRegistered):
			h.metrics.Rejected(metrics.ReasonAlreadyRegistered)
			return nil, response.NewBadRequest(msgAlreadyRegistered)
		case errors.Is(err, ErrEventNotFound):
			return nil, response.NewNotFound(msgEventNotFound)
		}
		return nil, err
	}
	return a, nil
}

// ListByEvent handles GET /events/:eventId/attendees.
func (h *Handler) ListByEvent(c *gin.Context) {
	var params EventParams
	if err := c.ShouldBindUri(&params); err != nil {
		response.Error(c, h.logger, validation.Wrap(err))
		return
	}
	var q ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, h.logger, validation.Wrap(err))
		return
	}

	list, err := h.repo.ListByEvent(c.Request.Context(), uuid.MustParse(params.EventID), ListFilter{
		Query:     q.Query,
		PageIndex: q.PageIndex,
	})
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	response.OK(c, gin.H{"attendees": list})
}

// Badge handles GET /attendees/:attendeeId/badge.
func (h *Handler) Badge(c *gin.Context) {
	var params AttendeeParams
	if err := c.ShouldBindUri(&params); err != nil {
		response.Error(c, h.logger, validation.Wrap(err))
		return
	}

	badge, err := h.repo.GetBadge(c.Request.Context(), params.AttendeeID)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	if badge == nil {
		response.NotFound(c, msgAttendeeNotFound)
		return
	}
	badge.CheckInURL = h.publicBaseURL + "/attendees/" + strconv.FormatInt(params.AttendeeID, 10) + "/check-in"
	response.OK(c, gin.H{"badge": badge})
}
