package main

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/passin/backend/internal/checkins"
	"github.com/passin/backend/internal/events"
	"github.com/passin/backend/internal/middleware"
	"github.com/passin/backend/internal/registrations"
	"github.com/passin/backend/pkg/metrics"
	"github.com/passin/backend/pkg/response"
)

type routerDeps struct {
	pool          *pgxpool.Pool
	limiter       middleware.Counter // nil disables rate limiting
	rateLimit     int
	rateWindow    time.Duration
	corsOrigins   string
	proxies       []string // nil: ClientIP is the socket peer
	publicBaseURL string
	metrics       *metrics.Metrics
	logger        *zap.Logger
}

func newRouter(d routerDeps) (*gin.Engine, error) {
	eventRepo := events.NewRepository(d.pool)
	eventHandler := events.NewHandler(eventRepo, d.metrics, d.logger)

	attendeeRepo := registrations.NewRepository(d.pool)
	registrationHandler := registrations.NewHandler(attendeeRepo, eventRepo, d.publicBaseURL, d.metrics, d.logger)

	checkInRepo := checkins.NewRepository(d.pool)
	checkInHandler := checkins.NewHandler(checkInRepo, d.metrics, d.logger)

	router := gin.New()
	if err := router.SetTrustedProxies(d.proxies); err != nil {
		return nil, err
	}
	router.Use(gin.Recovery())
	router.Use(middleware.CORS(d.corsOrigins))
	router.Use(middleware.Logger(d.logger))

	router.GET("/health", health(d.pool))
	router.GET("/metrics", gin.WrapH(d.metrics.Handler()))

	writeLimit := middleware.RateLimit(d.limiter, d.rateLimit, d.rateWindow, d.logger)

	// Events
	router.POST("/events", writeLimit, eventHandler.Create)
	router.GET("/events/:eventId", eventHandler.Get)
	router.GET("/events/:eventId/attendees", registrationHandler.ListByEvent)

	// Attendees
	router.POST("/events/:eventId/attendee", writeLimit, registrationHandler.Register)
	router.GET("/attendees/:attendeeId/badge", registrationHandler.Badge)
	router.GET("/attendees/:attendeeId/check-in", checkInHandler.CheckIn)

	return router, nil
}

func health(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := pool.Ping(ctx); err != nil {
			response.ServiceUnavailable(c, "database unavailable")
			return
		}
		response.OK(c, gin.H{"status": "ok"})
	}
}
