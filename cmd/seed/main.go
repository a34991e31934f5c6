// Package main seeds the database with the demonstration event.
package main

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/passin/backend/config"
	"github.com/passin/backend/internal/events"
	"github.com/passin/backend/internal/models"
	"github.com/passin/backend/pkg/database"
)

func demoEvent() *models.Event {
	details := "Um evento p/ devs apaixonados(as) por código!"
	maximum := 120
	return &models.Event{
		ID:               uuid.MustParse("05cb3e61-67d4-4e6a-8bc6-6f5b4d759bbb"),
		Title:            "Unite Summit",
		Slug:             "unite-summit",
		Details:          &details,
		MaximumAttendees: &maximum,
	}
}

func main() {
	logger := newLogger()
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}
	if err := database.Migrate(cfg.Database.DSN(), logger); err != nil {
		logger.Fatal("migrate", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	pool, err := database.NewPostgresPool(ctx, cfg.Database.DSN(), 1, logger)
	if err != nil {
		logger.Fatal("database", zap.Error(err))
	}
	defer pool.Close()

	e := demoEvent()
	created, err := events.NewRepository(pool).CreateWithID(ctx, e)
	if err != nil {
		logger.Fatal("seed event", zap.Error(err))
	}
	if !created {
		logger.Info("database already seeded", zap.String("event_id", e.ID.String()))
		return
	}
	logger.Info("database seeded", zap.String("event_id", e.ID.String()), zap.String("slug", e.Slug))
}

func newLogger() *zap.Logger {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	logger, _ := config.Build()
	return logger
}
