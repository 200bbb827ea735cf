package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/rakushite-inc/demo-obentou/events"
	"github.com/rakushite-inc/demo-obentou/models"
)

type recordWriter interface {
	CreateGenerationRecord(ctx context.Context, record *models.GenerationRecord) error
}

type Handler struct {
	db  recordWriter
	now func() time.Time
}

func NewHandler(db recordWriter) *Handler {
	return &Handler{
		db:  db,
		now: time.Now,
	}
}

func (h *Handler) HandleMenusGenerated(ctx context.Context, msg []byte) error {
	event, err := events.DecodeMenusGenerated(msg)
	if err != nil {
		return err
	}

	record := event.Record(h.now())
	if err := h.db.CreateGenerationRecord(ctx, &record); err != nil {
		return fmt.Errorf("failed to record generation %s: %w", event.ID, err)
	}

	slog.Info("recorded generation", "id", event.ID, "model", event.Model, "count", event.Count)

	return nil
}
