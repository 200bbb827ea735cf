package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/rakushite-inc/demo-obentou/events"
	"github.com/rakushite-inc/demo-obentou/models"
	"github.com/rakushite-inc/demo-obentou/store"
)

type menuGenerator interface {
	Generate(ctx context.Context, conditions models.GenerationConditions, model models.ModelID) ([]models.BentoMenu, error)
}

type menuStore interface {
	SaveMenus(ctx context.Context, menus []models.BentoMenu) (int64, error)
	ListMenus(ctx context.Context, filter store.MenuFilter) ([]models.BentoMenu, error)
	DeleteMenu(ctx context.Context, id string) error
	SetSelected(ctx context.Context, id string, selected bool) (*models.BentoMenu, error)
	MenuStats(ctx context.Context) (store.MenuStats, error)
	ListGenerationRecords(ctx context.Context, limit int) ([]models.GenerationRecord, error)
}

type Handler struct {
	generator menuGenerator
	store     menuStore
	publisher events.Publisher
	now       func() time.Time
	newID     func() string
	// unavailable is set when no completion backend could be configured.
	unavailable error
}

func NewHandler(gen menuGenerator, db menuStore, publisher events.Publisher, now func() time.Time) *Handler {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	if now == nil {
		now = time.Now
	}

	return &Handler{
		generator: gen,
		store:     db,
		publisher: publisher,
		now:       now,
		newID:     uuid.NewString,
	}
}

// DisableGeneration makes every generation request fail with err before the
// generator is invoked. Storage operations keep working.
func (h *Handler) DisableGeneration(err error) {
	h.unavailable = err
}

// GenerationAvailable reports why generation cannot run, or nil.
func (h *Handler) GenerationAvailable() error {
	return h.unavailable
}

func resolveModel(conditions models.GenerationConditions) models.ModelID {
	if conditions.Model == "" {
		return models.DefaultModel
	}
	return conditions.Model
}

// GenerateMenus runs one generation call and publishes the outcome. A failed
// publish is logged and does not fail the call.
func (h *Handler) GenerateMenus(ctx context.Context, conditions models.GenerationConditions) ([]models.BentoMenu, error) {
	if h.unavailable != nil {
		return nil, h.unavailable
	}

	model := resolveModel(conditions)

	menus, err := h.generator.Generate(ctx, conditions, model)
	if err != nil {
		return nil, err
	}

	event := events.NewMenusGeneratedEvent(h.newID(), conditions, model, menus, h.now())
	if err := h.publisher.PublishGenerated(ctx, event); err != nil {
		slog.Error("failed to publish generated event", "id", event.ID, "err", err)
	}

	return menus, nil
}

// StreamGeneration reports progress for a websocket client. The channel ends
// with an io.EOF result on success.
func (h *Handler) StreamGeneration(ctx context.Context, conditions models.GenerationConditions) chan *ProcessingResult {
	resultChan := make(chan *ProcessingResult)

	go func() {
		defer close(resultChan)

		send := func(r *ProcessingResult) bool {
			select {
			case resultChan <- r:
				return true
			case <-ctx.Done():
				return false
			}
		}

		if !send(&ProcessingResult{
			Msg: WebSocketsMessage{
				Type: MessageStatus,
				Data: map[string]any{"state": "generating", "model": resolveModel(conditions)},
			},
		}) {
			return
		}

		menus, err := h.GenerateMenus(ctx, conditions)
		if err != nil {
			send(&ProcessingResult{Err: fmt.Errorf("menu generation failed: %w", err)})
			return
		}

		if !send(&ProcessingResult{
			Msg: WebSocketsMessage{
				Type: MessageMenus,
				Data: MenusResponse{Menus: menus},
			},
		}) {
			return
		}

		send(&ProcessingResult{Err: io.EOF})
	}()

	return resultChan
}

func (h *Handler) SaveMenus(ctx context.Context, menus []models.BentoMenu) (int64, error) {
	return h.store.SaveMenus(ctx, menus)
}

func (h *Handler) ListMenus(ctx context.Context, filter store.MenuFilter) ([]models.BentoMenu, error) {
	menus, err := h.store.ListMenus(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list menus: %w", err)
	}

	return menus, nil
}

func (h *Handler) DeleteMenu(ctx context.Context, id string) error {
	return h.store.DeleteMenu(ctx, id)
}

func (h *Handler) SetSelected(ctx context.Context, id string, selected bool) (*models.BentoMenu, error) {
	return h.store.SetSelected(ctx, id, selected)
}

func (h *Handler) MenuStats(ctx context.Context) (store.MenuStats, error) {
	return h.store.MenuStats(ctx)
}

func (h *Handler) ListGenerations(ctx context.Context, limit int) ([]models.GenerationRecord, error) {
	return h.store.ListGenerationRecords(ctx, limit)
}
