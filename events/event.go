package events

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/rakushite-inc/demo-obentou/models"
)

// MenusGeneratedEvent is published after every successful generation call.
type MenusGeneratedEvent struct {
	ID          string                      `json:"id"`
	Model       models.ModelID              `json:"model"`
	Conditions  models.GenerationConditions `json:"conditions"`
	MenuIDs     []string                    `json:"menuIds"`
	Count       int                         `json:"count"`
	GeneratedAt time.Time                   `json:"generatedAt"`
}

func NewMenusGeneratedEvent(id string, conditions models.GenerationConditions, model models.ModelID, menus []models.BentoMenu, at time.Time) MenusGeneratedEvent {
	ids := make([]string, 0, len(menus))
	for _, m := range menus {
		ids = append(ids, m.ID)
	}

	return MenusGeneratedEvent{
		ID:          id,
		Model:       model,
		Conditions:  conditions.WithModel(model),
		MenuIDs:     ids,
		Count:       len(menus),
		GeneratedAt: at,
	}
}

func (e MenusGeneratedEvent) Encode() ([]byte, error) {
	return json.Marshal(e)
}

func DecodeMenusGenerated(data []byte) (MenusGeneratedEvent, error) {
	var e MenusGeneratedEvent
	if err := json.Unmarshal(data, &e); err != nil {
		return MenusGeneratedEvent{}, fmt.Errorf("failed to decode menus generated event: %w", err)
	}
	if e.ID == "" {
		return MenusGeneratedEvent{}, fmt.Errorf("menus generated event has no id")
	}

	return e, nil
}

// Record converts the event into the history row the recorder stores.
func (e MenusGeneratedEvent) Record(recordedAt time.Time) models.GenerationRecord {
	return models.GenerationRecord{
		ID:          e.ID,
		Model:       e.Model,
		Conditions:  e.Conditions,
		MenuIDs:     append([]string{}, e.MenuIDs...),
		MenuCount:   e.Count,
		GeneratedAt: e.GeneratedAt,
		RecordedAt:  recordedAt,
	}
}
