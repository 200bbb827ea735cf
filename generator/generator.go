package generator

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rakushite-inc/demo-obentou/models"
)

type Generator struct {
	completer Completer
	now       func() time.Time
	newID     func() string
}

type Option func(*Generator)

// WithClock sets the clock used for the prompt's season and the menus'
// creation timestamps.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) {
		g.now = now
	}
}

func WithIDSource(newID func() string) Option {
	return func(g *Generator) {
		g.newID = newID
	}
}

func New(completer Completer, opts ...Option) *Generator {
	g := &Generator{
		completer: completer,
		now:       time.Now,
		newID:     uuid.NewString,
	}
	for _, opt := range opts {
		opt(g)
	}

	return g
}

// Generate asks the provider for menu proposals matching conditions and
// returns them enriched, in the order the provider listed them. An empty
// model falls back to conditions.Model, then to the default model.
func (g *Generator) Generate(ctx context.Context, conditions models.GenerationConditions, model models.ModelID) ([]models.BentoMenu, error) {
	if g.completer == nil {
		return nil, &ConfigurationError{Setting: "completion provider"}
	}

	if model == "" {
		model = conditions.Model
	}
	if model == "" {
		model = models.DefaultModel
	}

	messages, err := BuildMessages(conditions, g.now())
	if err != nil {
		return nil, err
	}

	content, err := g.completer.Complete(ctx, CompletionRequest{
		Model:    model,
		Messages: messages,
		Options:  OptionsFor(model),
		JSONMode: true,
	})
	if err != nil {
		var provErr *ProviderError
		var cfgErr *ConfigurationError
		if errors.As(err, &provErr) || errors.As(err, &cfgErr) {
			return nil, err
		}
		return nil, &ProviderError{Reason: "completion request failed", Err: err}
	}
	if strings.TrimSpace(content) == "" {
		return nil, &ProviderError{Reason: "completion returned no content"}
	}

	drafts, err := ParseMenus(content)
	if err != nil {
		return nil, err
	}
	if len(drafts) != ExpectedMenuCount {
		slog.Warn("menu count deviates from request", "model", model, "want", ExpectedMenuCount, "got", len(drafts))
	}

	createdAt := g.now()
	menus := make([]models.BentoMenu, len(drafts))
	for i, d := range drafts {
		menus[i] = d.ToMenu(g.newID(), conditions, model, createdAt)
	}

	slog.Info("generated menus", "model", model, "count", len(menus))

	return menus, nil
}
