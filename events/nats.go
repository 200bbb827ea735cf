package events

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/rakushite-inc/demo-obentou/config"
)

type Publisher interface {
	PublishGenerated(ctx context.Context, event MenusGeneratedEvent) error
}

// NopPublisher drops events. It is used when nats is disabled.
type NopPublisher struct{}

func (NopPublisher) PublishGenerated(context.Context, MenusGeneratedEvent) error {
	return nil
}

type asyncPublisher interface {
	PublishAsync(subj string, data []byte, opts ...nats.PubOpt) (nats.PubAckFuture, error)
}

type Client struct {
	conn *nats.Conn
	js   nats.JetStreamContext
}

// Connect opens a JetStream connection and makes sure the stream carrying the
// generated subject exists.
func Connect(cfg config.Nats) (*Client, error) {
	nc, err := nats.Connect(cfg.ConnStr())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to nats: %w", err)
	}

	js, err := nc.JetStream()
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("failed to create jetstream context: %w", err)
	}

	_, err = js.AddStream(&nats.StreamConfig{
		Name:      cfg.Stream,
		Subjects:  []string{cfg.GeneratedSubject},
		Storage:   nats.FileStorage,
		Retention: nats.LimitsPolicy,
		MaxAge:    time.Hour * 24 * 7,
	})
	if err != nil && !errors.Is(err, nats.ErrStreamNameAlreadyInUse) {
		nc.Close()
		return nil, fmt.Errorf("failed to add stream %s: %w", cfg.Stream, err)
	}

	return &Client{conn: nc, js: js}, nil
}

func (c *Client) Close() {
	c.conn.Close()
}

func (c *Client) Publisher(subject string) *NatsPublisher {
	return NewNatsPublisher(c.js, subject)
}

type NatsPublisher struct {
	js      asyncPublisher
	subject string
}

func NewNatsPublisher(js asyncPublisher, subject string) *NatsPublisher {
	return &NatsPublisher{js: js, subject: subject}
}

func (p *NatsPublisher) PublishGenerated(_ context.Context, event MenusGeneratedEvent) error {
	data, err := event.Encode()
	if err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}

	if _, err := p.js.PublishAsync(p.subject, data, nats.MsgId(event.ID)); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", p.subject, err)
	}

	return nil
}

const (
	fetchBatch = 4
	fetchWait  = 200 * time.Millisecond
)

// Consume pulls generation events from the durable consumer on subject and
// passes each to deliver until ctx is done. deliver owns acking.
func (c *Client) Consume(ctx context.Context, subject string, deliver func(m *nats.Msg)) error {
	consumer := ConsumerName(subject)
	sub, err := c.js.PullSubscribe(subject, consumer, nats.ManualAck())
	if err != nil {
		return fmt.Errorf("failed to bind consumer %s: %w", consumer, err)
	}
	defer func() {
		if err := sub.Unsubscribe(); err != nil {
			slog.Warn("failed to release consumer", "consumer", consumer, "err", err)
		}
	}()

	for ctx.Err() == nil {
		batch, err := sub.Fetch(fetchBatch, nats.MaxWait(fetchWait))
		switch {
		case err == nil, errors.Is(err, nats.ErrTimeout), errors.Is(err, context.Canceled):
		default:
			return fmt.Errorf("failed to fetch generation events from %s: %w", consumer, err)
		}

		for _, msg := range batch {
			deliver(msg)
		}
	}

	return nil
}

// ConsumerName derives the durable consumer name for subject.
func ConsumerName(subject string) string {
	return strings.ReplaceAll(subject+".consumer", ".", "-")
}
