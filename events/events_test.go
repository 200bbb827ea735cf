package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/rakushite-inc/demo-obentou/models"
)

type fakeJetStream struct {
	subject string
	data    []byte
	opts    []nats.PubOpt
	err     error
}

func (f *fakeJetStream) PublishAsync(subj string, data []byte, opts ...nats.PubOpt) (nats.PubAckFuture, error) {
	f.subject = subj
	f.data = data
	f.opts = opts
	return nil, f.err
}

func testEvent() MenusGeneratedEvent {
	conditions := models.GenerationConditions{
		Budget:    models.Range{Min: 300, Max: 600},
		Allergens: []string{"卵"},
		Genre:     models.GenreUnspecified,
		Region:    "三重県",
	}
	menus := []models.BentoMenu{{ID: "m1"}, {ID: "m2"}, {ID: "m3"}}

	return NewMenusGeneratedEvent("gen-1", conditions, models.ModelO3, menus, time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC))
}

func TestNewMenusGeneratedEvent(t *testing.T) {
	e := testEvent()
	if e.Count != 3 || len(e.MenuIDs) != 3 || e.MenuIDs[2] != "m3" {
		t.Fatalf("unexpected event %+v", e)
	}
	if e.Conditions.Model != models.ModelO3 {
		t.Fatalf("conditions model = %q", e.Conditions.Model)
	}
}

func TestPublishGenerated(t *testing.T) {
	js := &fakeJetStream{}
	p := NewNatsPublisher(js, "bento.menus.generated")

	if err := p.PublishGenerated(context.Background(), testEvent()); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if js.subject != "bento.menus.generated" {
		t.Fatalf("subject = %q", js.subject)
	}
	if len(js.opts) != 1 {
		t.Fatalf("expected a dedup message id option")
	}

	decoded, err := DecodeMenusGenerated(js.data)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if decoded.ID != "gen-1" || decoded.Count != 3 || decoded.Conditions.Region != "三重県" {
		t.Fatalf("decoded = %+v", decoded)
	}

	js.err = errors.New("no responders")
	if err := p.PublishGenerated(context.Background(), testEvent()); !errors.Is(err, js.err) {
		t.Fatalf("expected wrapped publish error, got %v", err)
	}
}

func TestDecodeMenusGenerated_Invalid(t *testing.T) {
	for _, data := range []string{"", "{", `{"count": 3}`} {
		if _, err := DecodeMenusGenerated([]byte(data)); err == nil {
			t.Fatalf("expected error for %q", data)
		}
	}
}

func TestRecord(t *testing.T) {
	recordedAt := time.Date(2025, time.July, 1, 0, 1, 0, 0, time.UTC)
	r := testEvent().Record(recordedAt)
	if r.ID != "gen-1" || r.MenuCount != 3 || r.Model != models.ModelO3 || !r.RecordedAt.Equal(recordedAt) {
		t.Fatalf("record = %+v", r)
	}
}

func TestNopPublisher(t *testing.T) {
	var p Publisher = NopPublisher{}
	if err := p.PublishGenerated(context.Background(), testEvent()); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
}

func TestConsumerName(t *testing.T) {
	if got := ConsumerName("bento.menus.generated"); got != "bento-menus-generated-consumer" {
		t.Fatalf("consumer = %q", got)
	}
}
