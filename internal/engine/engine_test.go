package engine

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/edupipe/edupipe/internal/builders"
	"github.com/edupipe/edupipe/internal/caliper"
	"github.com/edupipe/edupipe/internal/event"
	"github.com/edupipe/edupipe/internal/field"
	"github.com/edupipe/edupipe/internal/statement"
	"github.com/edupipe/edupipe/internal/xapi"
)

func newEngine(t *testing.T, send statement.Func, conf Conf) *Engine {
	t.Helper()
	proc := statement.NewProcessor(statement.Platform{ID: "acme"}, send)
	e := New(context.Background(), builders.NewRegistry(), proc, conf)
	t.Cleanup(e.Shutdown)
	return e
}

func okSend(ctx context.Context, flat *xapi.Statement, structured *caliper.Event) error {
	return nil
}

func viewEvent() *event.Event {
	return &event.Event{
		Actor:     event.Actor{ID: "u1"},
		Timestamp: time.Date(2026, 8, 1, 10, 30, 0, 0, time.UTC),
		Metadata:  field.Metadata{"assignment": field.URI("https://x/a1")},
	}
}

func TestProcessSync(t *testing.T) {
	e := newEngine(t, okSend, Conf{Workers: 2, QueueDepth: 8, EmitTimeout: 2 * time.Second})

	res, err := e.ProcessSync(context.Background(), "assignment.view", viewEvent())
	if err != nil {
		t.Fatalf("ProcessSync: %v", err)
	}
	if res.Err() != nil {
		t.Fatalf("emit failed: %v", res.Err())
	}
	if res.StatementID == "" {
		t.Error("missing statement id")
	}
	if res.Statement == nil || res.Statement.Flat == nil || res.Statement.Structured == nil {
		t.Error("result should carry both payloads")
	}
}

func TestProcessSyncValidationError(t *testing.T) {
	e := newEngine(t, okSend, Conf{Workers: 2, QueueDepth: 8, EmitTimeout: 2 * time.Second})

	res, err := e.ProcessSync(context.Background(), "assignment.view", &event.Event{
		Actor:     event.Actor{ID: "u1"},
		Timestamp: time.Now(),
		Metadata:  field.Metadata{},
	})
	if err != nil {
		t.Fatalf("ProcessSync: %v", err)
	}
	var verr *field.Error
	if !errors.As(res.Err(), &verr) {
		t.Fatalf("Err() = %v, want *field.Error", res.Err())
	}
	if verr.Field != "assignment" {
		t.Errorf("Field = %q, want assignment", verr.Field)
	}
}

func TestProcessSyncUnknownKind(t *testing.T) {
	e := newEngine(t, okSend, Conf{Workers: 2, QueueDepth: 8, EmitTimeout: 2 * time.Second})

	res, err := e.ProcessSync(context.Background(), "nope", viewEvent())
	if err != nil {
		t.Fatalf("ProcessSync: %v", err)
	}
	if !errors.Is(res.Err(), statement.ErrUnknownEvent) {
		t.Errorf("Err() = %v, want ErrUnknownEvent", res.Err())
	}
}

func TestQueueFull(t *testing.T) {
	started := make(chan struct{}, 4)
	block := make(chan struct{})
	e := newEngine(t, func(ctx context.Context, flat *xapi.Statement, structured *caliper.Event) error {
		started <- struct{}{}
		<-block
		return nil
	}, Conf{Workers: 1, QueueDepth: 1, EmitTimeout: 100 * time.Millisecond})
	defer close(block)

	// Occupy the single worker, then fill the one queue slot.
	if !e.ProcessAsync("assignment.view", viewEvent()) {
		t.Fatal("first submit rejected")
	}
	select {
	case <-started:
	case <-time.After(time.Second):
		t.Fatal("worker never picked up the first event")
	}
	if !e.ProcessAsync("assignment.view", viewEvent()) {
		t.Fatal("second submit rejected")
	}

	if e.ProcessAsync("assignment.view", viewEvent()) {
		t.Error("ProcessAsync should reject when the queue is full")
	}
	if _, err := e.ProcessSync(context.Background(), "assignment.view", viewEvent()); !errors.Is(err, ErrQueueFull) {
		t.Errorf("ProcessSync error = %v, want ErrQueueFull", err)
	}
	if util := e.QueueUtilization(); util != 1 {
		t.Errorf("QueueUtilization = %v, want 1", util)
	}
}
