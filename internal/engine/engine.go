// Package engine wraps the statement processor in a bounded worker pool so
// the server can absorb bursts. The processor itself stays single-call
// atomic; the pool only decides when each call runs.
package engine

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/edupipe/edupipe/internal/event"
	"github.com/edupipe/edupipe/internal/field"
	"github.com/edupipe/edupipe/internal/metrics"
	"github.com/edupipe/edupipe/internal/statement"
)

// ErrQueueFull is returned when the emit queue cannot accept more work.
var ErrQueueFull = errors.New("emit queue full")

// Conf holds the engine's tunables.
type Conf struct {
	Workers     int
	QueueDepth  int
	EmitTimeout time.Duration
}

// EmitResult is the outcome of emitting one event.
type EmitResult struct {
	Event       string            `json:"event"`
	StatementID string            `json:"statement_id,omitempty"`
	DurationMs  int64             `json:"duration_ms"`
	Statement   *statement.Result `json:"statement,omitempty"`
	Error       string            `json:"error,omitempty"`

	err error
}

// Err returns the underlying failure, if any.
func (r *EmitResult) Err() error { return r.err }

type emitWork struct {
	ctx     context.Context
	kind    string
	ev      *event.Event
	resultC chan *EmitResult
}

// Engine routes inbound events to their builders and emits statements
// through the processor. The processor pointer swaps atomically on config
// reload.
type Engine struct {
	registry *statement.Registry
	proc     atomic.Pointer[statement.Processor]
	pool     *pool[*emitWork]
	conf     Conf
}

// New creates an Engine and starts its worker pool.
func New(ctx context.Context, reg *statement.Registry, proc *statement.Processor, conf Conf) *Engine {
	e := &Engine{registry: reg, conf: conf}
	e.proc.Store(proc)
	e.pool = newPool(ctx, conf.Workers, conf.QueueDepth, func(ctx context.Context, w *emitWork) {
		res := e.emit(w.ctx, w.kind, w.ev)
		if w.resultC != nil {
			w.resultC <- res
		}
	})
	return e
}

// SwapProcessor atomically replaces the processor (used on hot-reload).
func (e *Engine) SwapProcessor(p *statement.Processor) {
	e.proc.Store(p)
}

// Kinds returns the registered event kind names.
func (e *Engine) Kinds() []string { return e.registry.Kinds() }

// ProcessSync emits one event and waits for its outcome.
func (e *Engine) ProcessSync(ctx context.Context, kind string, ev *event.Event) (*EmitResult, error) {
	resultC := make(chan *EmitResult, 1)
	if !e.pool.submit(&emitWork{ctx: ctx, kind: kind, ev: ev, resultC: resultC}) {
		metrics.EventsDropped.Inc()
		return nil, fmt.Errorf("%w (capacity %d)", ErrQueueFull, e.conf.QueueDepth)
	}
	metrics.EventsEnqueued.Inc()

	select {
	case res := <-resultC:
		return res, nil
	case <-time.After(e.conf.EmitTimeout):
		return nil, fmt.Errorf("emit timeout after %v", e.conf.EmitTimeout)
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// ProcessAsync enqueues an event for background emission. Returns false if
// the queue is full.
func (e *Engine) ProcessAsync(kind string, ev *event.Event) bool {
	if !e.pool.submit(&emitWork{ctx: context.Background(), kind: kind, ev: ev}) {
		metrics.EventsDropped.Inc()
		return false
	}
	metrics.EventsEnqueued.Inc()
	return true
}

// QueueUtilization returns queue used / capacity (0–1).
func (e *Engine) QueueUtilization() float64 {
	if e.pool.queueCap() == 0 {
		return 0
	}
	return float64(e.pool.queueLen()) / float64(e.pool.queueCap())
}

func (e *Engine) emit(ctx context.Context, kind string, ev *event.Event) *EmitResult {
	start := time.Now()
	result := &EmitResult{Event: kind}

	b, err := e.registry.Get(kind)
	if err != nil {
		result.Error = err.Error()
		result.err = err
		return result
	}

	res, err := e.proc.Load().Process(ctx, ev, b)
	result.DurationMs = time.Since(start).Milliseconds()
	metrics.EmitDuration.Observe(float64(result.DurationMs))

	if err != nil {
		result.Error = err.Error()
		result.err = err
		var verr *field.Error
		if errors.As(err, &verr) {
			metrics.ValidationFailures.WithLabelValues(kind, verr.Field).Inc()
		} else {
			metrics.TransportFailures.WithLabelValues(kind).Inc()
		}
		return result
	}

	result.StatementID = res.ID.String()
	result.Statement = res
	metrics.StatementsEmitted.WithLabelValues(kind).Inc()
	return result
}

// Shutdown drains the pool gracefully.
func (e *Engine) Shutdown() {
	e.pool.drain()
}
