package statement

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/edupipe/edupipe/internal/caliper"
	"github.com/edupipe/edupipe/internal/event"
	"github.com/edupipe/edupipe/internal/ident"
	"github.com/edupipe/edupipe/internal/vocab"
	"github.com/edupipe/edupipe/internal/xapi"
)

// Platform identifies the emitting deployment. ID seeds identifier
// derivation; App is the URI both formats use to reference the platform.
type Platform struct {
	ID   string
	Name string
	App  string
}

// Result is one finished dual-format statement.
type Result struct {
	ID         uuid.UUID       `json:"id"`
	Flat       *xapi.Statement `json:"flat"`
	Structured *caliper.Event  `json:"structured"`
}

// Processor turns validated events into dual-format statements and hands
// them to the transport. It holds no mutable state, so one instance is
// safe for concurrent use.
type Processor struct {
	platform  Platform
	transport Transport
}

// NewProcessor creates a Processor. App falls back to the platform id when
// unset.
func NewProcessor(p Platform, t Transport) *Processor {
	if p.App == "" {
		p.App = p.ID
	}
	return &Processor{platform: p, transport: t}
}

// Process runs one event through validate, derive, render, dispatch.
// A validation failure returns before the transport is ever invoked.
// Exactly one outcome is returned per call.
func (p *Processor) Process(ctx context.Context, ev *event.Event, b *Builder) (*Result, error) {
	if verr := b.Rules.Validate(ev.Metadata); verr != nil {
		return nil, verr
	}

	verb, _ := vocab.LookupVerb(b.Descriptor.Verb)
	term, _ := vocab.LookupCaliper(b.Descriptor.Verb)

	id := ident.Derive(p.platform.ID, b.Descriptor.Verb, b.Descriptor.FlatParts(ev))
	ts := xapi.FormatTime(ev.Timestamp)

	ff := b.Descriptor.Flat(ev)
	flat := &xapi.Statement{
		ID:        id.String(),
		Actor:     xapi.NewAgent(ev.Actor, p.platform.App),
		Verb:      xapi.NewVerb(verb),
		Object:    ff.Object,
		Result:    ff.Result,
		Timestamp: ts,
	}

	sf := b.Descriptor.Structured(ev)
	structured := &caliper.Event{
		Context:   caliper.Context,
		ID:        "urn:uuid:" + id.String(),
		Type:      term.EventType,
		Actor:     caliper.NewPerson(ev.Actor),
		Action:    term.Action,
		Object:    sf.Object,
		Generated: sf.Generated,
		Target:    sf.Target,
		EventTime: ts,
		EdApp:     caliper.NewApp(p.platform.App, p.platform.Name),
	}

	if err := p.transport.Send(ctx, flat, structured); err != nil {
		return nil, fmt.Errorf("transport: %w", err)
	}
	return &Result{ID: id, Flat: flat, Structured: structured}, nil
}
