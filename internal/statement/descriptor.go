package statement

import (
	"github.com/edupipe/edupipe/internal/caliper"
	"github.com/edupipe/edupipe/internal/event"
	"github.com/edupipe/edupipe/internal/field"
	"github.com/edupipe/edupipe/internal/xapi"
)

// FlatFields is what a flat-format template contributes beyond the envelope.
type FlatFields struct {
	Object xapi.Activity
	Result *xapi.Result
}

// StructuredFields is what a structured-format template contributes.
type StructuredFields struct {
	Object    caliper.Entity
	Generated caliper.Entity
	Target    caliper.Entity
}

// Descriptor is the static per-event-kind template: a semantic verb plus
// pure builders for both output formats. Templates assume metadata already
// passed validation.
type Descriptor struct {
	// Verb is the semantic verb name resolved against the vocabulary
	// tables at registration time.
	Verb string

	// FlatParts returns the ordered identifier parts for this event.
	// Kinds without a natural unique id use [timestamp, uri, userID].
	FlatParts func(ev *event.Event) []string

	Flat       func(ev *event.Event) FlatFields
	Structured func(ev *event.Event) StructuredFields
}

// Builder pairs an event kind's validation rules with its descriptor.
// Builders are static, defined once at startup and shared read-only.
type Builder struct {
	Event      string
	Rules      field.Rules
	Descriptor Descriptor
}
