package statement

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/edupipe/edupipe/internal/vocab"
)

// ErrUnknownEvent is returned for event kinds with no registered builder.
var ErrUnknownEvent = errors.New("unknown event kind")

// Registry maps event kind names to their builders.
// It is safe for concurrent reads; Register should only be called at startup.
type Registry struct {
	mu       sync.RWMutex
	builders map[string]*Builder
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{builders: make(map[string]*Builder)}
}

// Register adds a builder. Panics on a duplicate kind or on a verb missing
// from either vocabulary table: those are defects in the static builder
// definitions and must surface at startup, not per call.
func (r *Registry) Register(b *Builder) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.builders[b.Event]; exists {
		panic(fmt.Sprintf("statement registry: duplicate event kind %q", b.Event))
	}
	if _, ok := vocab.LookupVerb(b.Descriptor.Verb); !ok {
		panic(fmt.Sprintf("statement registry: event %q uses unknown verb %q", b.Event, b.Descriptor.Verb))
	}
	if _, ok := vocab.LookupCaliper(b.Descriptor.Verb); !ok {
		panic(fmt.Sprintf("statement registry: event %q has no structured term for verb %q", b.Event, b.Descriptor.Verb))
	}
	r.builders[b.Event] = b
}

// Get returns the builder for an event kind.
func (r *Registry) Get(kind string) (*Builder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.builders[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEvent, kind)
	}
	return b, nil
}

// Kinds returns all registered event kind names, sorted.
func (r *Registry) Kinds() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.builders))
	for k := range r.builders {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
