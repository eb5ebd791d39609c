// Package caliper models the structured event format: typed entities with
// absent attributes pruned, wrapped in an event envelope.
package caliper

import (
	"time"

	"github.com/edupipe/edupipe/internal/event"
	"github.com/edupipe/edupipe/internal/vocab"
)

// Context is the JSON-LD context every emitted event carries.
const Context = "http://purl.imsglobal.org/ctx/caliper/v1p1"

// Entity is a rendered structured-format object. Built through NewEntity so
// the pruning invariant holds everywhere.
type Entity map[string]any

// NewEntity renders an entity of the given vocabulary kind. Attributes and
// extensions whose values are absent are omitted entirely; there are no
// null placeholders. Extensions merge in untouched under "extensions".
func NewEntity(kind string, attrs map[string]any, extensions map[string]any) Entity {
	e := Entity{"type": kind}
	for k, v := range attrs {
		if !absent(v) {
			e[k] = v
		}
	}
	if ext := pruned(extensions); len(ext) > 0 {
		e["extensions"] = ext
	}
	return e
}

// NewPerson renders the generic actor as a structured-format person. The id
// is the same user reference the flat-format agent account carries.
func NewPerson(a event.Actor) Entity {
	return NewEntity(vocab.EntityPerson, map[string]any{
		"id":   a.ID,
		"name": a.Name,
	}, nil)
}

// NewApp renders the emitting platform as a software application entity.
func NewApp(id, name string) Entity {
	return NewEntity(vocab.EntityApp, map[string]any{
		"id":   id,
		"name": name,
	}, nil)
}

func pruned(m map[string]any) map[string]any {
	if len(m) == 0 {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		if !absent(v) {
			out[k] = v
		}
	}
	return out
}

// absent reports whether a value should prune from the rendered object.
func absent(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return t == ""
	case *string:
		return t == nil
	case *float64:
		return t == nil
	case *time.Time:
		return t == nil
	case time.Time:
		return t.IsZero()
	case []string:
		return len(t) == 0
	case Entity:
		return len(t) == 0
	}
	return false
}
