package event

import (
	"time"

	"github.com/edupipe/edupipe/internal/field"
)

// Actor identifies the person performing the action. ID is the stable user
// reference shared by both output formats.
type Actor struct {
	ID    string `json:"id"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

// Event is the caller-supplied unit of work. The engine reads it, never
// mutates it.
type Event struct {
	Actor     Actor
	Timestamp time.Time
	Metadata  field.Metadata
}
