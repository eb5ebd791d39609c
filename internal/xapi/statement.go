// Package xapi models the flat activity-stream statement format. Optional
// fields are pointers or omitempty maps so absent values never serialize.
package xapi

import (
	"time"

	"github.com/edupipe/edupipe/internal/event"
	"github.com/edupipe/edupipe/internal/vocab"
)

// Statement is one flat-format record.
type Statement struct {
	ID        string   `json:"id"`
	Actor     Agent    `json:"actor"`
	Verb      Verb     `json:"verb"`
	Object    Activity `json:"object"`
	Result    *Result  `json:"result,omitempty"`
	Timestamp string   `json:"timestamp"`
}

// Agent is the statement actor.
type Agent struct {
	ObjectType string   `json:"objectType"`
	Name       string   `json:"name,omitempty"`
	Mbox       string   `json:"mbox,omitempty"`
	Account    *Account `json:"account,omitempty"`
}

// Account anchors the user id to the emitting platform.
type Account struct {
	HomePage string `json:"homePage"`
	Name     string `json:"name"`
}

type Verb struct {
	ID      string            `json:"id"`
	Display map[string]string `json:"display,omitempty"`
}

type Activity struct {
	ObjectType string      `json:"objectType"`
	ID         string      `json:"id"`
	Definition *Definition `json:"definition,omitempty"`
}

type Definition struct {
	Type        string            `json:"type,omitempty"`
	Name        map[string]string `json:"name,omitempty"`
	Description map[string]string `json:"description,omitempty"`
	Extensions  map[string]any    `json:"extensions,omitempty"`
}

type Result struct {
	Score    *Score `json:"score,omitempty"`
	Response string `json:"response,omitempty"`
}

type Score struct {
	Raw    *float64 `json:"raw,omitempty"`
	Min    *float64 `json:"min,omitempty"`
	Max    *float64 `json:"max,omitempty"`
	Scaled *float64 `json:"scaled,omitempty"`
}

// NewAgent renders the generic actor as a flat-format agent. The account
// name carries the same user reference the structured person uses.
func NewAgent(a event.Actor, homePage string) Agent {
	ag := Agent{
		ObjectType: "Agent",
		Name:       a.Name,
		Account:    &Account{HomePage: homePage, Name: a.ID},
	}
	if a.Email != "" {
		ag.Mbox = "mailto:" + a.Email
	}
	return ag
}

// NewVerb renders a controlled-vocabulary verb with an en-US display.
func NewVerb(v vocab.Verb) Verb {
	return Verb{ID: v.URI, Display: LangMap(v.Display)}
}

// NewActivity renders a statement object of the given vocabulary kind.
// Name and description prune when empty.
func NewActivity(kind, id, name, description string) Activity {
	act := Activity{ObjectType: "Activity", ID: id}
	typ, _ := vocab.ActivityType(kind)
	def := &Definition{
		Type:        typ,
		Name:        LangMap(name),
		Description: LangMap(description),
	}
	if def.Type != "" || def.Name != nil || def.Description != nil {
		act.Definition = def
	}
	return act
}

// LangMap wraps s in an en-US language map, or nil when s is empty so the
// field prunes from the rendered statement.
func LangMap(s string) map[string]string {
	if s == "" {
		return nil
	}
	return map[string]string{"en-US": s}
}

// FormatTime renders a timestamp the way every statement field expects it.
func FormatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
