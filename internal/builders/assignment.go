// Package builders declares the per-event-kind statement definitions:
// a validation rule set plus templates for both output formats. The only
// computation allowed here is a single derived value; everything else is
// the engine's job.
package builders

import (
	"github.com/edupipe/edupipe/internal/caliper"
	"github.com/edupipe/edupipe/internal/event"
	"github.com/edupipe/edupipe/internal/field"
	"github.com/edupipe/edupipe/internal/statement"
	"github.com/edupipe/edupipe/internal/vocab"
	"github.com/edupipe/edupipe/internal/xapi"
)

// ExtSubmissionTypes keys the submission-types extension in both formats.
const ExtSubmissionTypes = "com.edupipe.submission_types"

var assignmentRules = field.Rules{
	{Name: "id", Kind: field.KindURI, Required: true},
	{Name: "title", Kind: field.KindText, Required: true},
	{Name: "description", Kind: field.KindText},
	{Name: "due_at", Kind: field.KindDate},
	{Name: "max_points", Kind: field.KindNumber},
	{Name: "submission_types", Kind: field.KindSequence},
}

func assignmentFlat(ev *event.Event) statement.FlatFields {
	md := ev.Metadata
	obj := xapi.NewActivity("assignment", md.Text("id"), md.Text("title"), md.Text("description"))
	if types := md.Strings("submission_types"); len(types) > 0 {
		obj.Definition.Extensions = map[string]any{ExtSubmissionTypes: types}
	}
	return statement.FlatFields{Object: obj}
}

func assignmentStructured(ev *event.Event) statement.StructuredFields {
	md := ev.Metadata
	return statement.StructuredFields{
		Object: caliper.NewEntity(vocab.EntityAssignment, map[string]any{
			"id":           md.Text("id"),
			"name":         md.Text("title"),
			"description":  md.Text("description"),
			"dateToSubmit": md.DateText("due_at"),
			"maxScore":     md.NumberPtr("max_points"),
		}, map[string]any{
			ExtSubmissionTypes: md.Strings("submission_types"),
		}),
	}
}

func createAssignment() *statement.Builder {
	return &statement.Builder{
		Event: "assignment.create",
		Rules: assignmentRules,
		Descriptor: statement.Descriptor{
			Verb: "created",
			FlatParts: func(ev *event.Event) []string {
				return []string{ev.Metadata.Text("id")}
			},
			Flat:       assignmentFlat,
			Structured: assignmentStructured,
		},
	}
}

func updateAssignment() *statement.Builder {
	return &statement.Builder{
		Event: "assignment.update",
		Rules: assignmentRules,
		Descriptor: statement.Descriptor{
			Verb: "modified",
			FlatParts: func(ev *event.Event) []string {
				// Updates to the same assignment at different times are
				// distinct statements.
				return []string{ev.Metadata.Text("id"), xapi.FormatTime(ev.Timestamp)}
			},
			Flat:       assignmentFlat,
			Structured: assignmentStructured,
		},
	}
}

func viewAssignment() *statement.Builder {
	return &statement.Builder{
		Event: "assignment.view",
		Rules: field.Rules{
			{Name: "assignment", Kind: field.KindURI, Required: true},
		},
		Descriptor: statement.Descriptor{
			Verb:      "viewed",
			FlatParts: viewParts("assignment"),
			Flat: func(ev *event.Event) statement.FlatFields {
				return statement.FlatFields{
					Object: xapi.NewActivity("assignment", ev.Metadata.Text("assignment"), "", ""),
				}
			},
			Structured: func(ev *event.Event) statement.StructuredFields {
				return statement.StructuredFields{
					Object: caliper.NewEntity(vocab.EntityAssignment, map[string]any{
						"id": ev.Metadata.Text("assignment"),
					}, nil),
				}
			},
		},
	}
}

// viewParts builds the identifier-part template for view-type events, which
// have no natural unique id: [timestamp, related uri, user id].
func viewParts(uriField string) func(ev *event.Event) []string {
	return func(ev *event.Event) []string {
		return []string{xapi.FormatTime(ev.Timestamp), ev.Metadata.Text(uriField), ev.Actor.ID}
	}
}
