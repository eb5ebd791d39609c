package builders

import (
	"github.com/edupipe/edupipe/internal/caliper"
	"github.com/edupipe/edupipe/internal/event"
	"github.com/edupipe/edupipe/internal/field"
	"github.com/edupipe/edupipe/internal/statement"
	"github.com/edupipe/edupipe/internal/vocab"
	"github.com/edupipe/edupipe/internal/xapi"
)

func submitAssignment() *statement.Builder {
	return &statement.Builder{
		Event: "assignment.submit",
		Rules: field.Rules{
			{Name: "id", Kind: field.KindURI, Required: true},
			{Name: "assignment", Kind: field.KindURI, Required: true},
			{Name: "submission", Kind: field.KindText},
		},
		Descriptor: statement.Descriptor{
			Verb: "submitted",
			FlatParts: func(ev *event.Event) []string {
				return []string{ev.Metadata.Text("id")}
			},
			Flat: func(ev *event.Event) statement.FlatFields {
				md := ev.Metadata
				ff := statement.FlatFields{
					Object: xapi.NewActivity("assignment", md.Text("assignment"), "", ""),
				}
				if body := md.Text("submission"); body != "" {
					ff.Result = &xapi.Result{Response: body}
				}
				return ff
			},
			Structured: func(ev *event.Event) statement.StructuredFields {
				md := ev.Metadata
				return statement.StructuredFields{
					Object: caliper.NewEntity(vocab.EntityAssignment, map[string]any{
						"id": md.Text("assignment"),
					}, nil),
					Generated: caliper.NewEntity(vocab.EntityAttempt, map[string]any{
						"id":         md.Text("id"),
						"assignable": md.Text("assignment"),
						"actor":      ev.Actor.ID,
						"body":       md.TextPtr("submission"),
					}, nil),
				}
			},
		},
	}
}

func viewSubmission() *statement.Builder {
	return &statement.Builder{
		Event: "submission.view",
		Rules: field.Rules{
			{Name: "submission", Kind: field.KindURI, Required: true},
		},
		Descriptor: statement.Descriptor{
			Verb:      "viewed",
			FlatParts: viewParts("submission"),
			Flat: func(ev *event.Event) statement.FlatFields {
				return statement.FlatFields{
					Object: xapi.NewActivity("submission", ev.Metadata.Text("submission"), "", ""),
				}
			},
			Structured: func(ev *event.Event) statement.StructuredFields {
				return statement.StructuredFields{
					Object: caliper.NewEntity(vocab.EntityAttempt, map[string]any{
						"id": ev.Metadata.Text("submission"),
					}, nil),
				}
			},
		},
	}
}

func gradeSubmission() *statement.Builder {
	return &statement.Builder{
		Event: "submission.grade",
		Rules: field.Rules{
			{Name: "id", Kind: field.KindURI, Required: true},
			{Name: "assignment", Kind: field.KindURI, Required: true},
			{Name: "grade", Kind: field.KindNumber, Required: true},
			{Name: "grade_min", Kind: field.KindNumber},
			{Name: "grade_max", Kind: field.KindNumber},
		},
		Descriptor: statement.Descriptor{
			Verb: "scored",
			FlatParts: func(ev *event.Event) []string {
				return []string{ev.Metadata.Text("id")}
			},
			Flat: func(ev *event.Event) statement.FlatFields {
				md := ev.Metadata
				return statement.FlatFields{
					Object: xapi.NewActivity("assignment", md.Text("assignment"), "", ""),
					Result: &xapi.Result{Score: &xapi.Score{
						Raw:    md.NumberPtr("grade"),
						Min:    md.NumberPtr("grade_min"),
						Max:    md.NumberPtr("grade_max"),
						Scaled: scaledScore(md),
					}},
				}
			},
			Structured: func(ev *event.Event) statement.StructuredFields {
				md := ev.Metadata
				return statement.StructuredFields{
					Object: caliper.NewEntity(vocab.EntityAttempt, map[string]any{
						"id":         md.Text("id"),
						"assignable": md.Text("assignment"),
					}, nil),
					Generated: caliper.NewEntity(vocab.EntityScore, map[string]any{
						"id":          md.Text("id") + "#score",
						"scoreGiven":  md.NumberPtr("grade"),
						"minScore":    md.NumberPtr("grade_min"),
						"maxScore":    md.NumberPtr("grade_max"),
						"scaledScore": scaledScore(md),
					}, nil),
				}
			},
		},
	}
}

// scaledScore derives grade/grade_max when a non-zero maximum is supplied.
// With no maximum the scaled score stays absent, never zero.
func scaledScore(md field.Metadata) *float64 {
	max, ok := md.Number("grade_max")
	if !ok || max == 0 {
		return nil
	}
	grade, ok := md.Number("grade")
	if !ok {
		return nil
	}
	s := grade / max
	return &s
}

func commentOnSubmission() *statement.Builder {
	return &statement.Builder{
		Event: "submission.comment",
		Rules: field.Rules{
			{Name: "id", Kind: field.KindURI, Required: true},
			{Name: "submission", Kind: field.KindURI, Required: true},
			{Name: "feedback", Kind: field.KindText, Required: true},
		},
		Descriptor: statement.Descriptor{
			Verb: "commented",
			FlatParts: func(ev *event.Event) []string {
				return []string{ev.Metadata.Text("id")}
			},
			Flat: func(ev *event.Event) statement.FlatFields {
				md := ev.Metadata
				return statement.FlatFields{
					Object: xapi.NewActivity("submission", md.Text("submission"), "", ""),
					Result: &xapi.Result{Response: md.Text("feedback")},
				}
			},
			Structured: func(ev *event.Event) statement.StructuredFields {
				md := ev.Metadata
				return statement.StructuredFields{
					Object: caliper.NewEntity(vocab.EntityAttempt, map[string]any{
						"id": md.Text("submission"),
					}, nil),
					Generated: caliper.NewEntity(vocab.EntityComment, map[string]any{
						"id":        md.Text("id"),
						"commenter": ev.Actor.ID,
						"value":     md.Text("feedback"),
					}, nil),
				}
			},
		},
	}
}
