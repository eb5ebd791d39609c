package builders

import (
	"context"

	"github.com/edupipe/edupipe/internal/event"
	"github.com/edupipe/edupipe/internal/statement"
)

// NewRegistry returns a registry holding every builder. Registration panics
// on defective definitions, so a bad table fails at startup.
func NewRegistry() *statement.Registry {
	r := statement.NewRegistry()
	r.Register(createAssignment())
	r.Register(updateAssignment())
	r.Register(viewAssignment())
	r.Register(submitAssignment())
	r.Register(viewSubmission())
	r.Register(gradeSubmission())
	r.Register(commentOnSubmission())
	return r
}

// The functions below are the library surface: one operation per domain
// event, each a thin dispatch into the shared processor.

func CreateAssignment(ctx context.Context, p *statement.Processor, ev *event.Event) (*statement.Result, error) {
	return p.Process(ctx, ev, createAssignment())
}

func UpdateAssignment(ctx context.Context, p *statement.Processor, ev *event.Event) (*statement.Result, error) {
	return p.Process(ctx, ev, updateAssignment())
}

func ViewAssignment(ctx context.Context, p *statement.Processor, ev *event.Event) (*statement.Result, error) {
	return p.Process(ctx, ev, viewAssignment())
}

func SubmitAssignment(ctx context.Context, p *statement.Processor, ev *event.Event) (*statement.Result, error) {
	return p.Process(ctx, ev, submitAssignment())
}

func ViewSubmission(ctx context.Context, p *statement.Processor, ev *event.Event) (*statement.Result, error) {
	return p.Process(ctx, ev, viewSubmission())
}

func GradeSubmission(ctx context.Context, p *statement.Processor, ev *event.Event) (*statement.Result, error) {
	return p.Process(ctx, ev, gradeSubmission())
}

func CommentOnSubmission(ctx context.Context, p *statement.Processor, ev *event.Event) (*statement.Result, error) {
	return p.Process(ctx, ev, commentOnSubmission())
}
