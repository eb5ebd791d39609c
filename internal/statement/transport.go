package statement

import (
	"context"

	"github.com/edupipe/edupipe/internal/caliper"
	"github.com/edupipe/edupipe/internal/xapi"
)

// Transport delivers a finished dual-format statement. The engine calls it
// exactly once per processed event and relays its outcome unmodified; it
// owns no retries or timeouts of its own.
type Transport interface {
	Send(ctx context.Context, flat *xapi.Statement, structured *caliper.Event) error
}

// Func adapts a plain function to the Transport interface.
type Func func(ctx context.Context, flat *xapi.Statement, structured *caliper.Event) error

func (f Func) Send(ctx context.Context, flat *xapi.Statement, structured *caliper.Event) error {
	return f(ctx, flat, structured)
}
