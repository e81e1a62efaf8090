package modal

import "context"

type ctxKey struct{}

// NewContext returns a copy of ctx carrying c.
func NewContext[C any](ctx context.Context, c *Controller[C]) context.Context {
	return context.WithValue(ctx, ctxKey{}, c)
}

// FromContext returns the controller stored by NewContext.
// The second result is false if ctx carries no controller for content type C.
func FromContext[C any](ctx context.Context) (*Controller[C], bool) {
	c, ok := ctx.Value(ctxKey{}).(*Controller[C])
	return c, ok && c != nil
}
