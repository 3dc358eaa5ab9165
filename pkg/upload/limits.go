package upload

import (
	"context"
	"math"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Limits are inclusive upper bounds in bytes: a size equal to the limit is accepted.
// Unbounded disables a limit. In an override a zero field means "inherit".
type Limits struct {
	Size     int64
	FileSize int64
}

// Override returns l with every non-zero field of o applied.
func (l Limits) Override(o Limits) Limits {
	if o.Size != 0 {
		l.Size = normalizeLimit(o.Size)
	}
	if o.FileSize != 0 {
		l.FileSize = normalizeLimit(o.FileSize)
	}
	return l
}

func bounded(limit int64) bool {
	return limit >= 0
}

// past returns the smallest read size that proves limit was exceeded,
// saturating at math.MaxInt64.
func past(limit int64) int64 {
	if limit == math.MaxInt64 {
		return limit
	}
	return limit + 1
}

// LimitResolver supplies operation-level limits for a request.
// The boolean is false when the operation has no override.
type LimitResolver interface {
	ResolveLimits(r *http.Request) (Limits, bool)
}

// LimitResolverFunc adapts a function to LimitResolver.
type LimitResolverFunc func(r *http.Request) (Limits, bool)

func (f LimitResolverFunc) ResolveLimits(r *http.Request) (Limits, bool) {
	return f(r)
}

// Overrides maps operation names, as built by Operation, to limits.
//
//	upload.Overrides{"POST /documents/{id}": {FileSize: 10 << 20}}
type Overrides map[string]Limits

func (o Overrides) ResolveLimits(r *http.Request) (Limits, bool) {
	l, ok := o[Operation(r)]
	return l, ok
}

// Operation names the handler a request targets: the method followed by the
// chi route pattern, or by the URL path when no pattern is known yet.
// Route patterns are complete only for middleware mounted with chi's With or
// inside the matched route.
func Operation(r *http.Request) string {
	pattern := ""
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		pattern = rctx.RoutePattern()
	}
	if pattern == "" {
		pattern = r.URL.Path
	}
	return r.Method + " " + pattern
}

type limitsKey struct{}

// ContextWithLimits attaches a per-operation override to ctx.
func ContextWithLimits(ctx context.Context, l Limits) context.Context {
	return context.WithValue(ctx, limitsKey{}, l)
}

// LimitsFromContext returns the override attached with ContextWithLimits.
func LimitsFromContext(ctx context.Context) (Limits, bool) {
	l, ok := ctx.Value(limitsKey{}).(Limits)
	return l, ok
}

// WithLimits returns a middleware that overrides the limits for the routes it wraps.
// It takes precedence over Overrides and the global Config.
//
//	r.With(upload.WithLimits(upload.Limits{FileSize: 5 << 20}), upload.Middleware(m)).Post("/import", h)
func WithLimits(l Limits) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(ContextWithLimits(r.Context(), l)))
		})
	}
}

// ResolveLimits applies the precedence context override > resolver > defaults.
func ResolveLimits(r *http.Request, defaults Limits, resolver LimitResolver) Limits {
	limits := defaults
	if resolver != nil {
		if o, ok := resolver.ResolveLimits(r); ok {
			limits = limits.Override(o)
		}
	}
	if o, ok := LimitsFromContext(r.Context()); ok {
		limits = limits.Override(o)
	}
	return limits
}
