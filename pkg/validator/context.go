package validator

import (
	"context"
	"net/http"
)

type messagesKey struct{}

// WithMessages returns a copy of ctx carrying msgs.
func WithMessages(ctx context.Context, msgs *Messages) context.Context {
	return context.WithValue(ctx, messagesKey{}, msgs)
}

// FromContext returns the request-scoped messages, or nil when none were installed.
func FromContext(ctx context.Context) *Messages {
	if ctx == nil {
		return nil
	}
	msgs, _ := ctx.Value(messagesKey{}).(*Messages)
	return msgs
}

// Ensure returns the messages bound to r, installing an empty collection
// when none exists. The returned *http.Request must be used downstream.
func Ensure(r *http.Request) (*http.Request, *Messages) {
	if msgs := FromContext(r.Context()); msgs != nil {
		return r, msgs
	}
	msgs := &Messages{}
	return r.WithContext(WithMessages(r.Context(), msgs)), msgs
}

// Middleware installs one Messages collection per request.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r, _ = Ensure(r)
		next.ServeHTTP(w, r)
	})
}
