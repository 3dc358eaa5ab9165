package request

import (
	"context"
	"net/http"
)

type contextKey struct{}

// WithContext returns a copy of ctx carrying req.
func WithContext(ctx context.Context, req *Request) context.Context {
	return context.WithValue(ctx, contextKey{}, req)
}

// FromContext returns the Request stored in ctx, if any.
func FromContext(ctx context.Context) (*Request, bool) {
	if ctx == nil {
		return nil, false
	}
	req, ok := ctx.Value(contextKey{}).(*Request)
	return req, ok && req != nil
}

// Ensure returns the Request bound to r's context, creating and binding a new
// one when none exists. An existing Request is rebound to r so that it sees
// the latest context. The returned *http.Request must be used downstream.
func Ensure(r *http.Request) (*http.Request, *Request) {
	if req, ok := FromContext(r.Context()); ok {
		req.Request = r
		return r, req
	}
	req := New(r)
	r = r.WithContext(WithContext(r.Context(), req))
	req.Request = r
	return r, req
}
