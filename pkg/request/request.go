package request

import (
	"mime"
	"net/http"
	"net/url"
	"slices"
	"strings"
)

// Request wraps an *http.Request with a mutable parameter map and an attribute map.
// It is not safe for concurrent use; a request is handled by a single goroutine.
type Request struct {
	*http.Request

	params   url.Values
	attrs    map[string]any
	encoding string
	cleanup  []func()
}

// New wraps r. Parameters are seeded with the URL query values.
func New(r *http.Request) *Request {
	params := make(url.Values)
	if r.URL != nil {
		for name, values := range r.URL.Query() {
			params[name] = slices.Clone(values)
		}
	}
	return &Request{
		Request: r,
		params:  params,
		attrs:   make(map[string]any),
	}
}

// Parameter returns the first value for name, or an empty string.
func (r *Request) Parameter(name string) string {
	return r.params.Get(name)
}

// ParameterValues returns all values for name in insertion order.
// The returned slice is a copy.
func (r *Request) ParameterValues(name string) []string {
	return slices.Clone(r.params[name])
}

// HasParameter reports whether name has at least one value.
func (r *Request) HasParameter(name string) bool {
	return len(r.params[name]) > 0
}

// SetParameter replaces the values for name.
// Calling it without values removes the parameter.
func (r *Request) SetParameter(name string, values ...string) {
	if len(values) == 0 {
		delete(r.params, name)
		return
	}
	r.params[name] = slices.Clone(values)
}

// Parameters returns a copy of the whole parameter map.
func (r *Request) Parameters() url.Values {
	out := make(url.Values, len(r.params))
	for name, values := range r.params {
		out[name] = slices.Clone(values)
	}
	return out
}

// Attribute returns the attribute stored under name, or nil.
func (r *Request) Attribute(name string) any {
	return r.attrs[name]
}

// SetAttribute stores value under name. A nil value removes the attribute.
func (r *Request) SetAttribute(name string, value any) {
	if value == nil {
		delete(r.attrs, name)
		return
	}
	r.attrs[name] = value
}

// RemoveAttribute deletes the attribute stored under name.
func (r *Request) RemoveAttribute(name string) {
	delete(r.attrs, name)
}

// AttributeNames returns the names of all attributes, sorted.
func (r *Request) AttributeNames() []string {
	names := make([]string, 0, len(r.attrs))
	for name := range r.attrs {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// ContentType returns the media type of the request body without parameters,
// lower-cased. Returns an empty string when the header is missing or malformed.
func (r *Request) ContentType() string {
	ct := r.Header.Get("Content-Type")
	if ct == "" {
		return ""
	}
	mediaType, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return ""
	}
	return strings.ToLower(mediaType)
}

// CharacterEncoding returns the encoding set with SetCharacterEncoding,
// falling back to the charset parameter of the Content-Type header.
func (r *Request) CharacterEncoding() string {
	if r.encoding != "" {
		return r.encoding
	}
	ct := r.Header.Get("Content-Type")
	if ct == "" {
		return ""
	}
	_, params, err := mime.ParseMediaType(ct)
	if err != nil {
		return ""
	}
	return params["charset"]
}

// SetCharacterEncoding overrides the encoding declared by the client.
func (r *Request) SetCharacterEncoding(enc string) {
	r.encoding = strings.TrimSpace(enc)
}

// Defer registers fn to run when Cleanup is called. Functions run in reverse
// registration order.
func (r *Request) Defer(fn func()) {
	if fn != nil {
		r.cleanup = append(r.cleanup, fn)
	}
}

// Cleanup runs and forgets every function registered with Defer.
// It is safe to call more than once.
func (r *Request) Cleanup() {
	fns := r.cleanup
	r.cleanup = nil
	for i := len(fns) - 1; i >= 0; i-- {
		fns[i]()
	}
}
