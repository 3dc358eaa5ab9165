package request_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mvckit/pkg/request"
)

func TestRequest_Parameters(t *testing.T) {
	t.Parallel()

	t.Run("seeded from query", func(t *testing.T) {
		t.Parallel()
		req := request.New(httptest.NewRequest(http.MethodGet, "/?a=1&a=2&b=x", nil))

		assert.Equal(t, "1", req.Parameter("a"))
		assert.Equal(t, []string{"1", "2"}, req.ParameterValues("a"))
		assert.Equal(t, "x", req.Parameter("b"))
		assert.False(t, req.HasParameter("missing"))
	})

	t.Run("set replaces values", func(t *testing.T) {
		t.Parallel()
		req := request.New(httptest.NewRequest(http.MethodGet, "/?a=1", nil))

		req.SetParameter("a", "3", "4")
		assert.Equal(t, []string{"3", "4"}, req.ParameterValues("a"))

		req.SetParameter("a")
		assert.False(t, req.HasParameter("a"))
	})

	t.Run("returned values are copies", func(t *testing.T) {
		t.Parallel()
		req := request.New(httptest.NewRequest(http.MethodGet, "/", nil))
		req.SetParameter("a", "1")

		values := req.ParameterValues("a")
		values[0] = "changed"
		all := req.Parameters()
		all["a"][0] = "changed"

		assert.Equal(t, "1", req.Parameter("a"))
	})
}

func TestRequest_Attributes(t *testing.T) {
	t.Parallel()
	req := request.New(httptest.NewRequest(http.MethodGet, "/", nil))

	req.SetAttribute("b", 2)
	req.SetAttribute("a", "one")
	assert.Equal(t, 2, req.Attribute("b"))
	assert.Equal(t, []string{"a", "b"}, req.AttributeNames())

	req.RemoveAttribute("a")
	req.SetAttribute("b", nil)
	assert.Nil(t, req.Attribute("a"))
	assert.Empty(t, req.AttributeNames())
}

func TestRequest_CharacterEncoding(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		contentType string
		override    string
		expected    string
	}{
		{name: "no header", expected: ""},
		{name: "charset param", contentType: "text/plain; charset=ISO-8859-1", expected: "ISO-8859-1"},
		{name: "multipart without charset", contentType: "multipart/form-data; boundary=xyz", expected: ""},
		{name: "malformed header", contentType: "text/plain; charset", expected: ""},
		{name: "override wins", contentType: "text/plain; charset=ISO-8859-1", override: "UTF-8", expected: "UTF-8"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r := httptest.NewRequest(http.MethodPost, "/", nil)
			if tt.contentType != "" {
				r.Header.Set("Content-Type", tt.contentType)
			}
			req := request.New(r)
			if tt.override != "" {
				req.SetCharacterEncoding(tt.override)
			}
			assert.Equal(t, tt.expected, req.CharacterEncoding())
		})
	}
}

func TestRequest_ContentType(t *testing.T) {
	t.Parallel()
	r := httptest.NewRequest(http.MethodPost, "/", nil)
	r.Header.Set("Content-Type", "Multipart/Form-Data; boundary=abc")

	assert.Equal(t, "multipart/form-data", request.New(r).ContentType())
}

func TestMiddleware(t *testing.T) {
	t.Parallel()

	t.Run("binds request to context", func(t *testing.T) {
		t.Parallel()
		var bound *request.Request
		handler := request.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			req, ok := request.FromContext(r.Context())
			require.True(t, ok)
			bound = req
			assert.Same(t, r, req.Request)
		}))

		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/?q=1", nil))
		require.NotNil(t, bound)
		assert.Equal(t, "1", bound.Parameter("q"))
	})

	t.Run("reuses bound request", func(t *testing.T) {
		t.Parallel()
		var first, second *request.Request
		inner := request.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			second, _ = request.FromContext(r.Context())
		}))
		outer := request.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			first, _ = request.FromContext(r.Context())
			first.SetAttribute("marker", true)
			inner.ServeHTTP(w, r)
		}))

		outer.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
		require.NotNil(t, first)
		assert.Same(t, first, second)
		assert.Equal(t, true, second.Attribute("marker"))
	})

	t.Run("default encoding", func(t *testing.T) {
		t.Parallel()
		var enc string
		handler := request.DefaultEncoding("UTF-8")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			req, _ := request.FromContext(r.Context())
			enc = req.CharacterEncoding()
		}))

		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, "UTF-8", enc)
	})
}

func TestRequest_Cleanup(t *testing.T) {
	t.Parallel()
	req := request.New(httptest.NewRequest(http.MethodGet, "/", nil))

	var order []int
	req.Defer(func() { order = append(order, 1) })
	req.Defer(nil)
	req.Defer(func() { order = append(order, 2) })

	req.Cleanup()
	req.Cleanup()
	assert.Equal(t, []int{2, 1}, order)
}

func TestMiddleware_RunsCleanup(t *testing.T) {
	t.Parallel()
	ran := false
	handler := request.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req, _ := request.FromContext(r.Context())
		req.Defer(func() { ran = true })
		assert.False(t, ran)
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.True(t, ran)
}
