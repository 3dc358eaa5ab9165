package upload

import (
	"net/http"

	"github.com/dmitrymomot/mvckit/pkg/request"
	"github.com/dmitrymomot/mvckit/pkg/validator"
)

// Middleware materializes multipart requests before calling next. Handlers
// read the results through request.FromContext and validator.FromContext.
// Spooled files are removed once next returns.
func Middleware(m *Materializer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r, msgs := validator.Ensure(r)
			r, req := request.Ensure(r)
			defer req.Cleanup()

			m.Materialize(req, msgs)
			next.ServeHTTP(w, r)
		})
	}
}
