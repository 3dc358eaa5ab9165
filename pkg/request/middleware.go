package request

import "net/http"

// Middleware binds a Request to every incoming request and runs its deferred
// cleanup once the handler returns. An already bound Request is reused, so the
// middleware can be mounted more than once.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r, req := Ensure(r)
		defer req.Cleanup()
		next.ServeHTTP(w, r)
	})
}

// DefaultEncoding returns a middleware that sets enc as the character
// encoding of requests that do not declare one.
func DefaultEncoding(enc string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r, req := Ensure(r)
			if req.CharacterEncoding() == "" {
				req.SetCharacterEncoding(enc)
			}
			next.ServeHTTP(w, r)
		})
	}
}
