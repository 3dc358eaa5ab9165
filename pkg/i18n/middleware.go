package i18n

import "net/http"

// LangExtractor returns a language candidate from a request, or an empty string.
type LangExtractor func(r *http.Request) string

// FromQuery reads the language from a query parameter.
func FromQuery(name string) LangExtractor {
	return func(r *http.Request) string {
		return r.URL.Query().Get(name)
	}
}

// FromCookie reads the language from a cookie.
func FromCookie(name string) LangExtractor {
	return func(r *http.Request) string {
		c, err := r.Cookie(name)
		if err != nil {
			return ""
		}
		return c.Value
	}
}

// Middleware stores the request language in the context.
// Extractors are tried in order and the first supported candidate wins;
// otherwise the Accept-Language header is negotiated against t.
func Middleware(t *Translator, extractors ...LangExtractor) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			lang := ""
			for _, extr := range extractors {
				if extr == nil {
					continue
				}
				if candidate := extr(r); candidate != "" && t.Supports(candidate) {
					lang = t.Negotiate(candidate)
					break
				}
			}
			if lang == "" {
				lang = t.Negotiate(r.Header.Get("Accept-Language"))
			}
			next.ServeHTTP(w, r.WithContext(SetLocale(r.Context(), lang)))
		})
	}
}
