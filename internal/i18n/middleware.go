package i18n

import "net/http"

// Middleware attaches a localizer for the server's language to each
// request context, so handlers can call T without threading one
// through. The localizer is built once, not per request.
func Middleware(lang string) func(http.Handler) http.Handler {
	loc := NewLocalizer(lang)
	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(WithLocalizer(r.Context(), loc)))
		}
		return http.HandlerFunc(fn)
	}
}
