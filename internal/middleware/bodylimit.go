package middleware

import "net/http"

// BodyLimit caps the request body at n bytes. Installed ahead of form
// parsing so an oversized upload fails early instead of buffering fully.
func BodyLimit(n int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, n)
			next.ServeHTTP(w, r)
		})
	}
}
