package middleware

import (
	"net/http"
)

// Concurrency rejects requests beyond limit in flight with 503. All handlers
// wrapped by the returned function share the same limit.
func Concurrency(limit int) func(http.HandlerFunc) http.HandlerFunc {
	if limit <= 0 {
		return func(next http.HandlerFunc) http.HandlerFunc { return next }
	}

	sema := make(chan struct{}, limit)

	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			select {
			case sema <- struct{}{}:
				defer func() { <-sema }()
				next(w, r)
			default:
				w.Header().Set("Retry-After", "1")
				http.Error(w, "too many concurrent requests", http.StatusServiceUnavailable)
			}
		}
	}
}
