package middleware

import (
	"net/http"

	"golang.org/x/time/rate"
)

// Rate shares one token bucket of rps requests per second between all
// handlers wrapped by the returned function.
func Rate(rps int) func(http.HandlerFunc) http.HandlerFunc {
	if rps <= 0 {
		return func(next http.HandlerFunc) http.HandlerFunc { return next }
	}

	limiter := rate.NewLimiter(rate.Limit(rps), rps)

	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if err := limiter.Wait(r.Context()); err != nil {
				http.Error(w, "request cancelled", http.StatusRequestTimeout)
				return
			}
			next(w, r)
		}
	}
}
