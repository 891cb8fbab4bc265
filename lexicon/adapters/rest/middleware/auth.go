package middleware

import (
	"log/slog"
	"net/http"
	"strings"
)

const (
	authorizationHeader = "Authorization"
	prefix              = "Token "
)

type TokenVerifier interface {
	Verify(token string) error
}

// Auth пропускает запрос только с заголовком "Authorization: Token <jwt>"
func Auth(next http.HandlerFunc, verifier TokenVerifier, log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get(authorizationHeader)
		if !strings.HasPrefix(authHeader, prefix) {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		token := strings.TrimSpace(authHeader[len(prefix):])
		if token == "" {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		if err := verifier.Verify(token); err != nil {
			log.Debug("token rejected", "path", r.URL.Path, "error", err)
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		next(w, r)
	}
}
