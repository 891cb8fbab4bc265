package aaa

import (
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	adminUser  = "ADMIN_USER"
	adminPass  = "ADMIN_PASSWORD"
	editorRole = "lexicon-editor" // token subject
)

var ErrInvalidCredentials = errors.New("invalid credentials")

// Authentication, Authorization, Accounting
type AAA struct {
	users    map[string]string
	secret   []byte
	tokenTTL time.Duration
	log      *slog.Logger
}

// New reads the editor credentials from ADMIN_USER and ADMIN_PASSWORD.
// Tokens are signed with a per-process key, so a restart logs everyone out.
func New(tokenTTL time.Duration, log *slog.Logger) (AAA, error) {
	user, ok := os.LookupEnv(adminUser)
	if !ok || user == "" {
		return AAA{}, fmt.Errorf("could not get admin user from environment")
	}
	password, ok := os.LookupEnv(adminPass)
	if !ok {
		return AAA{}, fmt.Errorf("could not get admin password from environment")
	}

	secret := make([]byte, 32)
	if _, err := rand.Read(secret); err != nil {
		return AAA{}, fmt.Errorf("generate signing key: %w", err)
	}

	return AAA{
		users:    map[string]string{user: password},
		secret:   secret,
		tokenTTL: tokenTTL,
		log:      log,
	}, nil
}

func (a AAA) Login(name, password string) (string, error) {
	expectedPass, ok := a.users[name]
	if !ok || expectedPass != password {
		return "", ErrInvalidCredentials
	}

	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   editorRole,
		ExpiresAt: jwt.NewNumericDate(now.Add(a.tokenTTL)),
		IssuedAt:  jwt.NewNumericDate(now),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
	if err != nil {
		a.log.Error("cannot sign token", "error", err)
		return "", fmt.Errorf("sign token: %w", err)
	}
	a.log.Debug("token issued", "user", name)
	return signed, nil
}

func (a AAA) Verify(tokenString string) error {
	if tokenString == "" {
		return errors.New("empty token")
	}

	// подпись проверяем только HMAC, иначе alg=none прошёл бы проверку
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return a.secret, nil
	})
	if err != nil {
		return err
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || !token.Valid {
		return errors.New("invalid token")
	}
	if claims.Subject != editorRole {
		return errors.New("forbidden")
	}
	return nil
}
