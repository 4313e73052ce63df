// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// HashToken returns the bcrypt hash of an admin API token, in the form
// ADMIN_TOKEN_HASH expects.
func HashToken(token string) (string, error) {
	if strings.TrimSpace(token) == "" {
		return "", fmt.Errorf("token must not be empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(token), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash token: %w", err)
	}
	return string(hash), nil
}

// RequireToken rejects requests whose bearer token does not match the
// bcrypt hash. An empty hash lets every request through, which is only
// accepted outside production (see config.Load).
func RequireToken(hash string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if hash == "" {
			slog.Warn("admin API is not protected, ADMIN_TOKEN_HASH is empty")
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				w.Header().Set("WWW-Authenticate", `Bearer realm="composer"`)
				writeError(w, http.StatusUnauthorized, "missing bearer token")
				return
			}
			if bcrypt.CompareHashAndPassword([]byte(hash), []byte(token)) != nil {
				slog.Warn("rejected admin token", "path", r.URL.Path, "remote", r.RemoteAddr)
				writeError(w, http.StatusUnauthorized, "invalid token")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// bearerToken extracts the token from an "Authorization: Bearer" header.
func bearerToken(r *http.Request) (string, bool) {
	h := r.Header.Get("Authorization")
	scheme, token, ok := strings.Cut(h, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// writeError writes a {"error": msg} JSON body.
func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
