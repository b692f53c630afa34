package middleware

import (
	"context"
	"fmt"
	"net/http"

	"github.com/ardra-p/Sustainability-Board-Game/internal/utils"
	"github.com/gorilla/mux"
)

// Context keys
type contextKey string

const usernameContextKey = contextKey("username")

// SessionResolver traduit un token de session opaque en username.
type SessionResolver interface {
	ResolveSession(ctx context.Context, token string) (string, error)
}

// Auth refuse toute requête sans session valide avant de toucher quoi que ce
// soit d'autre, et injecte le username dans le contexte de la requête.
func Auth(sessions SessionResolver) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := r.Header.Get("Authorization")
			if token == "" {
				utils.ErrorSimple(w, http.StatusUnauthorized, "missing authorization token")
				return
			}

			username, err := sessions.ResolveSession(r.Context(), token)
			if err != nil {
				utils.ErrorSimple(w, http.StatusUnauthorized, "invalid or expired session")
				return
			}

			ctx := context.WithValue(r.Context(), usernameContextKey, username)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUsername récupère le username injecté par Auth.
func GetUsername(r *http.Request) (string, error) {
	username, ok := r.Context().Value(usernameContextKey).(string)
	if !ok || username == "" {
		return "", fmt.Errorf("username not found in context")
	}
	return username, nil
}
