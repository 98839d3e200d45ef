package http

import (
	"context"
	"crypto/subtle"
	"net/http"
	"strings"

	"equiprent-backend/internal/domain"
	"equiprent-backend/internal/security"
)

type actorKey struct{}

// ActorFromContext returns the authenticated actor placed by AuthMiddleware.
func ActorFromContext(ctx context.Context) (domain.Actor, bool) {
	actor, ok := ctx.Value(actorKey{}).(domain.Actor)
	return actor, ok
}

// AuthMiddleware validates the bearer token issued by the external identity
// service and attaches the actor to the request context.
func AuthMiddleware(validator security.TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				writeJSON(w, http.StatusUnauthorized, errorBody{Error: errorDetail{Code: "unauthorized", Message: "missing bearer token"}})
				return
			}

			claims, err := validator.ValidateToken(token)
			if err != nil {
				writeJSON(w, http.StatusUnauthorized, errorBody{Error: errorDetail{Code: "unauthorized", Message: err.Error()}})
				return
			}

			actor := domain.Actor{ID: claims.UserID, IsAdmin: claims.IsAdmin}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), actorKey{}, actor)))
		})
	}
}

// WebhookAuthMiddleware guards internal collaborator endpoints with a shared
// secret header instead of user tokens.
func WebhookAuthMiddleware(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			provided := r.Header.Get("X-Webhook-Secret")
			if secret == "" || subtle.ConstantTimeCompare([]byte(provided), []byte(secret)) != 1 {
				writeJSON(w, http.StatusUnauthorized, errorBody{Error: errorDetail{Code: "unauthorized", Message: "invalid webhook secret"}})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
