package auth

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	authModels "campus/internal/auth/models"
	"campus/pkg/requestcontext"
)

//go:generate mockgen -source=auth.go -destination=mocks/mocks.go -package=mocks TokenVerifier

// TokenVerifier resolves a bearer token to the user it was issued for. It
// returns nil for missing, malformed, expired, or foreign tokens.
type TokenVerifier interface {
	VerifyToken(ctx context.Context, token string) *authModels.CurrentUser
}

const bearerPrefix = "Bearer "

// Authenticate attaches the current user to the request context when the
// request carries a valid bearer token. It never rejects: a request without
// a usable token continues anonymously and the resolver decides whether the
// operation needs a user.
func Authenticate(verifier TokenVerifier, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			ctx := r.Context()
			user := verifier.VerifyToken(ctx, token)
			if user == nil {
				logger.WarnContext(ctx, "ignoring invalid bearer token",
					"request_id", requestcontext.RequestID(ctx),
				)
				next.ServeHTTP(w, r)
				return
			}

			ctx = requestcontext.WithUser(ctx, user.ID, user.Email)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(header string) (string, bool) {
	if len(header) < len(bearerPrefix) || !strings.EqualFold(header[:len(bearerPrefix)], bearerPrefix) {
		return "", false
	}
	token := strings.TrimSpace(header[len(bearerPrefix):])
	return token, token != ""
}
