// Package requestcontext carries request-scoped values through context.Context
// without importing net/http. Middleware writes them; the resolver, services,
// and the audit publisher read them.
package requestcontext

import (
	"context"
	"time"
)

type (
	userKey        struct{}
	requestIDKey   struct{}
	requestTimeKey struct{}
)

// user is the verified caller attached by the auth middleware.
type user struct {
	id    string
	email string
}

// WithUser attaches a verified caller.
func WithUser(ctx context.Context, userID, email string) context.Context {
	return context.WithValue(ctx, userKey{}, user{id: userID, email: email})
}

// UserID is "" for anonymous requests.
func UserID(ctx context.Context) string {
	u, _ := ctx.Value(userKey{}).(user)
	return u.id
}

func UserEmail(ctx context.Context) string {
	u, _ := ctx.Value(userKey{}).(user)
	return u.email
}

func IsAuthenticated(ctx context.Context) bool {
	return UserID(ctx) != ""
}

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// WithTime pins the request time so every timestamp written while serving
// the request agrees.
func WithTime(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, requestTimeKey{}, t)
}

// Now is the pinned request time, or the wall clock outside a request.
func Now(ctx context.Context) time.Time {
	if t, ok := ctx.Value(requestTimeKey{}).(time.Time); ok {
		return t
	}
	return time.Now()
}
