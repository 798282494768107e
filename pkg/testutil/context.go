package testutil

import (
	"net/http"

	"campus/pkg/requestcontext"
)

// WithUser marks the request as authenticated, the way the auth middleware
// does for a verified bearer token.
func WithUser(req *http.Request, userID, email string) *http.Request {
	return req.WithContext(requestcontext.WithUser(req.Context(), userID, email))
}

// WithBearer sets the Authorization header.
func WithBearer(req *http.Request, token string) *http.Request {
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}
