// Package metadata records where a request came from so services can key
// per-client state without depending on net/http.
package metadata

import (
	"context"
	"net"
	"net/http"
	"strings"
)

type clientIPKey struct{}
type userAgentKey struct{}

// ClientMetadata stores the client IP and User-Agent on the request context.
// Forwarding headers are only honoured when trustProxy is set; otherwise a
// caller could pick its own IP.
func ClientMetadata(trustProxy bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := WithClientMetadata(r.Context(), ClientIPFromRequest(r, trustProxy), r.UserAgent())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ClientIP returns the IP recorded by ClientMetadata, or "".
func ClientIP(ctx context.Context) string {
	ip, _ := ctx.Value(clientIPKey{}).(string)
	return ip
}

func UserAgent(ctx context.Context) string {
	ua, _ := ctx.Value(userAgentKey{}).(string)
	return ua
}

// WithClientMetadata injects client metadata, for callers outside the
// middleware chain such as tests.
func WithClientMetadata(ctx context.Context, clientIP, userAgent string) context.Context {
	ctx = context.WithValue(ctx, clientIPKey{}, clientIP)
	return context.WithValue(ctx, userAgentKey{}, userAgent)
}

// ClientIPFromRequest resolves the client IP. With trustProxy the first
// X-Forwarded-For entry wins, then X-Real-IP; the connection address is the
// fallback.
func ClientIPFromRequest(r *http.Request, trustProxy bool) string {
	if trustProxy {
		if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
			first, _, _ := strings.Cut(xff, ",")
			if ip := strings.TrimSpace(first); ip != "" {
				return ip
			}
		}
		if xri := strings.TrimSpace(r.Header.Get("X-Real-IP")); xri != "" {
			return xri
		}
	}
	if r.RemoteAddr == "" {
		return "unknown"
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
