package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultAddr           = ":8080"
	defaultJWTSigningKey  = "dev-secret-key-change-in-production"
	defaultJWTIssuer      = "campus"
	defaultRequestTimeout = 30 * time.Second
	defaultAuditBuffer    = 256
	defaultAuditRetention = 10000
	defaultLoginAttempts  = 5
	defaultLoginLockout   = 15 * time.Minute
)

// Server captures HTTP server level configuration.
type Server struct {
	Addr           string
	JWTSigningKey  string
	JWTIssuer      string
	LogLevel       string
	LogFormat      string
	SeedData       bool
	RequestTimeout time.Duration
	AuditBuffer    int
	AuditRetention int

	// TrustProxyHeaders makes X-Forwarded-For and X-Real-IP decide the client
	// IP. Enable only behind a proxy that overwrites them.
	TrustProxyHeaders bool
	LoginAttempts     int
	LoginLockout      time.Duration
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() (Server, error) {
	return fromLookup(os.LookupEnv)
}

func fromLookup(lookup func(string) (string, bool)) (Server, error) {
	get := func(key, fallback string) string {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
		return fallback
	}

	cfg := Server{
		Addr:          get("CAMPUS_ADDR", defaultAddr),
		JWTSigningKey: get("JWT_SIGNING_KEY", defaultJWTSigningKey),
		JWTIssuer:     get("JWT_ISSUER", defaultJWTIssuer),
		LogLevel:      strings.ToLower(get("LOG_LEVEL", "info")),
		LogFormat:     strings.ToLower(get("LOG_FORMAT", "json")),
	}

	seed, err := strconv.ParseBool(get("SEED_DATA", "true"))
	if err != nil {
		return Server{}, fmt.Errorf("SEED_DATA: %w", err)
	}
	cfg.SeedData = seed

	timeout, err := time.ParseDuration(get("REQUEST_TIMEOUT", defaultRequestTimeout.String()))
	if err != nil {
		return Server{}, fmt.Errorf("REQUEST_TIMEOUT: %w", err)
	}
	if timeout <= 0 {
		return Server{}, fmt.Errorf("REQUEST_TIMEOUT must be positive, got %s", timeout)
	}
	cfg.RequestTimeout = timeout

	buffer, err := strconv.Atoi(get("AUDIT_BUFFER", strconv.Itoa(defaultAuditBuffer)))
	if err != nil {
		return Server{}, fmt.Errorf("AUDIT_BUFFER: %w", err)
	}
	if buffer <= 0 {
		return Server{}, fmt.Errorf("AUDIT_BUFFER must be positive, got %d", buffer)
	}
	cfg.AuditBuffer = buffer

	retention, err := strconv.Atoi(get("AUDIT_RETENTION", strconv.Itoa(defaultAuditRetention)))
	if err != nil {
		return Server{}, fmt.Errorf("AUDIT_RETENTION: %w", err)
	}
	if retention <= 0 {
		return Server{}, fmt.Errorf("AUDIT_RETENTION must be positive, got %d", retention)
	}
	cfg.AuditRetention = retention

	trust, err := strconv.ParseBool(get("TRUST_PROXY_HEADERS", "false"))
	if err != nil {
		return Server{}, fmt.Errorf("TRUST_PROXY_HEADERS: %w", err)
	}
	cfg.TrustProxyHeaders = trust

	attempts, err := strconv.Atoi(get("LOGIN_MAX_ATTEMPTS", strconv.Itoa(defaultLoginAttempts)))
	if err != nil {
		return Server{}, fmt.Errorf("LOGIN_MAX_ATTEMPTS: %w", err)
	}
	if attempts <= 0 {
		return Server{}, fmt.Errorf("LOGIN_MAX_ATTEMPTS must be positive, got %d", attempts)
	}
	cfg.LoginAttempts = attempts

	lockout, err := time.ParseDuration(get("LOGIN_LOCKOUT", defaultLoginLockout.String()))
	if err != nil {
		return Server{}, fmt.Errorf("LOGIN_LOCKOUT: %w", err)
	}
	if lockout <= 0 {
		return Server{}, fmt.Errorf("LOGIN_LOCKOUT must be positive, got %s", lockout)
	}
	cfg.LoginLockout = lockout

	switch cfg.LogFormat {
	case "json", "text":
	default:
		return Server{}, fmt.Errorf("LOG_FORMAT must be json or text, got %q", cfg.LogFormat)
	}
	return cfg, nil
}
