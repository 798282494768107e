package lockout

import (
	"strings"
	"time"
)

// Config bounds failed logins per key. A key that reaches Attempts failures
// within Window of its first counted failure is locked for LockDuration.
type Config struct {
	Attempts     int
	Window       time.Duration
	LockDuration time.Duration
}

func DefaultConfig() Config {
	return Config{
		Attempts:     5,
		Window:       15 * time.Minute,
		LockDuration: 15 * time.Minute,
	}
}

// Record is the failure state of one key.
type Record struct {
	Key           string
	FailureCount  int
	WindowStart   time.Time
	LastFailureAt time.Time
	LockedUntil   *time.Time
}

func (r *Record) IsLockedAt(now time.Time) bool {
	return r.LockedUntil != nil && now.Before(*r.LockedUntil)
}

// windowExpired reports whether the counted failures are older than window.
func (r *Record) windowExpired(now time.Time, window time.Duration) bool {
	return r.FailureCount == 0 || now.Sub(r.WindowStart) >= window
}

// Key joins a normalized email and a client IP. ':' is escaped in both parts
// so one identifier cannot forge another's key.
func Key(email, clientIP string) string {
	return sanitize(strings.ToLower(strings.TrimSpace(email))) + ":" + sanitize(clientIP)
}

func sanitize(s string) string {
	return strings.ReplaceAll(s, ":", "_")
}
