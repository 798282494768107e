// Package lockout slows down password guessing by locking an email and client
// IP pair after repeated failed logins.
package lockout

import (
	"context"
	"log/slog"
	"time"

	dErrors "campus/pkg/domain-errors"
	"campus/pkg/platform/middleware/metadata"
	"campus/pkg/requestcontext"
)

type Store interface {
	Get(ctx context.Context, key string) (*Record, error)
	RecordFailure(ctx context.Context, key string, now time.Time, cfg Config) (*Record, error)
	Clear(ctx context.Context, key string) error
	Reset()
}

type Service struct {
	store  Store
	config Config
	logger *slog.Logger
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithConfig(cfg Config) Option {
	return func(s *Service) {
		s.config = cfg
	}
}

func New(store Store, opts ...Option) *Service {
	s := &Service{
		store:  store,
		config: DefaultConfig(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s
}

// Check fails with CodeRateLimited while the caller's key is locked.
func (s *Service) Check(ctx context.Context, email string) error {
	key := Key(email, metadata.ClientIP(ctx))
	rec, err := s.store.Get(ctx, key)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to read login lockout")
	}
	if rec != nil && rec.IsLockedAt(requestcontext.Now(ctx)) {
		return dErrors.New(dErrors.CodeRateLimited, "too many failed login attempts, try again later")
	}
	return nil
}

// RecordFailure counts a failed login for the caller's key.
func (s *Service) RecordFailure(ctx context.Context, email string) error {
	key := Key(email, metadata.ClientIP(ctx))
	now := requestcontext.Now(ctx)
	rec, err := s.store.RecordFailure(ctx, key, now, s.config)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to record login failure")
	}
	if rec.IsLockedAt(now) && rec.FailureCount == 0 {
		s.logger.WarnContext(ctx, "login locked",
			"client_ip", metadata.ClientIP(ctx),
			"locked_until", rec.LockedUntil,
		)
	}
	return nil
}

// Clear forgets earlier failures after a successful login.
func (s *Service) Clear(ctx context.Context, email string) error {
	if err := s.store.Clear(ctx, Key(email, metadata.ClientIP(ctx))); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to clear login lockout")
	}
	return nil
}

func (s *Service) Reset() {
	s.store.Reset()
}
