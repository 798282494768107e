// Package resolver is the single entry point for reads and writes against the
// in-memory academic records.
//
// One sync.RWMutex guards every collection, the enrollment relation, the
// identifier allocator, and the credential store; none of those lock on their
// own. Reads take the read lock and compute derived enrollment fields inside
// it. Mutations take the write lock, so each call is atomic. Mutations require
// an authenticated user on the context and are rejected before any state is
// touched when there is none. bcrypt hashing and token signing run outside
// the lock.
package resolver

import (
	"context"
	"log/slog"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"campus/internal/audit"
	"campus/internal/auth/lockout"
	authService "campus/internal/auth/service"
	"campus/internal/enrollment"
	"campus/internal/ids"
	learnerService "campus/internal/learner/service"
	"campus/internal/platform/metrics"
	subjectService "campus/internal/subject/service"
	dErrors "campus/pkg/domain-errors"
	"campus/pkg/requestcontext"
)

var tracer = otel.Tracer("campus.resolver")

// AuditPublisher receives an event after every successful mutation.
type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event)
}

type Resolver struct {
	mu sync.RWMutex

	learners *learnerService.Repository
	subjects *subjectService.Repository
	links    *enrollment.Store
	ids      *ids.Allocator
	auth     *authService.Service
	lockout  *lockout.Service

	audit   AuditPublisher
	logger  *slog.Logger
	metrics *metrics.Metrics
}

type Option func(*Resolver)

func WithLogger(logger *slog.Logger) Option {
	return func(r *Resolver) {
		r.logger = logger
	}
}

func WithAudit(p AuditPublisher) Option {
	return func(r *Resolver) {
		r.audit = p
	}
}

// WithLockout enables login lockout after repeated failures.
func WithLockout(l *lockout.Service) Option {
	return func(r *Resolver) {
		r.lockout = l
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(r *Resolver) {
		r.metrics = m
	}
}

// New wires the façade over already constructed state. The repositories and
// the auth service must share links and allocator with the resolver.
func New(
	learners *learnerService.Repository,
	subjects *subjectService.Repository,
	links *enrollment.Store,
	allocator *ids.Allocator,
	auth *authService.Service,
	opts ...Option,
) *Resolver {
	r := &Resolver{
		learners: learners,
		subjects: subjects,
		links:    links,
		ids:      allocator,
		auth:     auth,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = slog.Default()
	}
	return r
}

// Reset clears every collection, edge, credential, and allocator counter.
func (r *Resolver) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.learners.Reset()
	r.subjects.Reset()
	r.links.Reset()
	r.auth.Reset()
	r.ids.Reset()
	if r.lockout != nil {
		r.lockout.Reset()
	}
}

// requireUser returns the authenticated user ID or an unauthorized error. A
// request whose deadline already passed is refused before any state changes.
func (r *Resolver) requireUser(ctx context.Context, op string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeTimeout, "request deadline exceeded")
	}
	if !requestcontext.IsAuthenticated(ctx) {
		r.logger.WarnContext(ctx, "mutation rejected without authentication",
			"operation", op,
			"request_id", requestcontext.RequestID(ctx),
		)
		return "", dErrors.New(dErrors.CodeUnauthorized, "authentication required")
	}
	return requestcontext.UserID(ctx), nil
}

func (r *Resolver) emit(ctx context.Context, event audit.Event) {
	if r.audit == nil {
		return
	}
	r.audit.Emit(ctx, event)
}

func startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return tracer.Start(ctx, "Resolver."+name, trace.WithAttributes(attrs...))
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, string(dErrors.CodeOf(err)))
	}
	span.End()
}
