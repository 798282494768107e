// Package app assembles the stores, services, resolver, and HTTP router into
// one runnable unit.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"campus/internal/audit"
	"campus/internal/auth/lockout"
	authService "campus/internal/auth/service"
	authStore "campus/internal/auth/store"
	"campus/internal/enrollment"
	"campus/internal/ids"
	jwttoken "campus/internal/jwt_token"
	learnerService "campus/internal/learner/service"
	learnerStore "campus/internal/learner/store"
	"campus/internal/platform/config"
	"campus/internal/platform/metrics"
	"campus/internal/resolver"
	"campus/internal/seed"
	subjectService "campus/internal/subject/service"
	subjectStore "campus/internal/subject/store"
	httptransport "campus/internal/transport/http"
)

type App struct {
	Resolver    *resolver.Resolver
	Router      http.Handler
	AuditWorker *audit.Worker
	AuditLog    *audit.InMemoryStore
	Metrics     *metrics.Metrics
}

// New wires every component. The registry receives the application metrics
// plus the Go runtime and process collectors, and backs /metrics.
func New(cfg config.Server, logger *slog.Logger, registry *prometheus.Registry) (*App, error) {
	ctx := context.Background()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(registry)

	learners := learnerStore.New()
	subjects := subjectStore.New()
	links := enrollment.NewStore()
	allocator := ids.NewAllocator()

	if cfg.SeedData {
		if err := seed.Load(ctx, learners, subjects, links); err != nil {
			return nil, fmt.Errorf("loading seed data: %w", err)
		}
		logger.Info("seed data loaded",
			"learners", learners.Count(ctx),
			"subjects", subjects.Count(ctx),
			"enrollments", links.Count(),
		)
	}

	tokens := jwttoken.NewJWTService(cfg.JWTSigningKey, cfg.JWTIssuer)
	publisher := audit.NewPublisher(cfg.AuditBuffer, logger)
	auditLog := audit.NewInMemoryStore(cfg.AuditRetention)

	res := resolver.New(
		learnerService.New(learners, links, allocator,
			learnerService.WithLogger(logger), learnerService.WithMetrics(m)),
		subjectService.New(subjects, links, allocator,
			subjectService.WithLogger(logger), subjectService.WithMetrics(m)),
		links,
		allocator,
		authService.New(authStore.NewInMemoryUserStore(), allocator, tokens,
			authService.WithLogger(logger), authService.WithMetrics(m)),
		resolver.WithLogger(logger),
		resolver.WithAudit(publisher),
		resolver.WithMetrics(m),
		resolver.WithLockout(lockout.New(lockout.NewInMemoryStore(),
			lockout.WithLogger(logger),
			lockout.WithConfig(lockoutConfig(cfg)),
		)),
	)

	router := httptransport.NewRouter(httptransport.Dependencies{
		Resolver:       res,
		Logger:         logger,
		Metrics:        m,
		Gatherer:       registry,
		RequestTimeout: cfg.RequestTimeout,
		TrustProxy:     cfg.TrustProxyHeaders,
	})

	return &App{
		Resolver:    res,
		Router:      router,
		AuditWorker: audit.NewWorker(auditLog, publisher.Events(), logger),
		AuditLog:    auditLog,
		Metrics:     m,
	}, nil
}

// lockoutConfig applies the configured limits over the defaults so a zero
// config still locks.
func lockoutConfig(cfg config.Server) lockout.Config {
	lc := lockout.DefaultConfig()
	if cfg.LoginAttempts > 0 {
		lc.Attempts = cfg.LoginAttempts
	}
	if cfg.LoginLockout > 0 {
		lc.Window = cfg.LoginLockout
		lc.LockDuration = cfg.LoginLockout
	}
	return lc
}
