package httptransport

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"campus/internal/platform/metrics"
	"campus/internal/resolver"
	"campus/pkg/platform/httputil"
	"campus/pkg/platform/middleware/auth"
	"campus/pkg/platform/middleware/metadata"
	"campus/pkg/platform/middleware/request"
	"campus/pkg/platform/middleware/requesttime"
)

// Dependencies are the collaborators the router wires into handlers.
type Dependencies struct {
	Resolver       *resolver.Resolver
	Logger         *slog.Logger
	Metrics        *metrics.Metrics
	Gatherer       prometheus.Gatherer
	RequestTimeout time.Duration
	TrustProxy     bool
}

// NewRouter wires the middleware chain and every public endpoint. The auth
// middleware only identifies the caller; the resolver decides which
// operations require one.
func NewRouter(deps Dependencies) chi.Router {
	timeout := deps.RequestTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	r := chi.NewRouter()
	r.Use(request.RequestID)
	r.Use(requesttime.Middleware)
	r.Use(metadata.ClientMetadata(deps.TrustProxy))
	r.Use(request.Recovery(deps.Logger))
	r.Use(request.Logger(deps.Logger))
	if deps.Metrics != nil {
		r.Use(request.Latency(deps.Metrics))
	}

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	if deps.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Group(func(r chi.Router) {
		r.Use(chimw.Timeout(timeout))
		r.Use(auth.Authenticate(deps.Resolver, deps.Logger))

		NewAuthHandler(deps.Resolver, deps.Logger).Register(r)
		NewLearnerHandler(deps.Resolver, deps.Logger).Register(r)
		NewSubjectHandler(deps.Resolver, deps.Logger).Register(r)
	})

	return r
}
