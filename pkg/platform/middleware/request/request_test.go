package request

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campus/pkg/requestcontext"
)

func TestRequestID(t *testing.T) {
	var seen string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = requestcontext.RequestID(r.Context())
	}))

	t.Run("generates when absent", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.NotEmpty(t, seen)
		assert.Equal(t, seen, rec.Header().Get(HeaderRequestID))
	})

	t.Run("propagates incoming", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(HeaderRequestID, "abc-123")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, "abc-123", seen)
		assert.Equal(t, "abc-123", rec.Header().Get(HeaderRequestID))
	})
}

func TestRecovery(t *testing.T) {
	var logs bytes.Buffer
	h := Recovery(slog.New(slog.NewTextHandler(&logs, nil)))(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"internal_error"}`, rec.Body.String())
	assert.Contains(t, logs.String(), "panic recovered")
}

func TestLogger(t *testing.T) {
	var logs bytes.Buffer
	h := Logger(slog.New(slog.NewTextHandler(&logs, nil)))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodDelete, "/learners/4", nil))

	assert.Contains(t, logs.String(), "status=418")
	assert.Contains(t, logs.String(), "path=/learners/4")
}

type observation struct{ method, route, status string }

type fakeObserver struct {
	mu  sync.Mutex
	got []observation
}

func (f *fakeObserver) ObserveRequest(method, route, status string, _ time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.got = append(f.got, observation{method, route, status})
}

func TestLatencyUsesRoutePattern(t *testing.T) {
	obs := &fakeObserver{}
	r := chi.NewRouter()
	r.Use(Latency(obs))
	r.Get("/learners/{id}", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "ok")
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/learners/42", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nowhere", nil))

	require.Len(t, obs.got, 2)
	assert.Equal(t, observation{"GET", "/learners/{id}", "200"}, obs.got[0])
	assert.Equal(t, "404", obs.got[1].status)
}
