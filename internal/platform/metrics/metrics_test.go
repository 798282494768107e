package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCounters(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.IncrementLearnersCreated()
	m.IncrementLearnersCreated()
	m.IncrementAuthFailures()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.LearnersCreated))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.AuthFailures))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.SubjectsCreated))
}

func TestObserveRequest(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.ObserveRequest("GET", "/learners", "200", time.Now())

	count, err := testutil.GatherAndCount(reg, "campus_http_request_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestSeparateRegistriesDoNotCollide(t *testing.T) {
	assert.NotPanics(t, func() {
		New(prometheus.NewRegistry())
		New(prometheus.NewRegistry())
	})
}
