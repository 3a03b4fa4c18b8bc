package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerationCounter(t *testing.T) {
	m := New()
	m.Generation("questions", "ai")
	m.Generation("questions", "fallback")
	m.Generation("questions", "fallback")

	assert.Equal(t, 1.0, testutil.ToFloat64(m.generations.WithLabelValues("questions", "ai")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.generations.WithLabelValues("questions", "fallback")))
}

func TestExternalCall(t *testing.T) {
	m := New()
	m.ExternalCall(true, 120*time.Millisecond)
	m.ExternalCall(false, 2*time.Second)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.external.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.external.WithLabelValues("error")))
	assert.Equal(t, 2, testutil.CollectAndCount(m.latency))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.Generation("questions", "ai")
		m.ExternalCall(true, time.Second)
	})

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandlerExposesCounters(t *testing.T) {
	m := New()
	m.Generation("followup", "rejected")

	srv := httptest.NewServer(m.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `qgen_generations_total{kind="followup",source="rejected"} 1`)
	assert.Contains(t, string(body), "go_goroutines")
}
