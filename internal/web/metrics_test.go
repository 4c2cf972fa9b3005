package web

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Pablo-Mora/gestion-activos/internal/config"
	"github.com/Pablo-Mora/gestion-activos/internal/directory"
	"github.com/Pablo-Mora/gestion-activos/internal/session"
)

func chiRouterWithMetrics(m *Metrics) chi.Router {
	r := chi.NewRouter()
	r.Use(m.Middleware())
	r.Get("/items/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	r.Method(http.MethodGet, "/metrics", m.Handler())
	return r
}

func TestMetricsRecordRoutePattern(t *testing.T) {
	metrics := NewMetrics()

	router := chiRouterWithMetrics(metrics)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/items/42", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, "console_http_requests_total")
	assert.Contains(t, body, "console_http_request_duration_seconds")
	// recorded under the route pattern, not the raw URL
	assert.Contains(t, body, `path="/items/{id}"`)
	assert.NotContains(t, body, `path="/items/42"`)
}

func TestMetricsEndpointBehindToggle(t *testing.T) {
	backend := newFakeBackend(t)
	cfg := &config.Config{
		ListenAddr:    ":0",
		BackendURL:    backend.srv.URL,
		SessionFile:   filepath.Join(t.TempDir(), "session.json"),
		HTTPTimeout:   5 * time.Second,
		EnableMetrics: true,
		LogLevel:      "error",
	}
	client := directory.New(cfg.BackendURL, cfg.HTTPTimeout)
	sessions := session.NewStore(cfg.SessionFile, client)
	srv := NewServer(cfg, zerolog.Nop(), client, sessions)
	router := srv.Router()

	rec := get(router, "/health")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = get(router, "/metrics")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `path="/health"`)

	// the toggle off keeps the endpoint unmounted
	srvOff, _ := newConsole(t, backend.srv.URL)
	rec = get(srvOff.Router(), "/metrics")
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
}
