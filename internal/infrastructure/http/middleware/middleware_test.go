package middleware_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/mrops-br/saree-catalog-api/internal/infrastructure/http/middleware"
	"github.com/mrops-br/saree-catalog-api/internal/infrastructure/telemetry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
)

func TestHTTPRouteContext(t *testing.T) {
	var seen string
	r := chi.NewRouter()
	r.Group(func(r chi.Router) {
		r.Use(middleware.HTTPRouteContext())
		r.Get("/products/{id}", func(w http.ResponseWriter, r *http.Request) {
			seen = telemetry.HTTPRouteFromContext(r.Context())
		})
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/products/42", nil))
	assert.Equal(t, "/products/{id}", seen)
}

func TestStructuredLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	meter := metricnoop.NewMeterProvider().Meter("test")

	r := chi.NewRouter()
	r.Use(middleware.StructuredLogger(logger))
	r.Use(middleware.ActiveRequestsMiddleware(meter))
	r.Use(middleware.DurationMillisecondsMiddleware(meter))
	r.Get("/categories/{slug}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"Category not found"}`))
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/categories/none?x=1", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "WARN", entry["level"])
	assert.Equal(t, "/categories/{slug}", entry["http.route"])
	assert.Equal(t, "x=1", entry["url.query"])
	assert.EqualValues(t, http.StatusNotFound, entry["http.response.status_code"])
}

func TestStructuredLoggerSubMillisecondDuration(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	r := chi.NewRouter()
	r.Use(middleware.StructuredLogger(logger))
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Microsecond)
		w.WriteHeader(http.StatusOK)
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	ms, ok := entry["duration_ms"].(float64)
	require.True(t, ok)
	assert.Greater(t, ms, 0.0)
}
