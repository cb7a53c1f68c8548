package httpserver_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/rolekit/pkg/httpserver"
)

func testConfig() httpserver.Config {
	return httpserver.Config{
		Addr:            "localhost:0",
		ReadTimeout:     time.Second,
		WriteTimeout:    time.Second,
		IdleTimeout:     time.Second,
		ShutdownTimeout: time.Second,
	}
}

func TestServerRunAndShutdown(t *testing.T) {
	t.Parallel()

	t.Run("stops on context cancel", func(t *testing.T) {
		t.Parallel()
		srv := httpserver.New(testConfig())
		ctx, cancel := context.WithCancel(context.Background())

		done := make(chan error, 1)
		go func() { done <- srv.Run(ctx, http.NotFoundHandler()) }()

		time.Sleep(50 * time.Millisecond)
		cancel()

		select {
		case err := <-done:
			require.NoError(t, err)
		case <-time.After(3 * time.Second):
			t.Fatal("server did not stop after context cancel")
		}
	})

	t.Run("listen failure wraps ErrStart", func(t *testing.T) {
		t.Parallel()
		cfg := testConfig()
		cfg.Addr = "256.256.256.256:99999"
		srv := httpserver.New(cfg)

		err := srv.Run(context.Background(), nil)
		require.Error(t, err)
		assert.True(t, errors.Is(err, httpserver.ErrStart))
	})
}

func TestHealthCheckHandler(t *testing.T) {
	t.Parallel()

	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("liveness", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		httpserver.HealthCheckHandler(log)(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "ALIVE", rec.Body.String())
	})

	t.Run("readiness all healthy", func(t *testing.T) {
		t.Parallel()
		ok := func(context.Context) error { return nil }
		rec := httptest.NewRecorder()
		httpserver.HealthCheckHandler(log, ok, ok)(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "READY", rec.Body.String())
	})

	t.Run("readiness with failing dependency", func(t *testing.T) {
		t.Parallel()
		ok := func(context.Context) error { return nil }
		bad := func(context.Context) error { return errors.New("db down") }
		rec := httptest.NewRecorder()
		httpserver.HealthCheckHandler(log, ok, bad)(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "NOT_READY", rec.Body.String())
	})
}
