package httpserver_test

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mvckit/pkg/httpserver"
	"github.com/dmitrymomot/mvckit/pkg/logger"
)

func startServer(t *testing.T, ctx context.Context, srv *httpserver.Server, addrCh chan net.Addr, h http.Handler) (string, chan error) {
	t.Helper()
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx, h) }()

	select {
	case addr := <-addrCh:
		return addr.String(), done
	case err := <-done:
		require.FailNow(t, "server did not start", err)
	case <-time.After(2 * time.Second):
		require.FailNow(t, "server did not start in time")
	}
	return "", done
}

func TestServer_RunAndCancel(t *testing.T) {
	t.Parallel()
	addrCh := make(chan net.Addr, 1)
	srv := httpserver.New(
		httpserver.Config{Addr: "127.0.0.1:0", ShutdownTimeout: 200 * time.Millisecond},
		httpserver.WithStartHook(func(a net.Addr) { addrCh <- a }),
	)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	addr, done := startServer(t, ctx, srv, addrCh, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	}))

	resp, err := http.Get("http://" + addr)
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	require.NoError(t, resp.Body.Close())
	assert.Equal(t, "ok", string(body))

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		require.Fail(t, "run did not finish")
	}
	require.NoError(t, srv.Shutdown(context.Background()))
}

func TestServer_ManualShutdown(t *testing.T) {
	t.Parallel()
	addrCh := make(chan net.Addr, 1)
	srv := httpserver.New(httpserver.Config{Addr: "127.0.0.1:0"}, httpserver.WithStartHook(func(a net.Addr) { addrCh <- a }))

	_, done := startServer(t, context.Background(), srv, addrCh, nil)
	require.NoError(t, srv.Shutdown(context.Background()))

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		require.Fail(t, "run did not finish")
	}
}

func TestServer_StartError(t *testing.T) {
	t.Parallel()
	srv := httpserver.New(httpserver.Config{Addr: ":invalid"}, httpserver.WithLogger(logger.Discard()))

	err := srv.Run(context.Background(), http.NotFoundHandler())
	assert.ErrorIs(t, err, httpserver.ErrStart)
}

func TestHealthCheckHandler(t *testing.T) {
	t.Parallel()
	log := logger.Discard()

	tests := []struct {
		name     string
		checks   []func(context.Context) error
		wantCode int
		wantBody string
	}{
		{"liveness", nil, http.StatusOK, "ALIVE"},
		{"ready", []func(context.Context) error{func(context.Context) error { return nil }}, http.StatusOK, "READY"},
		{"not ready", []func(context.Context) error{func(context.Context) error { return errors.New("down") }}, http.StatusServiceUnavailable, "NOT_READY"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rec := httptest.NewRecorder()
			httpserver.HealthCheckHandler(log, tt.checks...)(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, tt.wantBody, rec.Body.String())
		})
	}
}
