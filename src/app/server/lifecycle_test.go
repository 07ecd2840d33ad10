package server

import (
	"context"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"lightbnb/src/core/ports/portstest"
	"lightbnb/src/infra/config"
	"lightbnb/src/infra/logger"
	"lightbnb/src/infra/security"
)

func freePort(t *testing.T) int {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer l.Close()
	return l.Addr().(*net.TCPAddr).Port
}

func TestServer_RunServesUntilCancelled(t *testing.T) {
	cfg := &config.Config{
		Server: config.ServerConfig{
			Host:            "127.0.0.1",
			Port:            freePort(t),
			ReadTimeout:     time.Second,
			WriteTimeout:    time.Second,
			ShutdownTimeout: 5 * time.Second,
		},
		Log: config.LogConfig{Level: "info"},
	}
	store := portstest.NewStore()
	srv := New(cfg, logger.Discard(), Deps{
		Users:        store,
		Reservations: store,
		Properties:   store,
		Hasher:       security.NewBcryptHasher(bcrypt.MinCost),
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()

	require.NoError(t, srv.WaitForReady(5*time.Second))

	resp, err := http.Get("http://" + cfg.Server.Addr() + "/v1/properties")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("server did not stop after cancellation")
	}

	_, err = http.Get("http://" + cfg.Server.Addr() + "/health")
	assert.Error(t, err)
}

func TestServer_RunReportsListenError(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer l.Close()

	cfg := &config.Config{
		Server: config.ServerConfig{Host: "127.0.0.1", Port: l.Addr().(*net.TCPAddr).Port, ShutdownTimeout: time.Second},
	}
	store := portstest.NewStore()
	srv := New(cfg, logger.Discard(), Deps{Users: store, Reservations: store, Properties: store, Hasher: security.NewBcryptHasher(bcrypt.MinCost)})

	err = srv.Run(context.Background())
	assert.Error(t, err)
}
