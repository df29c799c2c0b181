package server_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kyrinjs/Kyrin/core/server"
)

func TestStartStopsOnContextCancel(t *testing.T) {
	t.Parallel()

	srv := server.New("127.0.0.1:0")
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		done <- srv.Start(ctx, http.NewServeMux())
	}()

	// give the listener a moment before pulling the plug
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop after context cancellation")
	}

	require.NoError(t, srv.Stop())
}

func TestStartFailsOnBadAddress(t *testing.T) {
	t.Parallel()

	srv := server.New("256.256.256.256:99999")
	err := srv.Start(context.Background(), http.NewServeMux())
	assert.Error(t, err)
}

func TestStopWhenNotRunning(t *testing.T) {
	t.Parallel()

	srv := server.New(":0")
	assert.NoError(t, srv.Stop())
}

func TestNewFromConfig(t *testing.T) {
	t.Parallel()

	srv, err := server.NewFromConfig(server.Config{
		Addr:            ":8080",
		ReadTimeout:     10 * time.Second,
		ShutdownTimeout: 5 * time.Second,
	})
	require.NoError(t, err)
	assert.NotNil(t, srv)

	_, err = server.NewFromConfig(server.Config{})
	assert.ErrorIs(t, err, server.ErrMissingAddress)
}
