package httpt_test

import (
	"context"
	"net"
	"net/http"
	"testing"
	"time"

	"shopsample/internal/config"
	httpt "shopsample/internal/transport/http"
	"shopsample/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serverConfig(port string) *config.HTTP {
	return &config.HTTP{
		Host:            "127.0.0.1",
		Port:            port,
		ShutdownTimeout: time.Second,
	}
}

func TestHTTPServer_StopsOnCancel(t *testing.T) {
	srv := httpt.NewHTTPServer(http.NotFoundHandler(), serverConfig("0"), logger.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Start(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestHTTPServer_ListenFailure(t *testing.T) {
	busy, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer busy.Close()

	_, port, err := net.SplitHostPort(busy.Addr().String())
	require.NoError(t, err)

	srv := httpt.NewHTTPServer(http.NotFoundHandler(), serverConfig(port), logger.NewNop())

	done := make(chan error, 1)
	go func() { done <- srv.Start(context.Background()) }()

	select {
	case err := <-done:
		assert.ErrorContains(t, err, "listen and serve")
	case <-time.After(2 * time.Second):
		t.Fatal("server did not report the listen failure")
	}
}
