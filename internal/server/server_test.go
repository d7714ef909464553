package server

import (
	"context"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/placement/internal/config"
)

func TestHTTPServer_UsesConfiguredTimeouts(t *testing.T) {
	cfg := &config.Config{}
	cfg.Server.Port = "9000"
	cfg.Server.ReadTimeout = "5s"
	cfg.Server.WriteTimeout = "bogus"

	s := &Server{config: cfg, router: gin.New(), logger: zerolog.Nop()}
	srv := s.httpServer()

	assert.Equal(t, ":9000", srv.Addr)
	assert.Equal(t, 5*time.Second, srv.ReadTimeout)
	assert.Equal(t, 30*time.Second, srv.WriteTimeout)
}

func TestShutdown_WithoutRunningServer(t *testing.T) {
	s := &Server{config: &config.Config{}, logger: zerolog.Nop()}
	require.NoError(t, s.Shutdown(context.Background()))
}
