// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package config

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBindListenAddr(t *testing.T) {
	tests := []struct {
		listen, bind, want string
	}{
		{":8080", "", ":8080"},
		{":8080", "127.0.0.1", "127.0.0.1:8080"},
		{"", "127.0.0.1", "127.0.0.1:0"},
		{"10.0.0.1:8080", "127.0.0.1", "10.0.0.1:8080"},
		{":8080", "::1", "[::1]:8080"},
	}
	for _, tt := range tests {
		got, err := BindListenAddr(tt.listen, tt.bind)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}

	_, err := BindListenAddr(":8080", "if:does-not-exist0")
	assert.Error(t, err)
}

func TestServerConfigFor(t *testing.T) {
	cfg := Defaults()
	cfg.Server.ShutdownTimeout = time.Second

	sc := ServerConfigFor(cfg)
	assert.Equal(t, ":8080", sc.ListenAddr)
	assert.Equal(t, minShutdownTimeout, sc.ShutdownTimeout, "shutdown timeout has a floor")

	srv := sc.NewHTTPServer(http.NotFoundHandler())
	assert.Equal(t, sc.ListenAddr, srv.Addr)
	assert.Equal(t, 10*time.Second, srv.ReadHeaderTimeout)
	assert.Equal(t, sc.MaxHeaderBytes, srv.MaxHeaderBytes)
}
