// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

//go:build unix

package daemon

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ManuGH/vuejs/internal/log"
)

func TestApp_ReloadSignal(t *testing.T) {
	reloaded := make(chan struct{}, 1)
	app := NewApp(log.WithComponent("test"), &fakeManager{}, nil, func(context.Context) {
		reloaded <- struct{}{}
	})
	app.reloadSignal = syscall.SIGUSR1

	// Keeps the default SIGUSR1 action (exit) away while the app subscribes.
	sink := make(chan os.Signal, 16)
	signal.Notify(sink, syscall.SIGUSR1)
	defer signal.Stop(sink)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	errChan := make(chan error, 1)
	go func() { errChan <- app.Run(ctx) }()

	// signal.Notify is installed asynchronously; retry until it is observed.
	deadline := time.After(2 * time.Second)
	for done := false; !done; {
		require.NoError(t, syscall.Kill(syscall.Getpid(), syscall.SIGUSR1))
		select {
		case <-reloaded:
			done = true
		case <-time.After(20 * time.Millisecond):
		case <-deadline:
			t.Fatal("reload was not triggered")
		}
	}

	cancel()
	assert.NoError(t, <-errChan)
}
