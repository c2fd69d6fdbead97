package runtime

import (
	"context"
	"net/http"
	"os"
	"sync/atomic"
	"syscall"
	"testing"
	"time"

	"github.com/architeacher/svc-web-analyzer/internal/config"
	"github.com/architeacher/svc-web-analyzer/internal/infrastructure"
	"github.com/stretchr/testify/require"
)

func newTestDeps() *Dependencies {
	cfg := &config.ServiceConfig{}
	cfg.HTTPServer.ShutdownTimeout = 500 * time.Millisecond

	return &Dependencies{
		Cfg:    cfg,
		Logger: infrastructure.New(config.LoggingConfig{Level: "disabled"}),
	}
}

type fakeWorker struct {
	started atomic.Bool
	stopped atomic.Bool
}

func (w *fakeWorker) Start(ctx context.Context) error {
	w.started.Store(true)
	<-ctx.Done()
	w.stopped.Store(true)
	return ctx.Err()
}

func TestServiceCtx_Run_ShutsDownOnSignal(t *testing.T) {
	shutdownChannel := make(chan os.Signal, 1)
	worker := &fakeWorker{}

	svc := New(newTestDeps(), WithServiceTermination(shutdownChannel))
	svc.AddWorker(worker)

	done := make(chan struct{})
	go func() {
		svc.Run()
		close(done)
	}()

	require.Eventually(t, worker.started.Load, time.Second, 5*time.Millisecond)

	shutdownChannel <- syscall.SIGTERM

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after shutdown signal")
	}

	require.True(t, worker.stopped.Load())
}

func TestServiceCtx_Run_WorkerFailureTriggersShutdown(t *testing.T) {
	failing := backgroundProcessorFunc(func(ctx context.Context) error {
		return context.DeadlineExceeded
	})

	svc := New(newTestDeps(), WithServiceTermination(make(chan os.Signal, 1)))
	svc.AddWorker(failing)

	done := make(chan struct{})
	go func() {
		svc.Run()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not shut down after worker error")
	}
}

func TestServiceCtx_Run_ServesAndDrainsHTTPServer(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	server := &http.Server{Addr: "127.0.0.1:0", Handler: mux}

	shutdownChannel := make(chan os.Signal, 1)
	svc := New(newTestDeps(), WithServiceTermination(shutdownChannel), WithWaitingForServer())
	svc.WithHTTPServer(server)

	done := make(chan struct{})
	go func() {
		svc.Run()
		close(done)
	}()

	svc.WaitForServer()

	shutdownChannel <- syscall.SIGINT

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after shutting down http server")
	}
}

type backgroundProcessorFunc func(ctx context.Context) error

func (f backgroundProcessorFunc) Start(ctx context.Context) error {
	return f(ctx)
}
