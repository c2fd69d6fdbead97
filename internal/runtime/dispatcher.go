package runtime

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/architeacher/svc-web-analyzer/internal/ports"
)

// ServiceCtx supervises one process's lifecycle: an optional HTTP server,
// zero or more background workers (outbox drainer, consumer, scanner,
// fanout relay — anything satisfying ports.BackgroundProcessor), config
// hot-reload, and graceful shutdown on SIGINT/SIGTERM.
type ServiceCtx struct {
	deps       *Dependencies
	httpServer *http.Server
	workers    []ports.BackgroundProcessor

	shutdownChannel chan os.Signal

	runCtx      context.Context
	stopRunCtx  context.CancelFunc
	serverReady chan struct{}
}

// New builds a ServiceCtx over already-initialized Dependencies (see
// Init). opts customize shutdown-signal plumbing and server-ready
// notification for tests.
func New(deps *Dependencies, opts ...ServiceOption) *ServiceCtx {
	c := &ServiceCtx{
		deps:            deps,
		shutdownChannel: make(chan os.Signal, 1),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// WithHTTPServer registers the HTTP server Run should serve and gracefully
// shut down. Skip this for worker-only processes.
func (c *ServiceCtx) WithHTTPServer(server *http.Server) *ServiceCtx {
	c.httpServer = server
	return c
}

// AddWorker registers a background worker to be started alongside the HTTP
// server (or instead of one, for worker-only processes) and stopped during
// shutdown via context cancellation.
func (c *ServiceCtx) AddWorker(worker ports.BackgroundProcessor) *ServiceCtx {
	c.workers = append(c.workers, worker)
	return c
}

// Run blocks until a shutdown signal (or a fatal startup error) is
// received, then drains the HTTP server and all workers within the
// configured shutdown timeout.
func (c *ServiceCtx) Run() {
	c.runCtx, c.stopRunCtx = context.WithCancel(context.Background())

	c.startWorkers()
	c.startHTTPServer()
	c.monitorConfigChanges()
	c.shutdownHook()
	c.shutdown()
}

func (c *ServiceCtx) startWorkers() {
	for _, w := range c.workers {
		worker := w
		go func() {
			if err := worker.Start(c.runCtx); err != nil && !errors.Is(err, context.Canceled) {
				c.deps.Logger.Error().Err(err).Msg("background worker exited with error")
				c.stopRunCtx()
			}
		}()
	}
}

func (c *ServiceCtx) startHTTPServer() {
	if c.httpServer == nil {
		return
	}

	go func() {
		c.deps.Logger.Info().Str("address", c.httpServer.Addr).Msg("service starting up")

		if c.serverReady != nil {
			c.serverReady <- struct{}{}
		}

		if err := c.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			c.deps.Logger.Fatal().Err(err).Msg("unable to start http server")
			c.stopRunCtx()
		}
	}()
}

func (c *ServiceCtx) shutdownHook() {
	signal.Notify(c.shutdownChannel, syscall.SIGINT, syscall.SIGTERM)
}

func (c *ServiceCtx) monitorConfigChanges() {
	if c.deps.ConfigLoader == nil {
		return
	}

	reloadErrors := c.deps.ConfigLoader.WatchConfigSignals(c.runCtx)

	go func() {
		for err := range reloadErrors {
			if err != nil {
				c.deps.Logger.Error().Err(err).Msg("failed to reload config")
				continue
			}
			c.deps.Logger.Info().Msg("config reloaded successfully")
		}
		c.deps.Logger.Info().Msg("stopping config monitor")
	}()
}

func (c *ServiceCtx) shutdown() {
	select {
	case <-c.runCtx.Done():
	case <-c.shutdownChannel:
		defer close(c.shutdownChannel)
	}

	c.deps.Logger.Info().Msg("received shutdown signal")

	c.stopRunCtx()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), c.deps.Cfg.HTTPServer.ShutdownTimeout)
	defer cancel()

	go func() {
		<-shutdownCtx.Done()
		if errors.Is(shutdownCtx.Err(), context.DeadlineExceeded) {
			c.deps.Logger.Error().Msg("graceful shutdown timed out, forcing exit")
			os.Exit(1)
		}
	}()

	c.cleanup(shutdownCtx)

	c.deps.Logger.Info().Msg("shutdown completed")
}

// WaitForServer blocks until the HTTP server's listen goroutine has
// started. Only useful when New was built WithWaitingForServer.
func (c *ServiceCtx) WaitForServer() {
	if c.serverReady != nil {
		<-c.serverReady
		close(c.serverReady)
	}
}

func (c *ServiceCtx) cleanup(shutdownCtx context.Context) {
	c.deps.Logger.Info().Msg("cleaning up resources...")

	if c.httpServer != nil {
		if err := c.httpServer.Shutdown(shutdownCtx); err != nil {
			c.deps.Logger.Error().Err(err).Msg("unable to gracefully shutdown http server")
		}
	}

	if c.deps.Infra.CacheClient != nil {
		if err := c.deps.Infra.CacheClient.Close(); err != nil {
			c.deps.Logger.Error().Err(err).Msg("failed to close cache connection")
		}
	}

	if c.deps.Infra.QueueClient != nil {
		if err := c.deps.Infra.QueueClient.Close(); err != nil {
			c.deps.Logger.Error().Err(err).Msg("failed to close queue connection")
		}
	}

	if c.deps.Infra.StorageClient != nil {
		if err := c.deps.Infra.StorageClient.Close(); err != nil {
			c.deps.Logger.Error().Err(err).Msg("failed to close storage connection")
		}
	}

	if c.deps.Infra.Metrics != nil {
		if err := c.deps.Infra.Metrics.Shutdown(shutdownCtx); err != nil {
			c.deps.Logger.Error().Err(err).Msg("failed to shut down metrics")
		}
	}

	c.deps.Logger.Info().Msg("cleanup completed")
}
