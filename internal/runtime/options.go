package runtime

import "os"

// ServiceOption configures a ServiceCtx before Run is called.
type ServiceOption func(*ServiceCtx)

// WithServiceTermination overrides the channel Run listens on for
// SIGINT/SIGTERM, mainly so tests can trigger shutdown deterministically.
func WithServiceTermination(ch chan os.Signal) ServiceOption {
	return func(ctx *ServiceCtx) {
		ctx.shutdownChannel = ch
	}
}

// WithWaitingForServer makes WaitForServer block until the HTTP server's
// listen goroutine has started. No-op for worker-only processes that never
// call WithHTTPServer.
func WithWaitingForServer() ServiceOption {
	return func(ctx *ServiceCtx) {
		ctx.serverReady = make(chan struct{})
	}
}
