package infrastructure

import (
	"github.com/architeacher/svc-web-analyzer/pkg/queue"
)

// Queue is an alias to the queue.Queue interface for backward compatibility
type Queue = queue.Queue
