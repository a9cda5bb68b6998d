// Package transport delivers rendered submissions to a statsd agent. It
// owns buffering, queue admission and the socket; it deliberately does not
// retry, back off, or grow without bound.
package transport

import (
	"context"
	"errors"

	statsdexporter "github.com/github/metrics-exporter-statsd"
)

// ErrQueueFull is returned by Send when the bounded submission queue is at
// capacity. The submission is dropped; Send never blocks the caller.
var ErrQueueFull = errors.New("submission queue is full")

// Transport accepts fully resolved submissions for best-effort delivery.
// Send must be safe for concurrent use. Run must be started exactly once
// and runs until the context is canceled.
type Transport interface {
	Send(*statsdexporter.Submission) error
	Run(ctx context.Context)
}
