package recorder

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	statsdexporter "github.com/github/metrics-exporter-statsd"
	"github.com/github/metrics-exporter-statsd/internal/fixtures"
)

// capturingTransport records every submission as its rendered wire line.
type capturingTransport struct {
	mu    sync.Mutex
	lines []string
	err   error // when set, Send fails with it
}

func (c *capturingTransport) Send(s *statsdexporter.Submission) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return c.err
	}
	c.lines = append(c.lines, s.String())
	return nil
}

func (c *capturingTransport) Run(ctx context.Context) {
	<-ctx.Done()
}

func (c *capturingTransport) sent() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, len(c.lines))
	copy(out, c.lines)
	return out
}

func newTestRecorder(t *testing.T, opts ...Option) (*Recorder, *capturingTransport) {
	transport := &capturingTransport{}
	opts = append(opts, WithTransport(transport))
	r, err := NewRecorder(fixtures.NewTestLogger(t), "127.0.0.1", 8125, opts...)
	require.NoError(t, err)
	return r, transport
}
