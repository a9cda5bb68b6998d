package transport

import (
	"bytes"
	"context"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/tilinna/clock"

	statsdexporter "github.com/github/metrics-exporter-statsd"
	"github.com/github/metrics-exporter-statsd/pkg/pool"
)

const (
	// DefaultBufferSize is the number of bytes buffered in a datagram
	// before it is flushed to the socket.
	DefaultBufferSize = 256
	// DefaultQueueCapacity is the number of submissions allowed to queue
	// before Send starts reporting ErrQueueFull.
	DefaultQueueCapacity = 5000
	// DefaultLocalAddress is the local address the UDP socket binds to.
	// Note that 127.0.0.1 is a poor choice here as orchestrated
	// environments like kubernetes may blackhole traffic routed to it.
	DefaultLocalAddress = "0.0.0.0"
	// DefaultFlushInterval is how long a partially filled datagram may
	// sit before it is flushed anyway.
	DefaultFlushInterval = 100 * time.Millisecond
)

// UDP is a Transport which renders each submission to a line, packs whole
// lines into datagrams of at most the configured buffer size, and writes
// them to a remote agent. Admission is a bounded queue: when the network
// writer falls behind, Send drops with ErrQueueFull instead of blocking
// the instrumentation path.
type UDP struct {
	logger        logrus.FieldLogger
	conn          net.PacketConn
	remote        net.Addr
	bufferSize    int
	flushInterval time.Duration
	queue         chan *bytes.Buffer
	buffers       *pool.BytesBuffer
}

// NewUDP binds a local UDP socket on an ephemeral port and returns a
// transport delivering to host:port. Construction fails only on socket
// bind or address resolution failure; the first datagram is not sent until
// Run is started.
func NewUDP(
	logger logrus.FieldLogger,
	host string,
	port uint16,
	localAddress string,
	bufferSize int,
	queueCapacity int,
	flushInterval time.Duration,
) (*UDP, error) {
	remote, err := net.ResolveUDPAddr("udp", net.JoinHostPort(host, strconv.Itoa(int(port))))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s:%d: %w", host, port, err)
	}
	conn, err := net.ListenPacket("udp", net.JoinHostPort(localAddress, "0"))
	if err != nil {
		return nil, fmt.Errorf("failed to bind local socket on %s: %w", localAddress, err)
	}
	return NewUDPWithConn(logger, conn, remote, bufferSize, queueCapacity, flushInterval), nil
}

// NewUDPWithConn builds a UDP transport over an existing PacketConn. The
// transport takes ownership of the conn and closes it when Run returns.
func NewUDPWithConn(
	logger logrus.FieldLogger,
	conn net.PacketConn,
	remote net.Addr,
	bufferSize int,
	queueCapacity int,
	flushInterval time.Duration,
) *UDP {
	if bufferSize <= 0 {
		bufferSize = DefaultBufferSize
	}
	if queueCapacity <= 0 {
		queueCapacity = DefaultQueueCapacity
	}
	if flushInterval <= 0 {
		flushInterval = DefaultFlushInterval
	}
	return &UDP{
		logger:        logger,
		conn:          conn,
		remote:        remote,
		bufferSize:    bufferSize,
		flushInterval: flushInterval,
		queue:         make(chan *bytes.Buffer, queueCapacity),
		buffers:       pool.NewBytesBuffer(bufferSize),
	}
}

// Send renders the submission and enqueues it for delivery. Never blocks:
// a full queue surfaces as ErrQueueFull and the submission is dropped.
func (t *UDP) Send(s *statsdexporter.Submission) error {
	line := t.buffers.Get()
	s.AppendTo(line)
	select {
	case t.queue <- line:
		return nil
	default:
		t.buffers.Put(line)
		return ErrQueueFull
	}
}

// Run drains the queue, packing lines into datagrams, until ctx is
// canceled. A partially filled datagram is flushed on an interval so
// metrics are not held hostage by a quiet period. Closes the socket on
// the way out.
func (t *UDP) Run(ctx context.Context) {
	defer func() {
		if err := t.conn.Close(); err != nil {
			t.logger.WithError(err).Warn("Failed to close socket")
		}
	}()
	ticker := clock.NewTicker(ctx, t.flushInterval)
	defer ticker.Stop()

	wire := &bytes.Buffer{}
	wire.Grow(t.bufferSize)
	for {
		select {
		case <-ctx.Done():
			t.drain(wire)
			return
		case line := <-t.queue:
			// Lines are never split across datagrams. If this line
			// won't fit next to what's buffered, flush first.
			if wire.Len() > 0 && wire.Len()+1+line.Len() > t.bufferSize {
				t.flush(wire)
			}
			if wire.Len() > 0 {
				wire.WriteByte('\n')
			}
			wire.Write(line.Bytes())
			t.buffers.Put(line)
			if wire.Len() >= t.bufferSize {
				t.flush(wire)
			}
		case <-ticker.C:
			t.flush(wire)
		}
	}
}

// drain empties whatever is already queued and flushes, best effort, on
// shutdown. New Sends racing with shutdown may still be dropped.
func (t *UDP) drain(wire *bytes.Buffer) {
	for {
		select {
		case line := <-t.queue:
			if wire.Len() > 0 && wire.Len()+1+line.Len() > t.bufferSize {
				t.flush(wire)
			}
			if wire.Len() > 0 {
				wire.WriteByte('\n')
			}
			wire.Write(line.Bytes())
			t.buffers.Put(line)
		default:
			t.flush(wire)
			return
		}
	}
}

func (t *UDP) flush(wire *bytes.Buffer) {
	if wire.Len() == 0 {
		return
	}
	if _, err := t.conn.WriteTo(wire.Bytes(), t.remote); err != nil {
		t.logger.WithError(err).Warn("Failed to write datagram")
	}
	wire.Reset()
}
