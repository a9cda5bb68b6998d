// Package recorder translates instrumentation events (counter increments,
// gauge sets, histogram records) into statsd submissions and hands them to
// a transport. The recorder itself is stateless per event: the remote agent
// owns all aggregation, so every call maps to at most one wire line.
package recorder

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	statsdexporter "github.com/github/metrics-exporter-statsd"
	"github.com/github/metrics-exporter-statsd/pkg/transport"
)

// ErrEmptyHost indicates that the caller supplied an empty host name.
var ErrEmptyHost = errors.New("host name must not be empty")

// ErrZeroPort indicates the caller specified port 0. Elsewhere in UDP
// programming that means "pick a port for me"; as a remote port it can only
// be a misconfiguration, so it is rejected.
var ErrZeroPort = errors.New("port must be nonzero")

// Counter is a delta-only counter. The statsd protocol has no notion of
// setting a counter to an absolute value.
type Counter interface {
	// Increment emits the delta. The wire format carries a signed
	// integer, so deltas beyond the int64 range are narrowed.
	Increment(delta uint64)
	// Absolute is accepted and dropped: absolute counter values cannot
	// be expressed in statsd.
	Absolute(value uint64)
}

// Gauge is a set-only gauge. The remote agent owns the gauge's current
// value, so relative adjustments cannot be emitted without racing.
type Gauge interface {
	Set(value float64)
	// Increment is accepted and dropped, see Gauge.
	Increment(delta float64)
	// Decrement is accepted and dropped, see Gauge.
	Decrement(delta float64)
}

// Histogram records observed values. The wire representation (histogram,
// distribution or timer) is resolved from the reserved "histogram" tag at
// registration, falling back to the recorder's configured default.
type Histogram interface {
	Record(value float64)
}

// Recorder maps metric events onto statsd submissions. All configuration
// is immutable after construction, so a single Recorder and its handles may
// be used from any number of goroutines without locking; only the transport
// synchronizes.
type Recorder struct {
	logger           logrus.FieldLogger
	transport        transport.Transport
	prefix           string
	defaultTags      statsdexporter.Tags
	defaultHistogram statsdexporter.HistogramKind
	unsupported      UnsupportedPolicy
}

type options struct {
	localAddress     string
	bufferSize       int
	queueCapacity    int
	flushInterval    time.Duration
	prefix           string
	defaultTags      statsdexporter.Tags
	defaultHistogram statsdexporter.HistogramKind
	unsupported      UnsupportedPolicy
	transport        transport.Transport
}

// Option customizes a Recorder under construction.
type Option func(*options)

// WithLocalAddress sets the address the UDP socket binds to, 0.0.0.0 by
// default. Binding 127.0.0.1 is known to be blackholed by some container
// network setups.
func WithLocalAddress(addr string) Option {
	return func(o *options) { o.localAddress = addr }
}

// WithBufferSize sets how many bytes are packed into a datagram before it
// is flushed to the socket.
func WithBufferSize(bytes int) Option {
	return func(o *options) { o.bufferSize = bytes }
}

// WithQueueCapacity bounds the submission queue. Once full, further
// submissions are dropped rather than buffered without limit.
func WithQueueCapacity(capacity int) Option {
	return func(o *options) { o.queueCapacity = capacity }
}

// WithFlushInterval sets how long a partially filled datagram may wait
// before being flushed.
func WithFlushInterval(d time.Duration) Option {
	return func(o *options) { o.flushInterval = d }
}

// WithPrefix prepends prefix, joined with ".", to every metric name.
func WithPrefix(prefix string) Option {
	return func(o *options) { o.prefix = prefix }
}

// WithDefaultTags attaches the given tags to every submission, ahead of
// per-metric tags.
func WithDefaultTags(tags statsdexporter.Tags) Option {
	return func(o *options) { o.defaultTags = tags.Copy() }
}

// WithDefaultHistogram sets the representation used for histograms which
// carry no per-metric hint tag.
func WithDefaultHistogram(kind statsdexporter.HistogramKind) Option {
	return func(o *options) { o.defaultHistogram = kind }
}

// WithUnsupportedPolicy selects what happens when an operation the
// protocol cannot express is invoked. The default is to silently ignore
// it, matching the fire-and-forget instrumentation contract.
func WithUnsupportedPolicy(p UnsupportedPolicy) Option {
	return func(o *options) { o.unsupported = p }
}

// WithTransport injects a custom transport. No socket is created; host and
// port are still validated so configuration errors surface identically.
func WithTransport(t transport.Transport) Option {
	return func(o *options) { o.transport = t }
}

// NewRecorder validates the configuration and builds a Recorder with a UDP
// transport delivering to host:port. Validation happens before any socket
// is touched; on error no partial state is left behind.
func NewRecorder(logger logrus.FieldLogger, host string, port uint16, opts ...Option) (*Recorder, error) {
	if strings.TrimSpace(host) == "" {
		return nil, ErrEmptyHost
	}
	if port == 0 {
		return nil, ErrZeroPort
	}
	o := options{
		localAddress:  transport.DefaultLocalAddress,
		bufferSize:    transport.DefaultBufferSize,
		queueCapacity: transport.DefaultQueueCapacity,
		flushInterval: transport.DefaultFlushInterval,
	}
	for _, opt := range opts {
		opt(&o)
	}
	t := o.transport
	if t == nil {
		var err error
		t, err = transport.NewUDP(logger, host, port, o.localAddress, o.bufferSize, o.queueCapacity, o.flushInterval)
		if err != nil {
			return nil, err
		}
	}
	return &Recorder{
		logger:           logger,
		transport:        t,
		prefix:           o.prefix,
		defaultTags:      o.defaultTags,
		defaultHistogram: o.defaultHistogram,
		unsupported:      o.unsupported,
	}, nil
}

// Run runs the underlying transport until ctx is canceled. It must be
// started for metrics to reach the network.
func (r *Recorder) Run(ctx context.Context) {
	r.transport.Run(ctx)
}

// NewCounter registers a counter. Registration is cheap and emits nothing.
func (r *Recorder) NewCounter(name string, tags statsdexporter.Tags) Counter {
	return &counterHandle{handle: r.newHandle(name, tags)}
}

// NewGauge registers a gauge. Registration is cheap and emits nothing.
func (r *Recorder) NewGauge(name string, tags statsdexporter.Tags) Gauge {
	return &gaugeHandle{handle: r.newHandle(name, tags)}
}

// NewHistogram registers a histogram. The hint tag, if present, selects
// the wire representation and is stripped from the emitted tags.
func (r *Recorder) NewHistogram(name string, tags statsdexporter.Tags) Histogram {
	kind, ok, rest := statsdexporter.SplitHistogramTags(tags)
	if !ok {
		kind = r.defaultHistogram
	}
	return &histogramHandle{handle: r.newHandle(name, rest), kind: kind}
}

// DescribeCounter is accepted and ignored; statsd has no metadata facility.
func (r *Recorder) DescribeCounter(name, unit, description string) {}

// DescribeGauge is accepted and ignored; statsd has no metadata facility.
func (r *Recorder) DescribeGauge(name, unit, description string) {}

// DescribeHistogram is accepted and ignored; statsd has no metadata facility.
func (r *Recorder) DescribeHistogram(name, unit, description string) {}

func (r *Recorder) newHandle(name string, tags statsdexporter.Tags) handle {
	// The hint tag is a control channel, it never reaches the wire even
	// on metric types it has no meaning for.
	_, _, tags = statsdexporter.SplitHistogramTags(tags)
	if r.prefix != "" {
		name = r.prefix + "." + name
	}
	return handle{
		recorder: r,
		name:     name,
		nameErr:  statsdexporter.ValidateMetricName(name),
		tags:     r.defaultTags.Concat(tags),
	}
}

// handle is a single registered metric identity. It carries no mutable
// state; each event reads the captured name/tags and hands one submission
// to the transport.
type handle struct {
	recorder *Recorder
	name     string
	nameErr  error
	tags     statsdexporter.Tags
}

type counterHandle struct {
	handle
}

var _ Counter = (*counterHandle)(nil)

func (h *counterHandle) Increment(delta uint64) {
	// The wire carries a signed integer, narrowing is unavoidable.
	h.submit(statsdexporter.COUNTER, float64(int64(delta)))
}

func (h *counterHandle) Absolute(value uint64) {
	h.recorder.unsupportedOperation("counter.Absolute")
}

type gaugeHandle struct {
	handle
}

var _ Gauge = (*gaugeHandle)(nil)

func (h *gaugeHandle) Set(value float64) {
	h.submit(statsdexporter.GAUGE, value)
}

func (h *gaugeHandle) Increment(delta float64) {
	h.recorder.unsupportedOperation("gauge.Increment")
}

func (h *gaugeHandle) Decrement(delta float64) {
	h.recorder.unsupportedOperation("gauge.Decrement")
}

type histogramHandle struct {
	handle
	kind statsdexporter.HistogramKind
}

var _ Histogram = (*histogramHandle)(nil)

func (h *histogramHandle) Record(value float64) {
	if h.kind == statsdexporter.HistogramTimer {
		// Values are reported in seconds, timers are whole
		// milliseconds. Sub-millisecond precision is lost, and
		// negative durations clamp to zero.
		if value < 0 {
			value = 0
		}
		h.submit(statsdexporter.TIMER, float64(uint64(value*1000)))
		return
	}
	h.submit(h.kind.MetricType(), value)
}

func (h *handle) submit(mtype statsdexporter.MetricType, value float64) {
	if h.nameErr != nil {
		h.recorder.logger.WithError(h.nameErr).Debug("Dropping metric with unencodable name")
		return
	}
	s := &statsdexporter.Submission{
		Name:  h.name,
		Value: value,
		Tags:  h.tags,
		Type:  mtype,
	}
	if err := h.recorder.transport.Send(s); err != nil {
		// The instrumentation path is fire-and-forget, the log is the
		// only side channel.
		h.recorder.logger.WithError(err).WithField("metric", h.name).Debug("Failed to submit metric")
	}
}
