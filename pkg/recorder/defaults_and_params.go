package recorder

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	statsdexporter "github.com/github/metrics-exporter-statsd"
	"github.com/github/metrics-exporter-statsd/internal/util"
	"github.com/github/metrics-exporter-statsd/pkg/transport"
)

const (
	// DefaultHost is the default statsd agent host.
	DefaultHost = "127.0.0.1"
	// DefaultPort is the default statsd agent port.
	DefaultPort = 8125
	// DefaultLocalAddress is the default local bind address.
	DefaultLocalAddress = transport.DefaultLocalAddress
	// DefaultBufferSize is the default datagram buffer size in bytes.
	DefaultBufferSize = transport.DefaultBufferSize
	// DefaultQueueCapacity is the default bound of the submission queue.
	DefaultQueueCapacity = transport.DefaultQueueCapacity
	// DefaultFlushInterval is the default flush interval for partially
	// filled datagrams.
	DefaultFlushInterval = transport.DefaultFlushInterval
	// DefaultPrefix is the default metric name prefix (none).
	DefaultPrefix = ""
	// DefaultHistogram is the default histogram representation.
	DefaultHistogram = "histogram"
	// DefaultUnsupportedPolicy is the default behavior for operations
	// with no statsd representation.
	DefaultUnsupportedPolicy = "ignore"
)

// DefaultTags is the default list of tags applied to every submission.
var DefaultTags = statsdexporter.Tags{}

const (
	// ParamHost is the name of the parameter with the statsd agent host.
	ParamHost = "host"
	// ParamPort is the name of the parameter with the statsd agent port.
	ParamPort = "port"
	// ParamLocalAddress is the name of the parameter with the local bind address.
	ParamLocalAddress = "local-address"
	// ParamBufferSize is the name of the parameter with the datagram buffer size in bytes.
	ParamBufferSize = "buffer-size"
	// ParamQueueCapacity is the name of the parameter with the submission queue bound.
	ParamQueueCapacity = "queue-capacity"
	// ParamFlushInterval is the name of the parameter with the datagram flush interval.
	ParamFlushInterval = "flush-interval"
	// ParamPrefix is the name of the parameter with the metric name prefix.
	ParamPrefix = "prefix"
	// ParamDefaultTags is the name of the parameter with tags applied to every submission.
	ParamDefaultTags = "default-tags"
	// ParamDefaultHistogram is the name of the parameter with the default histogram representation.
	ParamDefaultHistogram = "default-histogram"
	// ParamUnsupportedPolicy is the name of the parameter with the unsupported-operation policy.
	ParamUnsupportedPolicy = "unsupported-policy"
)

// AddFlags adds the recorder's flags to the specified FlagSet.
func AddFlags(fs *pflag.FlagSet) {
	fs.String(ParamHost, DefaultHost, "Statsd agent host")
	fs.Uint16(ParamPort, DefaultPort, "Statsd agent port")
	fs.String(ParamLocalAddress, DefaultLocalAddress, "Local address to bind the UDP socket to")
	fs.Int(ParamBufferSize, DefaultBufferSize, "Bytes buffered into a datagram before flushing")
	fs.Int(ParamQueueCapacity, DefaultQueueCapacity, "Maximum number of queued submissions before dropping")
	fs.Duration(ParamFlushInterval, DefaultFlushInterval, "How long a partial datagram may wait before flushing")
	fs.String(ParamPrefix, DefaultPrefix, "Prefix prepended to every metric name")
	fs.StringSlice(ParamDefaultTags, []string(DefaultTags), "Tags applied to every submission")
	fs.String(ParamDefaultHistogram, DefaultHistogram, "Default histogram representation (histogram, distribution or timer)")
	fs.String(ParamUnsupportedPolicy, DefaultUnsupportedPolicy, "What to do with operations statsd cannot express (ignore, log or abort)")
}

// NewRecorderFromViper builds a Recorder from the supplied viper instance.
// Every parameter may also be supplied through the environment, prefixed
// with util.EnvPrefix.
func NewRecorderFromViper(v *viper.Viper, logger logrus.FieldLogger) (*Recorder, error) {
	util.InitViper(v)
	v.SetDefault(ParamHost, DefaultHost)
	v.SetDefault(ParamPort, DefaultPort)
	v.SetDefault(ParamLocalAddress, DefaultLocalAddress)
	v.SetDefault(ParamBufferSize, DefaultBufferSize)
	v.SetDefault(ParamQueueCapacity, DefaultQueueCapacity)
	v.SetDefault(ParamFlushInterval, DefaultFlushInterval)
	v.SetDefault(ParamPrefix, DefaultPrefix)
	v.SetDefault(ParamDefaultTags, []string(DefaultTags))
	v.SetDefault(ParamDefaultHistogram, DefaultHistogram)
	v.SetDefault(ParamUnsupportedPolicy, DefaultUnsupportedPolicy)

	port := v.GetInt(ParamPort)
	if port < 0 || port > 65535 {
		return nil, fmt.Errorf("port %d is out of range", port)
	}
	policy, err := ParseUnsupportedPolicy(v.GetString(ParamUnsupportedPolicy))
	if err != nil {
		return nil, err
	}
	return NewRecorder(
		logger,
		v.GetString(ParamHost),
		uint16(port),
		WithLocalAddress(v.GetString(ParamLocalAddress)),
		WithBufferSize(v.GetInt(ParamBufferSize)),
		WithQueueCapacity(v.GetInt(ParamQueueCapacity)),
		WithFlushInterval(v.GetDuration(ParamFlushInterval)),
		WithPrefix(v.GetString(ParamPrefix)),
		WithDefaultTags(statsdexporter.Tags(v.GetStringSlice(ParamDefaultTags))),
		WithDefaultHistogram(statsdexporter.ParseHistogramKind(v.GetString(ParamDefaultHistogram))),
		WithUnsupportedPolicy(policy),
	)
}
