package statsdexporter

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
)

// MetricType is an enumeration of all the possible types of Metric.
type MetricType byte

const (
	_ = iota
	// COUNTER is statsd counter type
	COUNTER MetricType = iota
	// GAUGE is statsd gauge type
	GAUGE
	// HISTOGRAM is statsd histogram type
	HISTOGRAM
	// DISTRIBUTION is statsd distribution type
	DISTRIBUTION
	// TIMER is statsd timer type
	TIMER
)

func (m MetricType) String() string {
	switch m {
	case COUNTER:
		return "counter"
	case GAUGE:
		return "gauge"
	case HISTOGRAM:
		return "histogram"
	case DISTRIBUTION:
		return "distribution"
	case TIMER:
		return "timer"
	}
	return "unknown"
}

// Symbol returns the statsd wire symbol for the metric type.
func (m MetricType) Symbol() string {
	switch m {
	case COUNTER:
		return "c"
	case GAUGE:
		return "g"
	case HISTOGRAM:
		return "h"
	case DISTRIBUTION:
		return "d"
	case TIMER:
		return "ms"
	}
	return ""
}

// Submission is one fully resolved metric ready for the wire. It has no
// identity beyond the line it renders to, and is discarded after sending.
type Submission struct {
	Name  string     // The metric name, with any configured prefix already applied
	Value float64    // The numeric value of the metric
	Tags  Tags       // The tags for the metric, hint tag already stripped
	Type  MetricType // The type of metric
}

// AppendTo renders the submission as a single statsd line, without a
// trailing newline:
//
//	<name>:<value>|<type>[|#<k1>:<v1>,<k2>:<v2>,...]
//
// Counter values render as signed integers, timer values as unsigned
// integer milliseconds, everything else with standard decimal notation
// (integral values render without a decimal point).
func (s *Submission) AppendTo(buf *bytes.Buffer) {
	buf.WriteString(s.Name)
	buf.WriteByte(':')
	switch s.Type {
	case COUNTER:
		buf.WriteString(strconv.FormatInt(int64(s.Value), 10))
	case TIMER:
		buf.WriteString(strconv.FormatUint(uint64(s.Value), 10))
	default:
		buf.WriteString(strconv.FormatFloat(s.Value, 'f', -1, 64))
	}
	buf.WriteByte('|')
	buf.WriteString(s.Type.Symbol())
	if len(s.Tags) > 0 {
		buf.WriteString("|#")
		buf.WriteString(s.Tags.String())
	}
}

func (s *Submission) String() string {
	buf := bytes.Buffer{}
	s.AppendTo(&buf)
	return buf.String()
}

// ValidateMetricName rejects names which would corrupt the line protocol.
// The separator bytes are reserved by the wire format itself, and a newline
// would smuggle a second line into the datagram.
func ValidateMetricName(name string) error {
	if name == "" {
		return fmt.Errorf("empty metric name")
	}
	if strings.ContainsAny(name, ":|\n") {
		return fmt.Errorf("metric name %q contains a protocol separator", name)
	}
	return nil
}
