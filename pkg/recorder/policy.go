package recorder

import (
	"fmt"
)

// UnsupportedPolicy controls what happens when an instrumentation call has
// no statsd representation (counter.Absolute, gauge.Increment and
// gauge.Decrement). Silent dropping is the historical behavior and the
// default, but it is silent data loss, so callers may opt into logging or
// aborting instead.
type UnsupportedPolicy byte

const (
	// UnsupportedIgnore silently drops unsupported operations.
	UnsupportedIgnore UnsupportedPolicy = iota
	// UnsupportedLog drops unsupported operations with a warning log.
	UnsupportedLog
	// UnsupportedAbort panics on unsupported operations. This is the
	// strict mode: caller misuse becomes fatal instead of invisible.
	UnsupportedAbort
)

func (p UnsupportedPolicy) String() string {
	switch p {
	case UnsupportedLog:
		return "log"
	case UnsupportedAbort:
		return "abort"
	}
	return "ignore"
}

// ParseUnsupportedPolicy parses a policy name. Unlike histogram hints this
// is configuration, not per-event data, so an unknown name is an error.
func ParseUnsupportedPolicy(s string) (UnsupportedPolicy, error) {
	switch s {
	case "ignore":
		return UnsupportedIgnore, nil
	case "log":
		return UnsupportedLog, nil
	case "abort":
		return UnsupportedAbort, nil
	}
	return UnsupportedIgnore, fmt.Errorf("unknown unsupported-operation policy %q", s)
}

func (r *Recorder) unsupportedOperation(op string) {
	switch r.unsupported {
	case UnsupportedLog:
		r.logger.WithField("operation", op).Warn("Operation has no statsd representation, dropping")
	case UnsupportedAbort:
		panic(fmt.Sprintf("statsd recorder: operation %s has no statsd representation", op))
	}
}
