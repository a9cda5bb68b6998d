package statsdexporter

// HistogramKind selects how a recorded histogram value is represented on
// the wire. Plain statsd only knows histograms; Datadog-flavoured agents
// additionally accept distributions (server-side aggregation) and timers.
type HistogramKind byte

const (
	// HistogramHistogram emits the value as a histogram ("h").
	HistogramHistogram HistogramKind = iota
	// HistogramDistribution emits the value as a distribution ("d").
	HistogramDistribution
	// HistogramTimer emits the value, converted from seconds to whole
	// milliseconds, as a timer ("ms").
	HistogramTimer
)

// HistogramHint is the reserved tag key used to select the histogram
// representation per metric. It is stripped before transmission and never
// reaches the wire.
const HistogramHint = "histogram"

func (h HistogramKind) String() string {
	switch h {
	case HistogramDistribution:
		return "distribution"
	case HistogramTimer:
		return "timer"
	}
	return "histogram"
}

// MetricType returns the wire-level metric type for the kind.
func (h HistogramKind) MetricType() MetricType {
	switch h {
	case HistogramDistribution:
		return DISTRIBUTION
	case HistogramTimer:
		return TIMER
	}
	return HISTOGRAM
}

// ParseHistogramKind maps a hint value to a HistogramKind. The match is
// case-sensitive and anything unrecognised, typos included, degrades to
// HistogramHistogram so a mislabeled metric is still a metric rather than
// a dropped event.
func ParseHistogramKind(s string) HistogramKind {
	switch s {
	case "timer":
		return HistogramTimer
	case "distribution":
		return HistogramDistribution
	}
	return HistogramHistogram
}

// SplitHistogramTags partitions tags by the reserved hint key. It returns
// the kind named by the first hint tag (ok reports whether any hint was
// present) and the remaining tags with their relative order intact. Any
// input is accepted; there are no error conditions.
func SplitHistogramTags(tags Tags) (HistogramKind, bool, Tags) {
	hint := -1
	for i, tag := range tags {
		if TagKey(tag) == HistogramHint {
			hint = i
			break
		}
	}
	if hint < 0 {
		// Hintless is the common path, keep it allocation free.
		return HistogramHistogram, false, tags
	}
	kind := ParseHistogramKind(TagValue(tags[hint]))
	rest := make(Tags, 0, len(tags)-1)
	for _, tag := range tags {
		if TagKey(tag) != HistogramHint {
			rest = append(rest, tag)
		}
	}
	return kind, true, rest
}
