package statsdexporter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHistogramKind(t *testing.T) {
	t.Parallel()
	assert.Equal(t, HistogramTimer, ParseHistogramKind("timer"))
	assert.Equal(t, HistogramDistribution, ParseHistogramKind("distribution"))
	// Anything unrecognised degrades to a histogram, a typo still
	// produces a metric.
	assert.Equal(t, HistogramHistogram, ParseHistogramKind("histogram"))
	assert.Equal(t, HistogramHistogram, ParseHistogramKind("distrubution"))
	assert.Equal(t, HistogramHistogram, ParseHistogramKind(""))
	// The match is case-sensitive.
	assert.Equal(t, HistogramHistogram, ParseHistogramKind("Timer"))
}

func TestHistogramKindMetricType(t *testing.T) {
	t.Parallel()
	assert.Equal(t, HISTOGRAM, HistogramHistogram.MetricType())
	assert.Equal(t, DISTRIBUTION, HistogramDistribution.MetricType())
	assert.Equal(t, TIMER, HistogramTimer.MetricType())
}

func TestSplitHistogramTagsNoHint(t *testing.T) {
	t.Parallel()
	tags := Tags{"t1:v1", "t2:v2"}
	_, ok, rest := SplitHistogramTags(tags)
	require.False(t, ok)
	assert.Equal(t, tags, rest)

	_, ok, rest = SplitHistogramTags(nil)
	require.False(t, ok)
	assert.Nil(t, rest)
}

func TestSplitHistogramTagsHint(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		tags Tags
		kind HistogramKind
		rest Tags
	}{
		{
			name: "timer",
			tags: Tags{"t1:v1", "histogram:timer", "t2:v2"},
			kind: HistogramTimer,
			rest: Tags{"t1:v1", "t2:v2"},
		},
		{
			name: "distribution",
			tags: Tags{"histogram:distribution"},
			kind: HistogramDistribution,
			rest: Tags{},
		},
		{
			name: "explicit histogram",
			tags: Tags{"histogram:histogram", "t1:v1"},
			kind: HistogramHistogram,
			rest: Tags{"t1:v1"},
		},
		{
			name: "typo degrades to histogram",
			tags: Tags{"histogram:distrubution", "t1:v1"},
			kind: HistogramHistogram,
			rest: Tags{"t1:v1"},
		},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			kind, ok, rest := SplitHistogramTags(tc.tags)
			require.True(t, ok)
			assert.Equal(t, tc.kind, kind)
			assert.Equal(t, tc.rest, rest)
			for _, tag := range rest {
				assert.NotEqual(t, HistogramHint, TagKey(tag))
			}
		})
	}
}

func TestSplitHistogramTagsFirstHintWins(t *testing.T) {
	t.Parallel()
	kind, ok, rest := SplitHistogramTags(Tags{"histogram:timer", "t1:v1", "histogram:distribution"})
	require.True(t, ok)
	assert.Equal(t, HistogramTimer, kind)
	assert.Equal(t, Tags{"t1:v1"}, rest)
}

func TestSplitHistogramTagsBareHintTagIsNotAHint(t *testing.T) {
	t.Parallel()
	// A bare "histogram" tag has no key, only "histogram:<value>"
	// engages the control channel.
	tags := Tags{"histogram"}
	_, ok, rest := SplitHistogramTags(tags)
	require.False(t, ok)
	assert.Equal(t, tags, rest)
}

func TestSplitHistogramTagsDoesNotMutateInput(t *testing.T) {
	t.Parallel()
	tags := Tags{"t1:v1", "histogram:timer", "t2:v2"}
	_, _, _ = SplitHistogramTags(tags)
	assert.Equal(t, Tags{"t1:v1", "histogram:timer", "t2:v2"}, tags)
}
