package recorder

import (
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	statsdexporter "github.com/github/metrics-exporter-statsd"
	"github.com/github/metrics-exporter-statsd/internal/fixtures"
)

func TestAddFlags(t *testing.T) {
	t.Parallel()
	require.NotPanics(t, func() {
		fs := &pflag.FlagSet{}
		AddFlags(fs)
	})
}

func TestNewRecorderFromViperDefaults(t *testing.T) {
	t.Parallel()
	v := viper.New()
	r, err := NewRecorderFromViper(v, fixtures.NewTestLogger(t))
	require.NoError(t, err)
	assert.Equal(t, "", r.prefix)
	assert.Empty(t, r.defaultTags)
	assert.Equal(t, statsdexporter.HistogramHistogram, r.defaultHistogram)
	assert.Equal(t, UnsupportedIgnore, r.unsupported)
	require.NotNil(t, r.transport)
}

func TestNewRecorderFromViper(t *testing.T) {
	t.Parallel()
	v := viper.New()
	v.Set(ParamHost, "127.0.0.1")
	v.Set(ParamPort, 8126)
	v.Set(ParamBufferSize, 1024)
	v.Set(ParamQueueCapacity, 10)
	v.Set(ParamFlushInterval, 50*time.Millisecond)
	v.Set(ParamPrefix, "app")
	v.Set(ParamDefaultTags, []string{"app_name:test", "cluster:magenta"})
	v.Set(ParamDefaultHistogram, "distribution")
	v.Set(ParamUnsupportedPolicy, "log")

	r, err := NewRecorderFromViper(v, fixtures.NewTestLogger(t))
	require.NoError(t, err)
	assert.Equal(t, "app", r.prefix)
	assert.Equal(t, statsdexporter.Tags{"app_name:test", "cluster:magenta"}, r.defaultTags)
	assert.Equal(t, statsdexporter.HistogramDistribution, r.defaultHistogram)
	assert.Equal(t, UnsupportedLog, r.unsupported)
}

func TestNewRecorderFromViperUnknownHistogramDegrades(t *testing.T) {
	t.Parallel()
	v := viper.New()
	v.Set(ParamDefaultHistogram, "distrubution")
	r, err := NewRecorderFromViper(v, fixtures.NewTestLogger(t))
	require.NoError(t, err)
	assert.Equal(t, statsdexporter.HistogramHistogram, r.defaultHistogram)
}

func TestNewRecorderFromViperInvalid(t *testing.T) {
	t.Parallel()

	v := viper.New()
	v.Set(ParamHost, "")
	_, err := NewRecorderFromViper(v, fixtures.NewTestLogger(t))
	require.ErrorIs(t, err, ErrEmptyHost)

	v = viper.New()
	v.Set(ParamPort, 0)
	_, err = NewRecorderFromViper(v, fixtures.NewTestLogger(t))
	require.ErrorIs(t, err, ErrZeroPort)

	v = viper.New()
	v.Set(ParamPort, 65536)
	_, err = NewRecorderFromViper(v, fixtures.NewTestLogger(t))
	require.Error(t, err)

	v = viper.New()
	v.Set(ParamUnsupportedPolicy, "explode")
	_, err = NewRecorderFromViper(v, fixtures.NewTestLogger(t))
	require.Error(t, err)
}
