package statsdexporter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTagsString(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "", Tags{}.String())
	assert.Equal(t, "t1:v1", Tags{"t1:v1"}.String())
	assert.Equal(t, "t1:v1,t2:v2", Tags{"t1:v1", "t2:v2"}.String())
}

func TestTagsConcatPreservesOrder(t *testing.T) {
	t.Parallel()
	defaults := Tags{"app:test"}
	merged := defaults.Concat(Tags{"t1:v1", "t2:v2"})
	assert.Equal(t, Tags{"app:test", "t1:v1", "t2:v2"}, merged)
	// The receiver must not be mutated.
	assert.Equal(t, Tags{"app:test"}, defaults)
}

func TestTagsCopy(t *testing.T) {
	t.Parallel()
	assert.Nil(t, Tags(nil).Copy())
	orig := Tags{"t1:v1"}
	cp := orig.Copy()
	cp[0] = "t1:changed"
	assert.Equal(t, Tags{"t1:v1"}, orig)
}

func TestTagKeyValue(t *testing.T) {
	t.Parallel()
	tests := []struct {
		tag   string
		key   string
		value string
	}{
		{"t1:v1", "t1", "v1"},
		{"t1:v1:extra", "t1", "v1:extra"},
		{"bare", "", "bare"},
		{":v", "", "v"},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.key, TagKey(tc.tag), tc.tag)
		assert.Equal(t, tc.value, TagValue(tc.tag), tc.tag)
	}
}

func TestFormatTag(t *testing.T) {
	t.Parallel()
	tag := FormatTag("app", "test")
	require.Equal(t, "app:test", tag)
	require.Equal(t, "app", TagKey(tag))
	require.Equal(t, "test", TagValue(tag))
}
