package statsdexporter

import (
	"strings"
)

// Tags represents an ordered list of tags. Tags can be of two forms:
// 1. "key:value". "value" may contain colon(s) as well.
// 2. "tag". No colon.
// Order is preserved end to end: tags are rendered on the wire in the
// order they were supplied.
type Tags []string

// String returns a comma-separated string representation of the tags.
// This is exactly the statsd tag-section syntax, without the leading "|#".
func (tags Tags) String() string {
	return strings.Join(tags, ",")
}

// Concat returns a new Tags with the additional ones added
func (tags Tags) Concat(additional Tags) Tags {
	t := make(Tags, 0, len(tags)+len(additional))
	t = append(t, tags...)
	t = append(t, additional...)
	return t
}

// Copy returns a copy of the Tags
func (tags Tags) Copy() Tags {
	if tags == nil {
		return nil
	}
	tagCopy := make(Tags, len(tags))
	copy(tagCopy, tags)
	return tagCopy
}

// TagKey returns the key of a "key:value" tag, or "" for a bare tag.
func TagKey(tag string) string {
	if idx := strings.IndexByte(tag, ':'); idx >= 0 {
		return tag[:idx]
	}
	return ""
}

// TagValue returns the value of a "key:value" tag, or the whole tag when
// it carries no key.
func TagValue(tag string) string {
	if idx := strings.IndexByte(tag, ':'); idx >= 0 {
		return tag[idx+1:]
	}
	return tag
}

// FormatTag renders a key/value pair as a single tag.
func FormatTag(key, value string) string {
	return key + ":" + value
}
