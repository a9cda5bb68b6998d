// Package pool provides free-lists for the allocation-heavy parts of the
// submission path.
package pool

import (
	"bytes"
	"sync"
)

// BytesBuffer is a strongly typed wrapper around a sync.Pool for *bytes.Buffer.
// The transport renders every submission into a pooled buffer, so the steady
// state of a busy process recycles a handful of datagram-sized buffers
// instead of allocating per metric.
type BytesBuffer struct {
	p sync.Pool
}

func NewBytesBuffer(preallocate int) *BytesBuffer {
	return &BytesBuffer{
		p: sync.Pool{
			New: func() interface{} {
				buf := &bytes.Buffer{}
				buf.Grow(preallocate)
				return buf
			},
		},
	}
}

// Get returns an empty buffer, reusing a previously returned one if possible.
func (p *BytesBuffer) Get() *bytes.Buffer {
	buffer := p.p.Get().(*bytes.Buffer)
	buffer.Reset()
	return buffer
}

func (p *BytesBuffer) Put(b *bytes.Buffer) {
	p.p.Put(b)
}
