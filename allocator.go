package jsonvalue

import "sync"

// Allocator renders the pluggable malloc/free pair of original_source's
// JsonContext as a Go interface: the string decoder (stringdecoder.go) and
// Value.Clone call Get to obtain a buffer with capacity of at least n
// bytes, and Value.Release calls Put to return one that is no longer
// needed. Implementations must be safe for
// concurrent use only if the caller parses concurrently with a single
// shared Allocator; Parse itself does not share one across goroutines.
type Allocator interface {
	Get(n int) []byte
	Put(buf []byte)
}

// DefaultAllocator pools buffers by size class using sync.Pool, grounded
// on cybergodev-json's buffer-pool constants (config.go, constants.go) —
// the teacher repo has no allocator of its own, so this concern is learned
// from the rest of the retrieval pack rather than dropped to a bare
// make([]byte, n) on every call.
type DefaultAllocator struct {
	pools [poolClassCount]*sync.Pool
}

const (
	minPoolBufferSize = 64
	maxPoolBufferSize = 64 * 1024
	poolClassCount    = 11 // 64, 128, 256, ... 64Ki
)

// NewDefaultAllocator returns an Allocator backed by a small set of
// power-of-two sync.Pools.
func NewDefaultAllocator() *DefaultAllocator {
	a := &DefaultAllocator{}
	for i := range a.pools {
		size := classSize(i)
		a.pools[i] = &sync.Pool{New: func() interface{} {
			buf := make([]byte, size)
			return &buf
		}}
	}
	return a
}

func classSize(class int) int {
	return minPoolBufferSize << class
}

func classFor(n int) int {
	class := 0
	for size := minPoolBufferSize; size < n && class < poolClassCount-1; size <<= 1 {
		class++
	}
	return class
}

func (a *DefaultAllocator) Get(n int) []byte {
	if n > maxPoolBufferSize {
		return make([]byte, 0, n)
	}
	class := classFor(n)
	bufp := a.pools[class].Get().(*[]byte)
	return (*bufp)[:0]
}

func (a *DefaultAllocator) Put(buf []byte) {
	c := cap(buf)
	if c < minPoolBufferSize || c > maxPoolBufferSize {
		return
	}
	class := classFor(c)
	if classSize(class) != c {
		return
	}
	buf = buf[:0]
	a.pools[class].Put(&buf)
}

var defaultAllocator = NewDefaultAllocator()
