package image

import "sync"

// Pool recycles rasters of identical geometry and format.
//
// Two-pass resizes need an intermediate raster whose size depends only on
// the request, so batch workloads keep asking for the same few shapes. Pool
// keeps up to maxSize released buffers per shape.
//
// Thread safety: all methods are safe for concurrent use.
type Pool struct {
	mu      sync.Mutex
	buckets map[poolKey][]*ImageBuf
	maxSize int // max buffers per bucket, <= 0 means unlimited

	hits   int
	misses int
}

type poolKey struct {
	width  int
	height int
	format Format
}

// NewPool creates a pool retaining at most maxPerBucket buffers per shape.
func NewPool(maxPerBucket int) *Pool {
	return &Pool{
		buckets: make(map[poolKey][]*ImageBuf),
		maxSize: maxPerBucket,
	}
}

// Get returns a zeroed raster of the requested shape, reusing a released one
// when available. Returns nil if the shape is invalid.
func (p *Pool) Get(width, height int, format Format) *ImageBuf {
	key := poolKey{width: width, height: height, format: format}

	p.mu.Lock()
	if bucket := p.buckets[key]; len(bucket) > 0 {
		buf := bucket[len(bucket)-1]
		bucket[len(bucket)-1] = nil
		p.buckets[key] = bucket[:len(bucket)-1]
		p.hits++
		p.mu.Unlock()

		buf.Clear()
		return buf
	}
	p.misses++
	p.mu.Unlock()

	buf, err := NewImageBuf(width, height, format)
	if err != nil {
		return nil
	}
	return buf
}

// Put hands a raster back to the pool, which then owns it. Padded buffers
// and most sub-image views are recognised and ignored, as are nil and
// buffers whose bucket is full.
func (p *Pool) Put(buf *ImageBuf) {
	if buf == nil || buf.stride != buf.format.RowBytes(buf.width) {
		return
	}
	size := buf.format.ImageBytes(buf.width, buf.height)
	if len(buf.data) != size || cap(buf.data) != size {
		return
	}

	key := poolKey{width: buf.width, height: buf.height, format: buf.format}

	p.mu.Lock()
	defer p.mu.Unlock()

	bucket := p.buckets[key]
	if p.maxSize > 0 && len(bucket) >= p.maxSize {
		return
	}
	p.buckets[key] = append(bucket, buf)
}

// Stats returns how many Get calls were served from the pool (hits) and
// how many allocated a new raster (misses).
func (p *Pool) Stats() (hits, misses int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.hits, p.misses
}

// defaultPool backs Resize calls that do not supply their own pool.
var defaultPool = NewPool(8)

// DefaultPool returns the package-level pool.
func DefaultPool() *Pool {
	return defaultPool
}
