package resample

import (
	"sync"

	"github.com/gogpu/resample/internal/filter"
)

// Option configures a Stretch, StretchAxis or Resize call.
//
// Example:
//
//	var host sync.Mutex
//	host.Lock()
//	_, err := resample.Stretch(dst, src, resample.Antialias,
//	    resample.WithLock(&host),
//	    resample.WithBufferLimit(64<<20))
//	host.Unlock()
type Option func(*options)

// options holds the resolved configuration of one call.
type options struct {
	lock        sync.Locker
	bufferLimit int64
	pool        *Pool
}

func defaultOptions() options {
	return options{
		bufferLimit: filter.DefaultArenaLimit,
	}
}

func applyOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

// WithLock hands the call a lock that the caller currently holds. The lock
// is released while coefficients are planned and pixels convolved, and
// locked again before the call returns on every path, including errors.
// This lets other work guarded by the same lock proceed meanwhile.
func WithLock(l sync.Locker) Option {
	return func(o *options) {
		o.lock = l
	}
}

// WithBufferLimit caps the scratch memory (coefficients, bounds and
// accumulators) a single pass may use. Exceeding it fails with
// ErrOutOfMemory. A limit <= 0 restores the default.
func WithBufferLimit(bytes int64) Option {
	return func(o *options) {
		if bytes <= 0 {
			bytes = filter.DefaultArenaLimit
		}
		o.bufferLimit = bytes
	}
}

// WithPool sets the pool Resize draws its intermediate raster from.
// By default a package-level pool is used.
func WithPool(p *Pool) Option {
	return func(o *options) {
		o.pool = p
	}
}
