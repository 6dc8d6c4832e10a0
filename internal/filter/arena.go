package filter

import (
	"errors"
	"fmt"
	"math"
)

// ErrOutOfMemory is returned when a scratch allocation exceeds the arena
// budget or cannot be sized without overflow.
var ErrOutOfMemory = errors.New("resample: out of memory")

// DefaultArenaLimit is the scratch budget used when none is configured.
const DefaultArenaLimit int64 = 256 << 20

// Arena hands out the transient buffers of one resample call and accounts
// for them against a byte budget.
//
// Buffers are owned by the arena. Release drops every reference, after which
// slices obtained from the arena must not be used. An Arena is not safe for
// concurrent use.
type Arena struct {
	limit int64
	used  int64

	int32s   [][]int32
	float64s [][]float64
	ints     [][]int
}

// NewArena returns an arena with the given budget in bytes.
// A limit <= 0 selects DefaultArenaLimit.
func NewArena(limit int64) *Arena {
	if limit <= 0 {
		limit = DefaultArenaLimit
	}
	return &Arena{limit: limit}
}

func (a *Arena) reserve(n int, elemSize int64, what string) error {
	if n < 0 || int64(n) > math.MaxInt64/elemSize {
		return fmt.Errorf("%w: %s buffer of %d elements", ErrOutOfMemory, what, n)
	}
	size := int64(n) * elemSize
	if size > a.limit-a.used {
		return fmt.Errorf("%w: %s buffer needs %d bytes, %d of %d in use",
			ErrOutOfMemory, what, size, a.used, a.limit)
	}
	a.used += size
	return nil
}

// Int32s returns a zeroed []int32 of length n.
func (a *Arena) Int32s(n int) ([]int32, error) {
	if err := a.reserve(n, 4, "int32"); err != nil {
		return nil, err
	}
	s := make([]int32, n)
	a.int32s = append(a.int32s, s)
	return s, nil
}

// Float64s returns a zeroed []float64 of length n.
func (a *Arena) Float64s(n int) ([]float64, error) {
	if err := a.reserve(n, 8, "float64"); err != nil {
		return nil, err
	}
	s := make([]float64, n)
	a.float64s = append(a.float64s, s)
	return s, nil
}

// Ints returns a zeroed []int of length n.
func (a *Arena) Ints(n int) ([]int, error) {
	if err := a.reserve(n, 8, "int"); err != nil {
		return nil, err
	}
	s := make([]int, n)
	a.ints = append(a.ints, s)
	return s, nil
}

// Used returns the bytes currently held by the arena.
func (a *Arena) Used() int64 {
	return a.used
}

// Live returns the number of buffers not yet released.
func (a *Arena) Live() int {
	return len(a.int32s) + len(a.float64s) + len(a.ints)
}

// Release returns every buffer and resets the budget. It is safe to call
// more than once.
func (a *Arena) Release() {
	clear(a.int32s)
	clear(a.float64s)
	clear(a.ints)
	a.int32s = a.int32s[:0]
	a.float64s = a.float64s[:0]
	a.ints = a.ints[:0]
	a.used = 0
}
