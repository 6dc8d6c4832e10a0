package filter

import (
	"errors"
	"math"
	"testing"
)

func TestArenaAccounting(t *testing.T) {
	a := NewArena(1 << 10)

	if _, err := a.Int32s(16); err != nil {
		t.Fatalf("Int32s() error = %v", err)
	}
	if _, err := a.Float64s(8); err != nil {
		t.Fatalf("Float64s() error = %v", err)
	}
	if _, err := a.Ints(4); err != nil {
		t.Fatalf("Ints() error = %v", err)
	}

	if got, want := a.Used(), int64(16*4+8*8+4*8); got != want {
		t.Errorf("Used() = %d, want %d", got, want)
	}
	if a.Live() != 3 {
		t.Errorf("Live() = %d, want 3", a.Live())
	}

	a.Release()
	if a.Used() != 0 || a.Live() != 0 {
		t.Errorf("after Release: Used() = %d, Live() = %d", a.Used(), a.Live())
	}
	a.Release()
}

func TestArenaBudget(t *testing.T) {
	a := NewArena(64)

	if _, err := a.Int32s(16); err != nil {
		t.Fatalf("Int32s(16) error = %v", err)
	}
	if _, err := a.Int32s(1); !errors.Is(err, ErrOutOfMemory) {
		t.Errorf("Int32s over budget: error = %v, want ErrOutOfMemory", err)
	}
	if a.Live() != 1 {
		t.Errorf("Live() = %d, want 1 (failed allocation must not be held)", a.Live())
	}

	// Released budget can be reused.
	a.Release()
	if _, err := a.Int32s(16); err != nil {
		t.Errorf("Int32s after Release error = %v", err)
	}
}

func TestArenaRejectsBadSizes(t *testing.T) {
	a := NewArena(0)
	for _, n := range []int{-1, math.MaxInt} {
		if _, err := a.Float64s(n); !errors.Is(err, ErrOutOfMemory) {
			t.Errorf("Float64s(%d) error = %v, want ErrOutOfMemory", n, err)
		}
	}
	if a.Live() != 0 || a.Used() != 0 {
		t.Errorf("Live() = %d, Used() = %d, want 0, 0", a.Live(), a.Used())
	}
}

func TestNewArenaDefaultLimit(t *testing.T) {
	a := NewArena(-5)
	if a.limit != DefaultArenaLimit {
		t.Errorf("limit = %d, want %d", a.limit, DefaultArenaLimit)
	}
}
