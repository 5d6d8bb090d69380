package core

import (
	"math"
	"strconv"
	"testing"
)

func TestItoa(t *testing.T) {
	for _, n := range []int{0, 7, -7, 10, 6446, -13200, math.MaxInt32, math.MinInt} {
		if got, want := Itoa(n), strconv.Itoa(n); got != want {
			t.Errorf("Expected %s, got %s", want, got)
		}
	}
}

func TestUtoa(t *testing.T) {
	for _, n := range []uint32{0, 9, 4095, math.MaxUint32} {
		if got, want := utoa(n), strconv.FormatUint(uint64(n), 10); got != want {
			t.Errorf("Expected %s, got %s", want, got)
		}
	}
}
