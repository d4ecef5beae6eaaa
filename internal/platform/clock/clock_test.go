package clock

import (
	"testing"
	"time"
)

func TestMonotonic_NeverGoesBack(t *testing.T) {
	t0 := time.Date(2025, 12, 22, 10, 0, 0, 0, time.UTC)
	seq := []time.Time{t0, t0.Add(-time.Minute), t0.Add(time.Second)}
	i := 0
	now := Monotonic(func() time.Time {
		v := seq[i]
		i++
		return v
	})

	if got := now(); !got.Equal(t0) {
		t.Fatalf("expected t0, got %v", got)
	}
	if got := now(); !got.Equal(t0) {
		t.Fatalf("expected clock to hold at t0, got %v", got)
	}
	if got := now(); !got.Equal(t0.Add(time.Second)) {
		t.Fatalf("expected t0+1s, got %v", got)
	}
}
