package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetrics_Transition(t *testing.T) {
	m := New()
	m.Transition("listing", "adopted")
	m.Transition("listing", "adopted")

	if got := testutil.ToFloat64(m.Transitions.WithLabelValues("listing", "adopted")); got != 2 {
		t.Fatalf("expected 2 transitions, got %v", got)
	}

	var nilMetrics *Metrics
	nilMetrics.Transition("listing", "adopted") // no panic
}
