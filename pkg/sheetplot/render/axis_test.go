package render

import (
	"testing"
)

func TestNiceTicks(t *testing.T) {
	ticks := niceTicks(0, 10, desiredTicks, formatTick)
	want := []string{"0", "2", "4", "6", "8", "10"}
	if len(ticks) != len(want) {
		t.Fatalf("Expected %d ticks, got %d: %+v", len(want), len(ticks), ticks)
	}
	for i, tk := range ticks {
		if tk.Label != want[i] {
			t.Errorf("Tick %d: expected %q, got %q", i, want[i], tk.Label)
		}
	}

	for _, tk := range niceTicks(0.1, 0.7, desiredTicks, formatTick) {
		if tk.Value < 0.1-1e-9 || tk.Value > 0.7+1e-9 {
			t.Errorf("Tick %v outside range", tk.Value)
		}
		if len(tk.Label) > 4 {
			t.Errorf("Tick label %q carries float noise", tk.Label)
		}
	}

	if got := niceTicks(5, 5, desiredTicks, formatTick); got != nil {
		t.Errorf("Expected no ticks for an empty range, got %+v", got)
	}
}

func TestWithBounds(t *testing.T) {
	ticks := withBounds(niceTicks(-0.5, 10.5, desiredTicks, formatTick), -0.5, 10.5)
	first, last := ticks[0], ticks[len(ticks)-1]
	if first.Value != -0.5 || first.Label != "" {
		t.Errorf("Expected unlabelled tick at -0.5, got %+v", first)
	}
	if last.Value != 10.5 || last.Label != "" {
		t.Errorf("Expected unlabelled tick at 10.5, got %+v", last)
	}

	exact := withBounds(niceTicks(0, 10, desiredTicks, formatTick), 0, 10)
	if exact[0].Label != "0" || exact[len(exact)-1].Label != "10" {
		t.Errorf("Expected no extra ticks when the ends are labelled, got %+v", exact)
	}
}

func TestLogTicks(t *testing.T) {
	ticks := logTicks(0, 3)
	want := []string{"1", "10", "100", "1000"}
	if len(ticks) != len(want) {
		t.Fatalf("Expected %d decade ticks, got %+v", len(want), ticks)
	}
	for i, tk := range ticks {
		if tk.Label != want[i] || tk.Value != float64(i) {
			t.Errorf("Tick %d: expected %q at %d, got %+v", i, want[i], i, tk)
		}
	}

	if got := formatDecade(-6); got != "1e-6" {
		t.Errorf("Expected 1e-6, got %q", got)
	}
}

func TestPaddedBounds(t *testing.T) {
	lo, hi := paddedBounds(0, 100)
	if lo != -5 || hi != 105 {
		t.Errorf("Expected -5..105, got %v..%v", lo, hi)
	}
	lo, hi = paddedBounds(0, 0)
	if lo != -1 || hi != 1 {
		t.Errorf("Expected -1..1 for a zero span at 0, got %v..%v", lo, hi)
	}
	lo, hi = paddedBounds(10, 10)
	if lo >= 10 || hi <= 10 {
		t.Errorf("Expected a widened range around 10, got %v..%v", lo, hi)
	}
}

func TestCategoryTicks(t *testing.T) {
	ticks := categoryTicks([]string{"a", "b", "c"}, -0.1, 2.1)
	if len(ticks) != 3 || ticks[1].Label != "b" || ticks[1].Value != 1 {
		t.Errorf("Unexpected category ticks %+v", ticks)
	}

	many := make([]string, 45)
	for i := range many {
		many[i] = "c"
	}
	if got := categoryTicks(many, 0, 44); len(got) > maxCategoryTicks {
		t.Errorf("Expected at most %d ticks, got %d", maxCategoryTicks, len(got))
	}
}
