package progress

import (
	"math"
	"testing"
)

func TestPercent(t *testing.T) {
	tests := []struct {
		current, total int
		want           float64
	}{
		{0, 5, 20},
		{4, 5, 100},
		{2, 5, 60},
		{0, 1, 100},
		{0, 3, 100.0 / 3},
	}
	for _, tt := range tests {
		got := Percent(tt.current, tt.total)
		if math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Percent(%d, %d) = %v, want %v", tt.current, tt.total, got, tt.want)
		}
	}
}

func TestPercentRange(t *testing.T) {
	for total := 1; total <= 40; total++ {
		for cur := 0; cur < total; cur++ {
			p := Percent(cur, total)
			if p <= 0 || p > 100 {
				t.Fatalf("Percent(%d, %d) = %v outside (0, 100]", cur, total, p)
			}
		}
	}
}

func TestFilled(t *testing.T) {
	tests := []struct {
		current, total, width, want int
	}{
		{0, 5, 10, 2},
		{4, 5, 10, 10},
		{0, 100, 10, 1}, // never empty
		{0, 1, 80, 80},
		{3, 5, 0, 0},
		{1, 3, 9, 6},
	}
	for _, tt := range tests {
		if got := Filled(tt.current, tt.total, tt.width); got != tt.want {
			t.Errorf("Filled(%d, %d, %d) = %d, want %d", tt.current, tt.total, tt.width, got, tt.want)
		}
	}
}

func TestLabel(t *testing.T) {
	if got := Label(0, 12); got != "1 / 12" {
		t.Errorf("Label(0, 12) = %q", got)
	}
	if got := Label(11, 12); got != "12 / 12" {
		t.Errorf("Label(11, 12) = %q", got)
	}
}
