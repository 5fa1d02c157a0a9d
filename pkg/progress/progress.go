// Package progress computes how far through the book the reader is.
package progress

import (
	"fmt"
	"math"
)

// Percent returns ((current+1)/total)*100. Callers guarantee total >= 1.
func Percent(current, total int) float64 {
	return float64(current+1) / float64(total) * 100
}

// Filled returns how many of width cells a bar should fill. Any valid
// position fills at least one cell so the bar never looks empty.
func Filled(current, total, width int) int {
	if width <= 0 {
		return 0
	}
	n := int(math.Round(float64(width) * Percent(current, total) / 100))
	if n < 1 {
		n = 1
	}
	if n > width {
		n = width
	}
	return n
}

// Label is the "n / N" page counter.
func Label(current, total int) string {
	return fmt.Sprintf("%d / %d", current+1, total)
}
