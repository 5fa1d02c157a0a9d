package nav

// KeyAction maps a key name (as reported by bubbletea's KeyMsg.String) to a
// navigation action. When ok is true the key must be consumed: nothing else,
// in particular the scrolling viewport, may see it. That is how Space is kept
// from paging the body text instead of turning the page.
func KeyAction(key string) (a Action, ok bool) {
	switch key {
	case "right", "l", " ":
		return ActionAdvance, true
	case "left", "h":
		return ActionRetreat, true
	case "home":
		return ActionJumpToStart, true
	}
	return ActionNone, false
}

// Band width limits, in terminal columns.
const (
	MinBand     = 2
	DefaultBand = 6
)

// Zones describes the clickable regions of the screen.
type Zones struct {
	Width     int // Screen width in columns
	Height    int // Screen height in rows
	Band      int // Width of each side band
	LogoRow   int // Row holding the title logo
	LogoStart int // First column of the logo
	LogoWidth int // Columns covered by the logo
	InertRow  int // Row covered by the progress bar; -1 for none
}

// BandWidth returns the effective band width, clamped to [MinBand, Width/4].
func (z Zones) BandWidth() int {
	b := z.Band
	if limit := z.Width / 4; b > limit {
		b = limit
	}
	if b < MinBand {
		b = MinBand
	}
	return b
}

// Hit returns the action for a click at column x, row y. The logo sits above
// the bands and the progress bar sits above everything, so those are tested
// first.
func (z Zones) Hit(x, y int) Action {
	if x < 0 || y < 0 || x >= z.Width || y >= z.Height {
		return ActionNone
	}
	if z.InertRow >= 0 && y == z.InertRow {
		return ActionNone
	}
	if y == z.LogoRow && x >= z.LogoStart && x < z.LogoStart+z.LogoWidth {
		return ActionJumpToStart
	}
	band := z.BandWidth()
	switch {
	case x < band:
		return ActionRetreat
	case x >= z.Width-band:
		return ActionAdvance
	}
	return ActionNone
}
