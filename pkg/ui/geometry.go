package ui

import (
	"math"

	"github.com/vanderheijden86/quire/pkg/config"
)

// Page proportions (A5 portrait) and the share of the paper left as margin.
const (
	paperRatio   = 148.0 / 210.0
	paperFill    = 0.9
	paddingShare = 0.10

	minPaperW = 16
	minPaperH = 8
)

// Geometry is where everything sits on screen, in cells.
type Geometry struct {
	Width, Height int
	Band          int

	HeaderRow   int
	ProgressRow int

	PaperX, PaperY int
	PaperW, PaperH int

	// Text area inside the paper, after the binding column and margins.
	InnerX, InnerY int
	InnerW, InnerH int
}

// Layout computes the screen geometry for a terminal of width x height.
// The paper keeps its page proportions (corrected for tall cells) until it
// would collide with the click bands, then narrows.
func Layout(width, height int, cfg config.ReaderConfig) Geometry {
	g := Geometry{
		Width:       width,
		Height:      height,
		Band:        cfg.BandWidth,
		HeaderRow:   0,
		ProgressRow: height - 1,
	}
	if limit := width / 4; g.Band > limit {
		g.Band = limit
	}
	if g.Band < 2 {
		g.Band = 2
	}

	aspect := cfg.CellAspect
	if aspect <= 0 {
		aspect = config.DefaultCellAspect
	}
	maxH := cfg.MaxHeight
	if maxH <= 0 {
		maxH = config.DefaultMaxHeight
	}

	avail := height - 2 // header and progress rows
	ph := int(math.Floor(float64(avail) * paperFill))
	ph = min(ph, maxH)
	ph = max(ph, min(minPaperH, avail))
	ph = max(ph, 1)

	room := width - 2*g.Band - 2
	pw := int(math.Round(float64(ph) * paperRatio * aspect))
	pw = min(pw, room)
	pw = max(pw, min(minPaperW, width))
	pw = max(pw, 1)

	g.PaperW, g.PaperH = pw, ph
	g.PaperX = max((width-pw)/2, 0)
	g.PaperY = 1 + max((avail-ph)/2, 0)

	// Percentage padding is measured against the width on both axes, so the
	// vertical margin is the horizontal one divided by the cell aspect.
	padX := max(int(math.Round(float64(pw)*paddingShare)), 1)
	padY := max(int(math.Round(float64(pw)*paddingShare/aspect)), 1)
	if ph-2*padY < 3 {
		padY = max((ph-3)/2, 0)
	}

	g.InnerX = g.PaperX + 1 + padX // binding column
	g.InnerY = g.PaperY + padY
	g.InnerW = max(pw-1-2*padX, 1)
	g.InnerH = max(ph-2*padY, 1)
	return g
}

// PadX is the horizontal margin between the binding and the text.
func (g Geometry) PadX() int { return g.InnerX - g.PaperX - 1 }

// PadY is the vertical margin above and below the text.
func (g Geometry) PadY() int { return g.InnerY - g.PaperY }

// MiddleRow is the row the chevrons sit on.
func (g Geometry) MiddleRow() int { return g.PaperY + g.PaperH/2 }
