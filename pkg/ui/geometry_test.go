package ui

import (
	"testing"

	"pgregory.net/rapid"

	"github.com/vanderheijden86/quire/pkg/config"
)

func TestLayoutStandardTerminal(t *testing.T) {
	g := Layout(120, 40, config.DefaultConfig().Reader)

	if g.PaperH != 34 || g.PaperW != 48 {
		t.Errorf("paper = %dx%d, want 48x34", g.PaperW, g.PaperH)
	}
	if g.PaperX != 36 || g.PaperY != 3 {
		t.Errorf("paper origin = (%d,%d), want (36,3)", g.PaperX, g.PaperY)
	}
	if g.PadX() != 5 || g.PadY() != 2 {
		t.Errorf("padding = %d,%d, want 5,2", g.PadX(), g.PadY())
	}
	if g.InnerW != 37 || g.InnerH != 30 {
		t.Errorf("inner = %dx%d, want 37x30", g.InnerW, g.InnerH)
	}
	if g.HeaderRow != 0 || g.ProgressRow != 39 {
		t.Errorf("rows = %d/%d", g.HeaderRow, g.ProgressRow)
	}
}

func TestLayoutMaxHeight(t *testing.T) {
	g := Layout(200, 100, config.DefaultConfig().Reader)
	if g.PaperH != config.DefaultMaxHeight {
		t.Errorf("paper height %d not capped at %d", g.PaperH, config.DefaultMaxHeight)
	}
	if g.PaperW != 70 {
		t.Errorf("paper width = %d, want 70", g.PaperW)
	}
}

func TestLayoutNarrowsBetweenBands(t *testing.T) {
	g := Layout(40, 40, config.DefaultConfig().Reader)
	if g.PaperW != 26 {
		t.Errorf("paper width = %d, want 26", g.PaperW)
	}
	if g.PaperX < g.Band || g.PaperX+g.PaperW > g.Width-g.Band {
		t.Errorf("paper [%d,%d) overlaps bands of %d", g.PaperX, g.PaperX+g.PaperW, g.Band)
	}
}

func TestLayoutBandClamp(t *testing.T) {
	cfg := config.DefaultConfig().Reader
	cfg.BandWidth = 30
	if g := Layout(40, 20, cfg); g.Band != 10 {
		t.Errorf("band = %d, want width/4 = 10", g.Band)
	}
}

func TestLayoutFitsScreen(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		w := rapid.IntRange(30, 300).Draw(t, "width")
		h := rapid.IntRange(12, 120).Draw(t, "height")
		g := Layout(w, h, config.DefaultConfig().Reader)

		if g.PaperX < 0 || g.PaperX+g.PaperW > w {
			t.Fatalf("paper x range [%d,%d) outside width %d", g.PaperX, g.PaperX+g.PaperW, w)
		}
		if g.PaperY < 1 || g.PaperY+g.PaperH > h-1 {
			t.Fatalf("paper y range [%d,%d) collides with header or progress (h=%d)", g.PaperY, g.PaperY+g.PaperH, h)
		}
		if g.InnerW < 1 || g.InnerH < 1 {
			t.Fatalf("empty text area %dx%d", g.InnerW, g.InnerH)
		}
		if g.InnerX+g.InnerW > g.PaperX+g.PaperW || g.InnerY+g.InnerH > g.PaperY+g.PaperH {
			t.Fatalf("text area spills out of the paper: %+v", g)
		}
		if w >= 2*g.Band+2+minPaperW && (g.PaperX < g.Band || g.PaperX+g.PaperW > w-g.Band) {
			t.Fatalf("paper overlaps click bands: %+v", g)
		}
	})
}
