package ui

import (
	"os"

	"github.com/charmbracelet/colorprofile"
	"github.com/charmbracelet/lipgloss"
)

// TermProfile holds the detected terminal color profile. Computed once at
// package init so every style helper can branch without re-detecting.
var TermProfile colorprofile.Profile

func init() {
	TermProfile = colorprofile.Detect(os.Stdout, os.Environ())
}

// ThemeFg returns the given hex color for ANSI256+ terminals and a safe
// ANSI white (color 7) for 16-color or lower terminals.
func ThemeFg(hex string) lipgloss.TerminalColor {
	if TermProfile < colorprofile.ANSI256 {
		return lipgloss.ANSIColor(7)
	}
	return lipgloss.Color(hex)
}

// Theme is the stone-and-paper palette the reader draws with.
type Theme struct {
	Renderer *lipgloss.Renderer

	Ink     lipgloss.AdaptiveColor // Running text
	InkSoft lipgloss.AdaptiveColor // Subtitles, dedications
	Muted   lipgloss.AdaptiveColor // Labels, markers, footers
	Faint   lipgloss.AdaptiveColor // Page numbers, binding
	Rule    lipgloss.AdaptiveColor // Dividers and frame
	Track   lipgloss.AdaptiveColor // Empty part of the progress bar
	Fill    lipgloss.AdaptiveColor // Filled part of the progress bar
	Binding lipgloss.TerminalColor // Shade along the paper's left edge
}

// DefaultTheme returns the standard theme (adaptive).
func DefaultTheme(r *lipgloss.Renderer) Theme {
	return Theme{
		Renderer: r,

		// Tailwind stone scale, inverted for dark terminals.
		Ink:     lipgloss.AdaptiveColor{Light: "#292524", Dark: "#E7E5E4"}, // stone-800 / stone-200
		InkSoft: lipgloss.AdaptiveColor{Light: "#57534E", Dark: "#D6D3D1"}, // stone-600 / stone-300
		Muted:   lipgloss.AdaptiveColor{Light: "#78716C", Dark: "#A8A29E"}, // stone-500 / stone-400
		Faint:   lipgloss.AdaptiveColor{Light: "#A8A29E", Dark: "#57534E"}, // stone-400 / stone-600
		Rule:    lipgloss.AdaptiveColor{Light: "#292524", Dark: "#A8A29E"},
		Track:   lipgloss.AdaptiveColor{Light: "#E7E5E4", Dark: "#44403C"}, // stone-200 / stone-700
		Fill:    lipgloss.AdaptiveColor{Light: "#292524", Dark: "#E7E5E4"},
		Binding: ThemeFg("#D6D3D1"),
	}
}

// TestTheme returns a theme suitable for use in tests.
func TestTheme() Theme {
	return DefaultTheme(lipgloss.NewRenderer(nil))
}

func (t Theme) style() lipgloss.Style {
	if t.Renderer == nil {
		return lipgloss.NewStyle()
	}
	return t.Renderer.NewStyle()
}
