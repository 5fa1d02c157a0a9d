package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

// helpMarkdown builds the help text from the key map so the two can't drift.
func helpMarkdown(k KeyMap, title string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", title)
	headings := []string{"Turning pages", "Scrolling", "Other"}
	for i, group := range k.helpGroups() {
		fmt.Fprintf(&b, "## %s\n\n", headings[i])
		b.WriteString("| Key | Action |\n|---|---|\n")
		for _, kb := range group {
			h := kb.Help()
			fmt.Fprintf(&b, "| `%s` | %s |\n", h.Key, h.Desc)
		}
		b.WriteString("\n")
	}
	b.WriteString("Click the left or right edge of the screen to turn pages. ")
	b.WriteString("Click the title to return to the cover.\n")
	return b.String()
}

// renderHelp renders the help overlay with glamour. style is a glamour
// standard style name or "auto". When glamour fails the raw markdown is
// shown instead.
func renderHelp(k KeyMap, theme Theme, title, style string, width, height int) string {
	boxW := min(64, width-4)
	if boxW < 20 {
		boxW = max(width, 1)
	}

	opts := []glamour.TermRendererOption{glamour.WithWordWrap(boxW - 4)}
	if style == "" || style == "auto" {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStandardStyle(style))
	}

	md := helpMarkdown(k, title)
	body := md
	if r, err := glamour.NewTermRenderer(opts...); err == nil {
		if out, err := r.Render(md); err == nil {
			body = strings.Trim(out, "\n")
		}
	}

	box := theme.style().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Rule).
		Padding(0, 1).
		Width(boxW).
		Render(body)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}
