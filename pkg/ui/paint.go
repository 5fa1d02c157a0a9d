package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/vanderheijden86/quire/pkg/render"
)

// pageView is a painted page, split around its scrolling region. Every line
// is exactly the painter's width. Pages without a scrolling region put all
// their lines in top.
type pageView struct {
	top     []string
	scroll  []string
	bottom  []string
	scrolls bool
}

// painter draws render trees into fixed-size blocks of terminal lines.
type painter struct {
	theme  Theme
	width  int
	height int
	faint  bool
}

func (p painter) paint(t render.Tree) pageView {
	//exhaustive:enforce
	switch t.Layout {
	case render.LayoutCover:
		return pageView{top: p.cover(t.Root)}
	case render.LayoutDedication, render.LayoutPoem:
		return pageView{top: p.centered(t.Root)}
	case render.LayoutNote:
		return p.note(t.Root)
	case render.LayoutBody:
		return p.body(t.Root)
	}
	return pageView{top: p.blank(p.height)}
}

// style maps a node's flags onto a lipgloss style.
func (p painter) style(n render.Node) lipgloss.Style {
	st := p.theme.style().Foreground(p.theme.Ink)
	switch n.Role {
	case render.RoleSubtitle, render.RoleCaption:
		st = st.Foreground(p.theme.InkSoft)
	case render.RoleDivider:
		st = st.Foreground(p.theme.Rule)
	case render.RoleFooter:
		st = st.Foreground(p.theme.Faint)
	}
	if n.Style.Has(render.StyleMuted) {
		st = st.Foreground(p.theme.Muted)
	}
	if n.Style.Has(render.StyleItalic) {
		st = st.Italic(true)
	}
	if n.Style.Has(render.StyleBold) {
		st = st.Bold(true)
	}
	if n.Style.Has(render.StyleUnderline) {
		st = st.Underline(true)
	}
	if p.faint {
		st = st.Faint(true)
	}
	return st
}

// text lays out and styles a text-bearing node at the given width.
func (p painter) text(n render.Node, width int) []string {
	raw := n.Text
	if n.Style.Has(render.StyleUpper) {
		raw = strings.ToUpper(raw)
	}

	var lines []string
	if n.Style.Has(render.StyleTracked) && !strings.Contains(raw, "\n") {
		if t := track(collapse(raw), width); runewidth.StringWidth(t) <= width {
			if n.Align == render.AlignCenter {
				t = center(t, width)
			}
			lines = []string{t}
		}
	}
	if lines == nil {
		n.Text = raw
		lines = layoutText(n, width)
	}

	st := p.style(n)
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = paintLine(st, l, width)
	}
	return out
}

// paintLine styles the visible part of raw and pads it to width. Leading and
// trailing spaces stay outside the style so underlines don't run into them.
func paintLine(st lipgloss.Style, raw string, width int) string {
	core := strings.TrimLeft(raw, " ")
	lead := len(raw) - len(core)
	core = strings.TrimRight(core, " ")
	if core == "" {
		return strings.Repeat(" ", width)
	}
	used := lead + runewidth.StringWidth(core)
	return strings.Repeat(" ", lead) + st.Render(core) + strings.Repeat(" ", max(width-used, 0))
}

func (p painter) blank(n int) []string {
	out := make([]string, max(n, 0))
	for i := range out {
		out[i] = strings.Repeat(" ", p.width)
	}
	return out
}

// rule draws a divider of n cells, centred in width.
func (p painter) rule(n render.Node, length, width int) string {
	length = min(length, width)
	return paintLine(p.style(n), center(strings.Repeat("─", length), width), width)
}

// fit pads lines to exactly h rows, centring them vertically when asked.
func (p painter) fit(lines []string, h int, vcenter bool) []string {
	if len(lines) > h {
		return lines[:h]
	}
	above := 0
	if vcenter {
		above = (h - len(lines)) / 2
	}
	out := make([]string, 0, h)
	out = append(out, p.blank(above)...)
	out = append(out, lines...)
	return append(out, p.blank(h-len(out))...)
}

func (p painter) cover(root render.Node) []string {
	if p.width < 6 || p.height < 3 {
		return p.blank(p.height)
	}
	inner := p.width - 4 // border plus one cell of margin each side
	sub := p
	sub.width = inner

	var lines []string
	if n, ok := render.First(root, render.RoleSubtitle); ok {
		lines = append(lines, sub.text(n, inner)...)
		lines = append(lines, sub.blank(1)...)
	}
	if n, ok := render.First(root, render.RoleTitle); ok {
		lines = append(lines, sub.text(n, inner)...)
	}
	if n, ok := render.First(root, render.RoleDivider); ok {
		lines = append(lines, sub.blank(1)...)
		lines = append(lines, sub.rule(n, 6, inner))
		lines = append(lines, sub.blank(1)...)
	}
	if n, ok := render.First(root, render.RoleCaption); ok {
		lines = append(lines, sub.text(n, inner)...)
	}
	lines = sub.fit(lines, p.height-2, root.VCenter)

	frame := p.theme.style().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(p.theme.Rule).
		Padding(0, 1).
		Width(p.width - 2)
	if p.faint {
		frame = frame.Faint(true)
	}
	return strings.Split(frame.Render(strings.Join(lines, "\n")), "\n")
}

// centered paints a single vertically centred text block.
func (p painter) centered(root render.Node) []string {
	var lines []string
	for _, n := range render.Find(root, render.RoleText) {
		lines = append(lines, p.text(n, p.width)...)
	}
	return p.fit(lines, p.height, root.VCenter)
}

func (p painter) note(root render.Node) pageView {
	var top []string
	if n, ok := render.First(root, render.RoleLabel); ok {
		top = append(top, p.text(n, p.width)...)
	}
	if n, ok := render.First(root, render.RoleHeading); ok {
		top = append(top, p.blank(1)...)
		top = append(top, p.text(n, p.width)...)
	}
	if n, ok := render.First(root, render.RoleDivider); ok {
		top = append(top, p.rule(n, p.width, p.width))
	}
	top = append(top, p.blank(1)...)

	v := pageView{top: top, scrolls: true}
	if n, ok := render.First(root, render.RoleText); ok {
		v.scroll = p.text(n, p.width)
	}
	return v
}

func (p painter) body(root render.Node) pageView {
	var v pageView
	if n, ok := render.First(root, render.RoleMarker); ok {
		v.top = append(v.top, p.text(n, p.width)...)
		v.top = append(v.top, p.blank(1)...)
	}
	if n, ok := render.First(root, render.RoleText); ok {
		v.scroll = p.text(n, p.width)
		v.scrolls = true
	}
	if n, ok := render.First(root, render.RoleFooter); ok {
		v.bottom = append(p.blank(1), p.text(n, p.width)...)
	}
	return v
}

// scrollHeight is the number of rows left for the scrolling region.
func (v pageView) scrollHeight(h int) int {
	return max(h-len(v.top)-len(v.bottom), 1)
}

// compose stacks the fixed parts around the visible scroll window into
// exactly h lines of width w.
func (v pageView) compose(window string, w, h int) []string {
	p := painter{width: w}
	if !v.scrolls {
		return p.fit(v.top, h, false)
	}
	mid := strings.Split(window, "\n")
	sh := v.scrollHeight(h)
	if len(mid) > sh {
		mid = mid[:sh]
	}
	for i, l := range mid {
		mid[i] = padStyled(l, w)
	}
	for len(mid) < sh {
		mid = append(mid, strings.Repeat(" ", w))
	}
	out := make([]string, 0, h)
	out = append(out, v.top...)
	out = append(out, mid...)
	out = append(out, v.bottom...)
	return p.fit(out, h, false)
}

// padStyled pads a possibly styled line to w cells.
func padStyled(l string, w int) string {
	if gap := w - lipgloss.Width(l); gap > 0 {
		return l + strings.Repeat(" ", gap)
	}
	return l
}
