package ui

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/vanderheijden86/quire/pkg/render"
)

// Layout helpers measure in display cells, not bytes or runes, so that wide
// (CJK) characters line up.

// collapse squeezes every whitespace run to a single space.
func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// preLine splits s on newlines and collapses spaces inside each line.
func preLine(s string) []string {
	src := strings.Split(s, "\n")
	out := make([]string, len(src))
	for i, l := range src {
		out[i] = collapse(l)
	}
	return out
}

// splitWidth breaks a token wider than width into width-sized pieces.
func splitWidth(tok string, width int) []string {
	var out []string
	var b strings.Builder
	w := 0
	for _, r := range tok {
		rw := runewidth.RuneWidth(r)
		if w+rw > width && w > 0 {
			out = append(out, b.String())
			b.Reset()
			w = 0
		}
		b.WriteRune(r)
		w += rw
	}
	if b.Len() > 0 {
		out = append(out, b.String())
	}
	return out
}

// wrapWords greedily packs the words of a collapsed line into lines no wider
// than width. The result holds the words of each line, so the caller can
// justify without re-splitting.
func wrapWords(line string, width int) [][]string {
	if width < 1 {
		width = 1
	}
	var lines [][]string
	var cur []string
	curW := 0
	for _, word := range strings.Fields(line) {
		for _, piece := range splitWidth(word, width) {
			pw := runewidth.StringWidth(piece)
			need := pw
			if len(cur) > 0 {
				need++
			}
			if curW+need > width && len(cur) > 0 {
				lines = append(lines, cur)
				cur = nil
				curW = 0
				need = pw
			}
			cur = append(cur, piece)
			curW += need
		}
	}
	if len(cur) > 0 || len(lines) == 0 {
		lines = append(lines, cur)
	}
	return lines
}

// justify spreads words across exactly width cells. Extra spaces go to the
// leftmost gaps first.
func justify(words []string, width int) string {
	if len(words) == 0 {
		return ""
	}
	if len(words) == 1 {
		return words[0]
	}
	used := 0
	for _, w := range words {
		used += runewidth.StringWidth(w)
	}
	gaps := len(words) - 1
	spare := width - used
	if spare < gaps {
		return strings.Join(words, " ")
	}
	each, extra := spare/gaps, spare%gaps

	var b strings.Builder
	for i, w := range words {
		b.WriteString(w)
		if i == gaps {
			break
		}
		n := each
		if i < extra {
			n++
		}
		b.WriteString(strings.Repeat(" ", n))
	}
	return b.String()
}

// wrapPre breaks a whitespace-preserving line that is too wide, preferring
// the last space that fits.
func wrapPre(line string, width int) []string {
	if width < 1 {
		width = 1
	}
	var out []string
	for runewidth.StringWidth(line) > width {
		runes := []rune(line)
		w, cut, lastSpace := 0, 0, -1
		for i, r := range runes {
			rw := runewidth.RuneWidth(r)
			if w+rw > width {
				break
			}
			w += rw
			cut = i + 1
			if r == ' ' {
				lastSpace = i
			}
		}
		if cut == 0 {
			cut = 1
		}
		if lastSpace > 0 && cut < len(runes) {
			out = append(out, string(runes[:lastSpace]))
			line = string(runes[lastSpace+1:])
			continue
		}
		out = append(out, string(runes[:cut]))
		line = string(runes[cut:])
	}
	return append(out, line)
}

// layoutText turns node text into lines no wider than width, honouring the
// node's whitespace and alignment rules.
func layoutText(n render.Node, width int) []string {
	var out []string
	switch n.Space {
	case render.SpacePreWrap:
		for _, l := range strings.Split(n.Text, "\n") {
			out = append(out, wrapPre(l, width)...)
		}
	case render.SpacePreLine:
		for _, l := range preLine(n.Text) {
			out = append(out, alignWords(wrapWords(l, width), n.Align, width)...)
		}
	case render.SpaceNormal:
		out = alignWords(wrapWords(collapse(n.Text), width), n.Align, width)
	}
	if n.Space == render.SpacePreWrap && n.Align == render.AlignCenter {
		for i, l := range out {
			out[i] = center(l, width)
		}
	}
	return out
}

func alignWords(lines [][]string, align render.Align, width int) []string {
	out := make([]string, len(lines))
	for i, words := range lines {
		switch {
		case align == render.AlignJustify && i < len(lines)-1:
			out[i] = justify(words, width)
		case align == render.AlignCenter:
			out[i] = center(strings.Join(words, " "), width)
		default:
			out[i] = strings.Join(words, " ")
		}
	}
	return out
}

// center pads s on the left so it sits in the middle of width cells.
func center(s string, width int) string {
	sw := runewidth.StringWidth(s)
	if sw == 0 || sw >= width {
		return s
	}
	return strings.Repeat(" ", (width-sw)/2) + s
}

// track letter-spaces s ("ABC" -> "A B C") when it still fits in width.
func track(s string, width int) string {
	runes := []rune(s)
	if len(runes) < 2 {
		return s
	}
	parts := make([]string, len(runes))
	for i, r := range runes {
		parts[i] = string(r)
	}
	tracked := strings.Join(parts, " ")
	tracked = strings.ReplaceAll(tracked, "   ", "  ")
	if runewidth.StringWidth(tracked) > width {
		return s
	}
	return tracked
}
