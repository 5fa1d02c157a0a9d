package ui

import (
	"strings"
	"testing"

	"github.com/mattn/go-runewidth"

	"github.com/vanderheijden86/quire/pkg/render"
)

func TestWrapWords(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		width int
		want  []string
	}{
		{"fits", "a b c", 10, []string{"a b c"}},
		{"wraps", "aaa bbb ccc", 7, []string{"aaa bbb", "ccc"}},
		{"long word split", "abcdefgh", 3, []string{"abc", "def", "gh"}},
		{"empty", "", 5, []string{""}},
		{"wide runes", "한국어 책", 6, []string{"한국어", "책"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []string
			for _, words := range wrapWords(tt.in, tt.width) {
				got = append(got, strings.Join(words, " "))
			}
			if strings.Join(got, "|") != strings.Join(tt.want, "|") {
				t.Errorf("wrapWords(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
			}
		})
	}
}

func TestJustify(t *testing.T) {
	tests := []struct {
		words []string
		width int
		want  string
	}{
		{[]string{"a", "b", "c"}, 7, "a  b  c"},
		{[]string{"a", "b", "c"}, 8, "a   b  c"},
		{[]string{"only"}, 10, "only"},
		{[]string{"too", "wide"}, 5, "too wide"},
		{nil, 5, ""},
	}
	for _, tt := range tests {
		if got := justify(tt.words, tt.width); got != tt.want {
			t.Errorf("justify(%q, %d) = %q, want %q", tt.words, tt.width, got, tt.want)
		}
	}
}

func TestWrapPre(t *testing.T) {
	got := wrapPre("  two  spaces here", 10)
	want := []string{"  two ", "spaces", "here"}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("wrapPre = %q, want %q", got, want)
	}
	if got := wrapPre("short", 10); len(got) != 1 || got[0] != "short" {
		t.Errorf("short line changed: %q", got)
	}
}

func TestLayoutTextPreLineKeepsNewlines(t *testing.T) {
	n := render.Node{Text: "one    two\nthree", Space: render.SpacePreLine, Align: render.AlignLeft}
	got := layoutText(n, 20)
	want := []string{"one two", "three"}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("layoutText = %q, want %q", got, want)
	}
}

func TestLayoutTextNormalCollapsesNewlines(t *testing.T) {
	n := render.Node{Text: "one\n\ntwo", Space: render.SpaceNormal}
	got := layoutText(n, 20)
	if len(got) != 1 || got[0] != "one two" {
		t.Errorf("layoutText = %q", got)
	}
}

func TestLayoutTextPreWrapKeepsIndentation(t *testing.T) {
	n := render.Node{Text: "roses\n   are red", Space: render.SpacePreWrap, Align: render.AlignLeft}
	got := layoutText(n, 20)
	if len(got) != 2 || got[1] != "   are red" {
		t.Errorf("indentation lost: %q", got)
	}
}

func TestLayoutTextJustifyLeavesLastLineRagged(t *testing.T) {
	n := render.Node{Text: "aa bb cc dd ee", Space: render.SpacePreLine, Align: render.AlignJustify}
	got := layoutText(n, 8)
	if len(got) != 2 {
		t.Fatalf("expected 2 lines, got %q", got)
	}
	if runewidth.StringWidth(got[0]) != 8 {
		t.Errorf("first line not justified: %q", got[0])
	}
	if got[1] != "ee" && got[1] != "dd ee" {
		t.Errorf("last line should stay ragged: %q", got[1])
	}
}

func TestCenterAndTrack(t *testing.T) {
	if got := center("ab", 6); got != "  ab" {
		t.Errorf("center = %q", got)
	}
	if got := center("", 6); got != "" {
		t.Errorf("center of empty = %q", got)
	}
	if got := track("ABC", 10); got != "A B C" {
		t.Errorf("track = %q", got)
	}
	if got := track("ABCDEF", 6); got != "ABCDEF" {
		t.Errorf("track should fall back when too wide, got %q", got)
	}
}
