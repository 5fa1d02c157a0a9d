// Package render maps a page onto a visual tree. Rendering is pure: the same
// page and active flag always produce the same tree, and nothing here touches
// the terminal.
package render

import "time"

// Role names what a node is for; the painter decides how it looks.
type Role int

const (
	RoleFrame    Role = iota // Bordered box filling the paper
	RoleGroup                // Layout-only container
	RoleSubtitle             // Cover subtitle
	RoleTitle                // Cover title
	RoleDivider              // Decorative rule
	RoleCaption              // Cover author line
	RoleLabel                // Small caps header on note pages
	RoleHeading              // Note page title
	RoleText                 // Running text
	RoleMarker               // Chapter marker on body pages
	RoleFooter               // Decorative page number
)

var roleNames = [...]string{
	RoleFrame:    "frame",
	RoleGroup:    "group",
	RoleSubtitle: "subtitle",
	RoleTitle:    "title",
	RoleDivider:  "divider",
	RoleCaption:  "caption",
	RoleLabel:    "label",
	RoleHeading:  "heading",
	RoleText:     "text",
	RoleMarker:   "marker",
	RoleFooter:   "footer",
}

func (r Role) String() string {
	if int(r) >= 0 && int(r) < len(roleNames) {
		return roleNames[r]
	}
	return "unknown"
}

// Align is the horizontal alignment of a node's text.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignJustify
)

// Space controls how embedded whitespace survives.
type Space int

const (
	// SpaceNormal collapses every whitespace run, newlines included.
	SpaceNormal Space = iota
	// SpacePreLine keeps newlines but collapses runs of spaces.
	SpacePreLine
	// SpacePreWrap keeps all whitespace and only wraps overlong lines.
	SpacePreWrap
)

// Style is a set of presentational flags.
type Style uint8

const (
	StyleItalic Style = 1 << iota
	StyleBold
	StyleUpper
	StyleMuted
	StyleUnderline
	StyleTracked // letter-spaced
)

// Has reports whether every flag in f is set.
func (s Style) Has(f Style) bool { return s&f == f }

// Node is one element of the visual tree.
type Node struct {
	Role     Role
	Text     string
	Align    Align
	Space    Space
	Style    Style
	Scroll   bool // Overflow scrolls instead of clipping
	VCenter  bool // Children are centred vertically in the available height
	Children []Node
}

// Layout identifies which of the page layouts produced a tree.
type Layout int

const (
	LayoutCover Layout = iota
	LayoutDedication
	LayoutNote
	LayoutPoem
	LayoutBody
)

func (l Layout) String() string {
	switch l {
	case LayoutCover:
		return "cover"
	case LayoutDedication:
		return "dedication"
	case LayoutNote:
		return "note"
	case LayoutPoem:
		return "poem"
	case LayoutBody:
		return "body"
	}
	return "unknown"
}

// Visibility is the only part of a tree the active flag affects.
type Visibility struct {
	Opacity     float64
	Z           int
	Interactive bool
}

// Transition is the fade applied when a page becomes active.
type Transition struct {
	Duration time.Duration
	Delay    time.Duration
}

// FadeIn is the transition every page uses on activation.
var FadeIn = Transition{Duration: 700 * time.Millisecond, Delay: 200 * time.Millisecond}

// Tree is a rendered page.
type Tree struct {
	PageID     int
	Layout     Layout
	Visibility Visibility
	Transition Transition // Zero for inactive pages
	Root       Node
}

// Find returns every node under root (root included) with the given role,
// in depth-first order.
func Find(root Node, role Role) []Node {
	var out []Node
	var walk func(n Node)
	walk = func(n Node) {
		if n.Role == role {
			out = append(out, n)
		}
		for _, c := range n.Children {
			walk(c)
		}
	}
	walk(root)
	return out
}

// First returns the first node with the given role.
func First(root Node, role Role) (Node, bool) {
	found := Find(root, role)
	if len(found) == 0 {
		return Node{}, false
	}
	return found[0], true
}
