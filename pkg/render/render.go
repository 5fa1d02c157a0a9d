package render

import (
	"fmt"
	"strings"

	"github.com/vanderheijden86/quire/pkg/book"
)

// Labels holds the fixed strings the layouts print.
type Labels struct {
	Prologue   string `yaml:"prologue,omitempty"`
	Epilogue   string `yaml:"epilogue,omitempty"`
	AuthorNote string `yaml:"author_note,omitempty"`
	Chapter    string `yaml:"chapter,omitempty"` // fmt pattern taking the chapter number
	Unnumbered string `yaml:"unnumbered,omitempty"`
}

// DefaultLabels returns the English labels.
func DefaultLabels() Labels {
	return Labels{
		Prologue:   "Prologue",
		Epilogue:   "Epilogue",
		AuthorNote: "Author's Note",
		Chapter:    "Chapter %d",
		Unnumbered: "***",
	}
}

// Merge fills empty fields of l from fallback.
func (l Labels) Merge(fallback Labels) Labels {
	pick := func(a, b string) string {
		if strings.TrimSpace(a) == "" {
			return b
		}
		return a
	}
	return Labels{
		Prologue:   pick(l.Prologue, fallback.Prologue),
		Epilogue:   pick(l.Epilogue, fallback.Epilogue),
		AuthorNote: pick(l.AuthorNote, fallback.AuthorNote),
		Chapter:    pick(l.Chapter, fallback.Chapter),
		Unnumbered: pick(l.Unnumbered, fallback.Unnumbered),
	}
}

func (l Labels) note(k book.NoteKind) string {
	switch k {
	case book.NotePrologue:
		return l.Prologue
	case book.NoteEpilogue:
		return l.Epilogue
	case book.NoteAuthor:
		return l.AuthorNote
	}
	return ""
}

func (l Labels) chapter(n *int) string {
	// Chapter 0 reads as unnumbered.
	if n == nil || *n == 0 {
		return l.Unnumbered
	}
	if !strings.Contains(l.Chapter, "%d") {
		return fmt.Sprintf("%s %d", l.Chapter, *n)
	}
	return fmt.Sprintf(l.Chapter, *n)
}

// Renderer turns pages into trees.
type Renderer struct {
	Labels Labels
}

// New returns a Renderer using labels, with DefaultLabels filling any gaps.
func New(labels Labels) Renderer {
	return Renderer{Labels: labels.Merge(DefaultLabels())}
}

// Render draws the default English layout for p.
func Render(p book.Page, active bool) Tree {
	return New(Labels{}).Render(p, active)
}

// Render builds the visual tree for p. The active flag only changes the
// tree's Visibility and Transition.
func (r Renderer) Render(p book.Page, active bool) Tree {
	t := Tree{PageID: p.ID}
	if active {
		t.Visibility = Visibility{Opacity: 1, Z: 10, Interactive: true}
		t.Transition = FadeIn
	}

	switch v := p.Variant().(type) {
	case book.Cover:
		t.Layout = LayoutCover
		t.Root = cover(v)
	case book.Dedication:
		t.Layout = LayoutDedication
		t.Root = dedication(v)
	case book.Note:
		t.Layout = LayoutNote
		t.Root = note(v, r.Labels.note(v.Kind))
	case book.Poem:
		t.Layout = LayoutPoem
		t.Root = poem(v)
	case book.Body:
		t.Layout = LayoutBody
		t.Root = body(v, r.Labels.chapter(v.Chapter))
	default:
		panic(fmt.Sprintf("render: unhandled page variant %T", v))
	}
	return t
}

func cover(v book.Cover) Node {
	var titles []Node
	if v.Subtitle != "" {
		titles = append(titles, Node{Role: RoleSubtitle, Text: v.Subtitle, Align: AlignCenter, Style: StyleUpper | StyleTracked | StyleMuted})
	}
	titles = append(titles, Node{Role: RoleTitle, Text: v.Title, Align: AlignCenter, Style: StyleBold | StyleTracked})

	return Node{
		Role:    RoleFrame,
		Align:   AlignCenter,
		VCenter: true,
		Children: []Node{
			{Role: RoleGroup, Align: AlignCenter, Children: titles},
			{Role: RoleDivider, Align: AlignCenter},
			{Role: RoleCaption, Text: v.Author, Align: AlignCenter},
		},
	}
}

func dedication(v book.Dedication) Node {
	return Node{
		Role:    RoleGroup,
		Align:   AlignCenter,
		VCenter: true,
		Children: []Node{
			{Role: RoleText, Text: v.Text, Align: AlignCenter, Space: SpacePreLine, Style: StyleItalic | StyleMuted},
		},
	}
}

func note(v book.Note, label string) Node {
	header := []Node{{Role: RoleLabel, Text: label, Style: StyleUpper | StyleTracked | StyleMuted}}
	if v.Title != "" {
		header = append(header, Node{Role: RoleHeading, Text: v.Title, Style: StyleBold})
	}
	return Node{
		Role: RoleGroup,
		Children: []Node{
			{Role: RoleGroup, Children: header},
			{Role: RoleDivider},
			{Role: RoleText, Text: v.Text, Align: AlignJustify, Space: SpacePreLine, Scroll: true},
		},
	}
}

func poem(v book.Poem) Node {
	return Node{
		Role:    RoleGroup,
		Align:   AlignCenter,
		VCenter: true,
		Children: []Node{
			{Role: RoleText, Text: v.Text, Align: AlignCenter, Space: SpacePreWrap},
		},
	}
}

func body(v book.Body, marker string) Node {
	return Node{
		Role: RoleGroup,
		Children: []Node{
			{Role: RoleMarker, Text: marker, Align: AlignCenter, Style: StyleMuted | StyleUnderline},
			{Role: RoleText, Text: v.Text, Align: AlignJustify, Space: SpacePreLine, Scroll: true},
			{Role: RoleFooter, Text: fmt.Sprintf("- %d -", v.Number), Align: AlignCenter, Style: StyleMuted},
		},
	}
}

// Stack is every page of a book rendered at once, in page order. Exactly one
// tree is active; the rest sit underneath, transparent and inert.
type Stack []Tree

// RenderAll renders every page of b with current as the active index.
func (r Renderer) RenderAll(b *book.Book, current int) Stack {
	pages := b.Pages()
	out := make(Stack, len(pages))
	for i, p := range pages {
		out[i] = r.Render(p, p.ID == current)
	}
	return out
}

// Top returns the visible tree: the highest Z with non-zero opacity.
func (s Stack) Top() (Tree, bool) {
	best := -1
	for i, t := range s {
		if t.Visibility.Opacity <= 0 {
			continue
		}
		if best < 0 || t.Visibility.Z > s[best].Visibility.Z {
			best = i
		}
	}
	if best < 0 {
		return Tree{}, false
	}
	return s[best], true
}

// ActiveCount counts interactive trees.
func (s Stack) ActiveCount() int {
	n := 0
	for _, t := range s {
		if t.Visibility.Interactive {
			n++
		}
	}
	return n
}
