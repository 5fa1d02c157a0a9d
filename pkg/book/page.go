package book

import "strings"

// PageType selects the layout a page is drawn with.
type PageType string

const (
	TypeCover      PageType = "cover"
	TypeDedication PageType = "dedication"
	TypePrologue   PageType = "prologue"
	TypeEpilogue   PageType = "epilogue"
	TypeAuthorNote PageType = "author_note"
	TypePoem       PageType = "poem"
	TypeBody       PageType = "body"
)

// AllPageTypes lists every page type in declaration order.
var AllPageTypes = []PageType{
	TypeCover,
	TypeDedication,
	TypePrologue,
	TypeEpilogue,
	TypeAuthorNote,
	TypePoem,
	TypeBody,
}

// ParsePageType maps a raw type string onto a PageType. Matching ignores case
// and treats '-', '_' and ' ' as the same separator. Anything unrecognised
// (including the empty string) becomes TypeBody with ok=false so the caller
// can decide whether to warn.
func ParsePageType(s string) (PageType, bool) {
	norm := strings.ToLower(strings.TrimSpace(s))
	norm = strings.NewReplacer("-", "_", " ", "_").Replace(norm)
	for _, t := range AllPageTypes {
		if norm == string(t) {
			return t, true
		}
	}
	return TypeBody, false
}

// IsValid reports whether t is one of the declared page types.
func (t PageType) IsValid() bool {
	for _, known := range AllPageTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Page is one record of the content table.
type Page struct {
	ID            int      // Position in the book, zero-based
	Type          PageType // Layout selector
	Title         string   // Cover and note pages
	Subtitle      string   // Cover only
	Content       string   // Author name on the cover, free text elsewhere
	ChapterNumber *int     // Body only; nil renders the neutral marker
}

// Number is the human page number shown in footers and the header counter.
func (p Page) Number() int {
	return p.ID + 1
}

// NoteKind distinguishes the three narrative-note pages that share a layout.
type NoteKind int

const (
	NotePrologue NoteKind = iota
	NoteEpilogue
	NoteAuthor
)

// Variant is the closed set of page layouts. Only the types declared in this
// package implement it.
type Variant interface {
	variant()
}

type Cover struct {
	Subtitle string
	Title    string
	Author   string
}

type Dedication struct {
	Text string
}

type Note struct {
	Kind  NoteKind
	Title string
	Text  string
}

type Poem struct {
	Text string
}

// Body is narrative text. It is also where an unrecognised type ends up, but
// only after ParsePageType has mapped it to TypeBody explicitly.
type Body struct {
	Chapter *int
	Text    string
	Number  int
}

func (Cover) variant()      {}
func (Dedication) variant() {}
func (Note) variant()       {}
func (Poem) variant()       {}
func (Body) variant()       {}

// Variant projects the page onto its layout.
func (p Page) Variant() Variant {
	//exhaustive:enforce
	switch p.Type {
	case TypeCover:
		return Cover{Subtitle: p.Subtitle, Title: p.Title, Author: p.Content}
	case TypeDedication:
		return Dedication{Text: p.Content}
	case TypePrologue:
		return Note{Kind: NotePrologue, Title: p.Title, Text: p.Content}
	case TypeEpilogue:
		return Note{Kind: NoteEpilogue, Title: p.Title, Text: p.Content}
	case TypeAuthorNote:
		return Note{Kind: NoteAuthor, Title: p.Title, Text: p.Content}
	case TypePoem:
		return Poem{Text: p.Content}
	case TypeBody:
		return Body{Chapter: p.ChapterNumber, Text: p.Content, Number: p.Number()}
	}
	// A zero-value Type never leaves the loader, but a Page built by hand
	// might carry one.
	return Body{Chapter: p.ChapterNumber, Text: p.Content, Number: p.Number()}
}
