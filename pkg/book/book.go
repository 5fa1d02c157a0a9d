// Package book holds the content table: an ordered, immutable list of pages
// fixed before the reader starts.
package book

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/multierr"
)

// ErrInvalidBook is wrapped by every validation failure returned from New.
var ErrInvalidBook = errors.New("invalid book")

// Book is the content table. The zero value is not usable; build one with New.
type Book struct {
	title  string
	author string
	pages  []Page
}

// New validates pages and returns a Book that owns a private copy of them.
// All violations are reported together.
func New(title, author string, pages []Page) (*Book, error) {
	if err := Validate(pages); err != nil {
		return nil, err
	}
	cp := make([]Page, len(pages))
	copy(cp, pages)
	for i := range cp {
		if cp[i].ChapterNumber != nil {
			n := *cp[i].ChapterNumber
			cp[i].ChapterNumber = &n
		}
	}
	return &Book{title: title, author: author, pages: cp}, nil
}

// Validate checks the content-table invariants without building a Book.
func Validate(pages []Page) error {
	if len(pages) == 0 {
		return fmt.Errorf("%w: no pages", ErrInvalidBook)
	}
	var err error
	for i, p := range pages {
		if p.ID != i {
			err = multierr.Append(err, fmt.Errorf("%w: page at position %d has id %d", ErrInvalidBook, i, p.ID))
		}
		if !p.Type.IsValid() {
			err = multierr.Append(err, fmt.Errorf("%w: page %d has unknown type %q", ErrInvalidBook, i, p.Type))
		}
		if p.Type == TypeCover && strings.TrimSpace(p.Title) == "" {
			err = multierr.Append(err, fmt.Errorf("%w: cover page %d has no title", ErrInvalidBook, i))
		}
		if strings.TrimSpace(p.Content) == "" {
			err = multierr.Append(err, fmt.Errorf("%w: page %d has no content", ErrInvalidBook, i))
		}
	}
	return err
}

// Title is the book title shown next to the logo.
func (b *Book) Title() string { return b.title }

// Author is the book author, if known.
func (b *Book) Author() string { return b.author }

// Len is the number of pages, the navigation bound.
func (b *Book) Len() int { return len(b.pages) }

// LastIndex is Len()-1.
func (b *Book) LastIndex() int { return len(b.pages) - 1 }

// Page returns the page at index i.
func (b *Book) Page(i int) (Page, bool) {
	if i < 0 || i >= len(b.pages) {
		return Page{}, false
	}
	return b.pages[i], true
}

// Pages returns a copy of every page in order.
func (b *Book) Pages() []Page {
	out := make([]Page, len(b.pages))
	copy(out, b.pages)
	return out
}
