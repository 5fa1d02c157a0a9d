package book

import (
	"errors"
	"strings"
	"testing"

	"go.uber.org/multierr"
)

func intPtr(n int) *int { return &n }

func samplePages() []Page {
	return []Page{
		{ID: 0, Type: TypeCover, Title: "T", Subtitle: "S", Content: "Author"},
		{ID: 1, Type: TypeDedication, Content: "For you"},
		{ID: 2, Type: TypeBody, ChapterNumber: intPtr(1), Content: "Once."},
	}
}

func TestNew_Valid(t *testing.T) {
	b, err := New("Book", "Someone", samplePages())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.Len() != 3 {
		t.Errorf("expected 3 pages, got %d", b.Len())
	}
	if b.LastIndex() != 2 {
		t.Errorf("expected last index 2, got %d", b.LastIndex())
	}
	if b.Title() != "Book" || b.Author() != "Someone" {
		t.Errorf("unexpected metadata: %q / %q", b.Title(), b.Author())
	}
	p, ok := b.Page(2)
	if !ok || p.Number() != 3 {
		t.Errorf("expected page 2 with number 3, got %+v ok=%v", p, ok)
	}
	if _, ok := b.Page(3); ok {
		t.Error("expected out-of-range lookup to fail")
	}
	if _, ok := b.Page(-1); ok {
		t.Error("expected negative lookup to fail")
	}
}

func TestNew_CopiesInput(t *testing.T) {
	pages := samplePages()
	b, err := New("Book", "", pages)
	if err != nil {
		t.Fatal(err)
	}
	pages[1].Content = "mutated"
	*pages[2].ChapterNumber = 99

	p, _ := b.Page(1)
	if p.Content != "For you" {
		t.Errorf("book shares backing array with caller: %q", p.Content)
	}
	p, _ = b.Page(2)
	if *p.ChapterNumber != 1 {
		t.Errorf("book shares chapter pointer with caller: %d", *p.ChapterNumber)
	}

	out := b.Pages()
	out[0].Title = "changed"
	p, _ = b.Page(0)
	if p.Title != "T" {
		t.Error("Pages() must return a copy")
	}
}

func TestNew_Empty(t *testing.T) {
	_, err := New("", "", nil)
	if !errors.Is(err, ErrInvalidBook) {
		t.Fatalf("expected ErrInvalidBook, got %v", err)
	}
}

func TestNew_CollectsAllViolations(t *testing.T) {
	pages := []Page{
		{ID: 0, Type: TypeCover, Content: "Author"},  // no title
		{ID: 5, Type: TypeBody, Content: "x"},        // id mismatch
		{ID: 2, Type: PageType("bogus"), Content: ""}, // bad type, no content
	}
	_, err := New("", "", pages)
	if err == nil {
		t.Fatal("expected an error")
	}
	errs := multierr.Errors(err)
	if len(errs) != 4 {
		t.Fatalf("expected 4 violations, got %d: %v", len(errs), err)
	}
	for _, e := range errs {
		if !errors.Is(e, ErrInvalidBook) {
			t.Errorf("violation does not wrap ErrInvalidBook: %v", e)
		}
	}
	if !strings.Contains(err.Error(), "position 1 has id 5") {
		t.Errorf("missing id mismatch message: %v", err)
	}
}

func TestParsePageType(t *testing.T) {
	tests := []struct {
		in     string
		want   PageType
		wantOK bool
	}{
		{"COVER", TypeCover, true},
		{"dedication", TypeDedication, true},
		{"Prologue", TypePrologue, true},
		{"EPILOGUE", TypeEpilogue, true},
		{"AUTHOR_NOTE", TypeAuthorNote, true},
		{"author-note", TypeAuthorNote, true},
		{"Author Note", TypeAuthorNote, true},
		{"poem", TypePoem, true},
		{"BODY", TypeBody, true},
		{"", TypeBody, false},
		{"appendix", TypeBody, false},
	}
	for _, tt := range tests {
		got, ok := ParsePageType(tt.in)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("ParsePageType(%q) = %q,%v want %q,%v", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestVariant_EveryTypeHasLayout(t *testing.T) {
	for _, typ := range AllPageTypes {
		v := Page{ID: 4, Type: typ, Title: "t", Content: "c"}.Variant()
		if v == nil {
			t.Errorf("type %q has no variant", typ)
		}
	}
}

func TestVariant_Mapping(t *testing.T) {
	cover := Page{Type: TypeCover, Title: "T", Subtitle: "S", Content: "A"}.Variant()
	if c, ok := cover.(Cover); !ok || c.Title != "T" || c.Subtitle != "S" || c.Author != "A" {
		t.Errorf("unexpected cover variant: %#v", cover)
	}

	kinds := map[PageType]NoteKind{
		TypePrologue:   NotePrologue,
		TypeEpilogue:   NoteEpilogue,
		TypeAuthorNote: NoteAuthor,
	}
	for typ, kind := range kinds {
		v := Page{Type: typ, Content: "x"}.Variant()
		n, ok := v.(Note)
		if !ok || n.Kind != kind {
			t.Errorf("%q: expected note kind %d, got %#v", typ, kind, v)
		}
	}

	body := Page{ID: 6, Type: TypeBody, ChapterNumber: intPtr(3), Content: "x"}.Variant()
	if b, ok := body.(Body); !ok || b.Number != 7 || b.Chapter == nil || *b.Chapter != 3 {
		t.Errorf("unexpected body variant: %#v", body)
	}

	// Hand-built pages with no type still land on Body.
	if _, ok := (Page{Content: "x"}).Variant().(Body); !ok {
		t.Error("expected zero type to render as body")
	}
}
