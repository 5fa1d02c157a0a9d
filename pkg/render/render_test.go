package render

import (
	"reflect"
	"testing"

	"github.com/vanderheijden86/quire/pkg/book"
)

func intPtr(n int) *int { return &n }

func TestCoverWithSubtitle(t *testing.T) {
	p := book.Page{ID: 0, Type: book.TypeCover, Title: "T", Subtitle: "S", Content: "Author"}
	tree := Render(p, true)

	if tree.Layout != LayoutCover {
		t.Fatalf("expected cover layout, got %v", tree.Layout)
	}
	if tree.Root.Role != RoleFrame {
		t.Errorf("expected frame root, got %v", tree.Root.Role)
	}
	if n, ok := First(tree.Root, RoleSubtitle); !ok || n.Text != "S" {
		t.Errorf("expected subtitle S, got %+v ok=%v", n, ok)
	}
	if n, ok := First(tree.Root, RoleTitle); !ok || n.Text != "T" {
		t.Errorf("expected title T, got %+v ok=%v", n, ok)
	}
	if n, ok := First(tree.Root, RoleCaption); !ok || n.Text != "Author" {
		t.Errorf("expected caption Author, got %+v ok=%v", n, ok)
	}
	if len(Find(tree.Root, RoleDivider)) != 1 {
		t.Error("expected one divider on the cover")
	}
}

func TestCoverWithoutSubtitle(t *testing.T) {
	p := book.Page{ID: 0, Type: book.TypeCover, Title: "T", Content: "Author"}
	tree := Render(p, true)

	if got := Find(tree.Root, RoleSubtitle); len(got) != 0 {
		t.Errorf("expected no subtitle node, got %d", len(got))
	}
	if n, ok := First(tree.Root, RoleTitle); !ok || n.Text != "T" {
		t.Errorf("title missing without subtitle: %+v", n)
	}
}

func TestBodyMarkers(t *testing.T) {
	numbered := Render(book.Page{ID: 4, Type: book.TypeBody, ChapterNumber: intPtr(3), Content: "x"}, true)
	plain := Render(book.Page{ID: 5, Type: book.TypeBody, Content: "x"}, true)

	m1, _ := First(numbered.Root, RoleMarker)
	m2, _ := First(plain.Root, RoleMarker)
	if m1.Text != "Chapter 3" {
		t.Errorf("expected 'Chapter 3', got %q", m1.Text)
	}
	if m2.Text != "***" {
		t.Errorf("expected neutral marker, got %q", m2.Text)
	}
	if m1.Text == m2.Text {
		t.Error("numbered and unnumbered markers must differ")
	}

	zero := Render(book.Page{ID: 6, Type: book.TypeBody, ChapterNumber: intPtr(0), Content: "x"}, true)
	if m3, _ := First(zero.Root, RoleMarker); m3.Text != "***" {
		t.Errorf("chapter 0 should use the neutral marker, got %q", m3.Text)
	}

	footer, ok := First(numbered.Root, RoleFooter)
	if !ok || footer.Text != "- 5 -" {
		t.Errorf("expected footer '- 5 -', got %q", footer.Text)
	}
	text, _ := First(numbered.Root, RoleText)
	if !text.Scroll || text.Align != AlignJustify || text.Space != SpacePreLine {
		t.Errorf("body text should scroll, justify and keep lines: %+v", text)
	}
}

func TestNoteLabels(t *testing.T) {
	tests := []struct {
		typ  book.PageType
		want string
	}{
		{book.TypePrologue, "Prologue"},
		{book.TypeEpilogue, "Epilogue"},
		{book.TypeAuthorNote, "Author's Note"},
	}
	for _, tt := range tests {
		tree := Render(book.Page{Type: tt.typ, Title: "Heading", Content: "x"}, true)
		if tree.Layout != LayoutNote {
			t.Errorf("%s: expected note layout, got %v", tt.typ, tree.Layout)
		}
		label, _ := First(tree.Root, RoleLabel)
		if label.Text != tt.want {
			t.Errorf("%s: label = %q, want %q", tt.typ, label.Text, tt.want)
		}
		if h, ok := First(tree.Root, RoleHeading); !ok || h.Text != "Heading" {
			t.Errorf("%s: heading missing", tt.typ)
		}
	}

	untitled := Render(book.Page{Type: book.TypeEpilogue, Content: "x"}, true)
	if len(Find(untitled.Root, RoleHeading)) != 0 {
		t.Error("note without title should have no heading")
	}
}

func TestDedicationAndPoem(t *testing.T) {
	ded := Render(book.Page{Type: book.TypeDedication, Title: "ignored", Content: "for M."}, true)
	if ded.Layout != LayoutDedication {
		t.Fatalf("expected dedication layout, got %v", ded.Layout)
	}
	if len(Find(ded.Root, RoleHeading))+len(Find(ded.Root, RoleTitle)) != 0 {
		t.Error("dedication must not show a title")
	}
	text, _ := First(ded.Root, RoleText)
	if !text.Style.Has(StyleItalic) || text.Align != AlignCenter {
		t.Errorf("dedication text should be centred italic: %+v", text)
	}

	verse := "  the sea\n\n    and   the sky"
	poem := Render(book.Page{Type: book.TypePoem, Content: verse}, true)
	text, _ = First(poem.Root, RoleText)
	if text.Text != verse {
		t.Errorf("poem text altered: %q", text.Text)
	}
	if text.Space != SpacePreWrap || !poem.Root.VCenter {
		t.Errorf("poem must preserve whitespace and centre vertically: %+v", poem.Root)
	}
}

func TestActiveFlagOnlyChangesVisibility(t *testing.T) {
	p := book.Page{ID: 2, Type: book.TypeBody, ChapterNumber: intPtr(1), Content: "line one\nline two"}
	on := Render(p, true)
	off := Render(p, false)

	if !reflect.DeepEqual(on.Root, off.Root) {
		t.Error("active flag changed content")
	}
	if on.Visibility != (Visibility{Opacity: 1, Z: 10, Interactive: true}) {
		t.Errorf("unexpected active visibility %+v", on.Visibility)
	}
	if off.Visibility != (Visibility{}) {
		t.Errorf("unexpected inactive visibility %+v", off.Visibility)
	}
	if on.Transition != FadeIn || off.Transition != (Transition{}) {
		t.Error("only the active page fades in")
	}
}

func TestRenderIsIdempotent(t *testing.T) {
	p := book.Page{ID: 0, Type: book.TypeCover, Title: "T", Subtitle: "S", Content: "A"}
	if !reflect.DeepEqual(Render(p, true), Render(p, true)) {
		t.Error("two renders of the same page differ")
	}
}

func TestCustomLabels(t *testing.T) {
	r := New(Labels{Chapter: "제 %d 장"})
	tree := r.Render(book.Page{Type: book.TypeBody, ChapterNumber: intPtr(2), Content: "x"}, true)
	m, _ := First(tree.Root, RoleMarker)
	if m.Text != "제 2 장" {
		t.Errorf("custom chapter label = %q", m.Text)
	}
	// Untouched labels fall back to defaults.
	tree = r.Render(book.Page{Type: book.TypePrologue, Content: "x"}, true)
	l, _ := First(tree.Root, RoleLabel)
	if l.Text != "Prologue" {
		t.Errorf("expected default prologue label, got %q", l.Text)
	}

	bare := New(Labels{Chapter: "Part"})
	tree = bare.Render(book.Page{Type: book.TypeBody, ChapterNumber: intPtr(4), Content: "x"}, true)
	m, _ = First(tree.Root, RoleMarker)
	if m.Text != "Part 4" {
		t.Errorf("pattern without verb should append the number, got %q", m.Text)
	}
}

func TestRenderAllStack(t *testing.T) {
	b, err := book.New("B", "", []book.Page{
		{ID: 0, Type: book.TypeCover, Title: "T", Content: "A"},
		{ID: 1, Type: book.TypePoem, Content: "p"},
		{ID: 2, Type: book.TypeBody, Content: "b"},
	})
	if err != nil {
		t.Fatal(err)
	}
	r := New(Labels{})
	for cur := 0; cur < b.Len(); cur++ {
		stack := r.RenderAll(b, cur)
		if len(stack) != b.Len() {
			t.Fatalf("expected every page in the stack, got %d", len(stack))
		}
		if stack.ActiveCount() != 1 {
			t.Fatalf("expected one active page, got %d", stack.ActiveCount())
		}
		top, ok := stack.Top()
		if !ok || top.PageID != cur {
			t.Errorf("top of stack = %d, want %d", top.PageID, cur)
		}
	}
}

func TestStackTopEmpty(t *testing.T) {
	if _, ok := (Stack{}).Top(); ok {
		t.Error("empty stack has no top")
	}
}

func TestNamesStrings(t *testing.T) {
	if RoleMarker.String() != "marker" || Role(99).String() != "unknown" {
		t.Error("role names wrong")
	}
	if LayoutPoem.String() != "poem" || Layout(99).String() != "unknown" {
		t.Error("layout names wrong")
	}
}
