// Package loader reads a book description from YAML or JSON and turns it into
// a validated content table.
package loader

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"

	"github.com/vanderheijden86/quire/pkg/book"
	"github.com/vanderheijden86/quire/pkg/debug"
)

//go:embed default_book.yaml
var defaultBook []byte

// ErrUnsupportedFormat is returned for file extensions other than YAML or JSON.
var ErrUnsupportedFormat = errors.New("unsupported book format")

// Format is the encoding of a book document.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatFor picks a format from a file extension.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
}

// pageDoc mirrors one entry of the on-disk pages list.
type pageDoc struct {
	ID       *int   `yaml:"id,omitempty" json:"id,omitempty"`
	Type     string `yaml:"type" json:"type"`
	Title    string `yaml:"title,omitempty" json:"title,omitempty"`
	Subtitle string `yaml:"subtitle,omitempty" json:"subtitle,omitempty"`
	Content  string `yaml:"content" json:"content"`
	Chapter  *int   `yaml:"chapter,omitempty" json:"chapter,omitempty"`
}

type bookDoc struct {
	Title  string    `yaml:"title" json:"title"`
	Author string    `yaml:"author,omitempty" json:"author,omitempty"`
	Pages  []pageDoc `yaml:"pages" json:"pages"`
}

// Warning is a non-fatal issue found while loading.
type Warning struct {
	Page    int
	Message string
}

func (w Warning) String() string {
	return fmt.Sprintf("page %d: %s", w.Page, w.Message)
}

// Result is a loaded book plus anything worth telling the author about.
type Result struct {
	Book     *book.Book
	Warnings []Warning
	Source   string
}

// Default returns the sample book compiled into the binary.
func Default() (Result, error) {
	res, err := Parse(defaultBook, FormatYAML)
	if err != nil {
		return Result{}, fmt.Errorf("embedded book: %w", err)
	}
	res.Source = "embedded"
	return res, nil
}

// Load reads and validates the book at path.
func Load(path string) (Result, error) {
	start := time.Now()
	format, err := FormatFor(path)
	if err != nil {
		return Result{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Result{}, fmt.Errorf("reading book: %w", err)
	}
	res, err := Parse(data, format)
	if err != nil {
		return Result{}, fmt.Errorf("%s: %w", path, err)
	}
	res.Source = path
	debug.LogTiming("loading "+filepath.Base(path), time.Since(start))
	debug.Logw("book loaded", "path", path, "pages", res.Book.Len(), "warnings", len(res.Warnings))
	return res, nil
}

// Parse decodes data in the given format and validates the result.
func Parse(data []byte, format Format) (Result, error) {
	var doc bookDoc
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return Result{}, fmt.Errorf("parsing yaml: %w", err)
		}
	case FormatJSON:
		if err := json.Unmarshal(data, &doc); err != nil {
			return Result{}, fmt.Errorf("parsing json: %w", err)
		}
	default:
		return Result{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	pages, warnings := convert(doc.Pages)
	b, err := book.New(clean(doc.Title), clean(doc.Author), pages)
	if err != nil {
		return Result{}, err
	}
	return Result{Book: b, Warnings: warnings}, nil
}

func convert(docs []pageDoc) ([]book.Page, []Warning) {
	pages := make([]book.Page, len(docs))
	var warnings []Warning
	for i, d := range docs {
		id := i
		if d.ID != nil {
			// Kept as given so book.Validate reports the mismatch.
			id = *d.ID
		}
		typ, ok := book.ParsePageType(d.Type)
		if !ok {
			msg := "missing type, treated as body"
			if strings.TrimSpace(d.Type) != "" {
				msg = fmt.Sprintf("unknown type %q, treated as body", d.Type)
			}
			warnings = append(warnings, Warning{Page: i, Message: msg})
		}
		if d.Chapter != nil && typ != book.TypeBody {
			warnings = append(warnings, Warning{Page: i, Message: fmt.Sprintf("chapter number ignored on %s page", typ)})
		}
		pages[i] = book.Page{
			ID:            id,
			Type:          typ,
			Title:         clean(d.Title),
			Subtitle:      clean(d.Subtitle),
			Content:       cleanContent(d.Content),
			ChapterNumber: d.Chapter,
		}
	}
	return pages, warnings
}

// clean normalises a single-line field.
func clean(s string) string {
	return strings.TrimSpace(norm.NFC.String(s))
}

// cleanContent normalises text but keeps interior line breaks and
// indentation untouched. Only trailing newlines (YAML block scalars add one)
// are dropped.
func cleanContent(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	return strings.TrimRight(norm.NFC.String(s), "\n")
}
