package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/vanderheijden86/quire/pkg/book"
	"github.com/vanderheijden86/quire/pkg/config"
	"github.com/vanderheijden86/quire/pkg/debug"
	"github.com/vanderheijden86/quire/pkg/nav"
	"github.com/vanderheijden86/quire/pkg/progress"
	"github.com/vanderheijden86/quire/pkg/render"
)

// Sizes used before the first WindowSizeMsg arrives.
const (
	defaultWidth  = 80
	defaultHeight = 24
)

const (
	logoGlyph     = "📖"
	statusTimeout = 3 * time.Second
)

// writeClipboard is swapped out in tests.
var writeClipboard = clipboard.WriteAll

// fadeDoneMsg ends the page-turn fade started with the matching generation.
type fadeDoneMsg struct{ gen int }

// clearStatusMsg clears the status line set with the matching generation.
type clearStatusMsg struct{ gen int }

// Model is the reader's bubbletea model. It owns the navigation controller;
// every page turn goes through it.
type Model struct {
	book     *book.Book
	nav      *nav.Controller
	renderer render.Renderer
	theme    Theme
	keys     KeyMap
	cfg      config.ReaderConfig

	width, height int
	geo           Geometry
	viewport      viewport.Model
	page          pageView

	// Scroll position per page id, kept for the session.
	offsets map[int]int

	fading  bool
	fadeGen int

	showHelp  bool
	helpView  string
	helpStyle string

	statusMsg     string
	statusIsError bool
	statusGen     int
}

// NewModel creates a reader for b, opened at the cover.
func NewModel(b *book.Book, cfg config.Config) Model {
	cfg.Validate()
	keys := DefaultKeyMap()
	vp := viewport.New(1, 1)
	vp.KeyMap = keys.viewportKeys()

	m := Model{
		book:      b,
		nav:       nav.NewController(b.Len()),
		renderer:  render.New(cfg.Labels),
		theme:     DefaultTheme(lipgloss.DefaultRenderer()),
		keys:      keys,
		cfg:       cfg.Reader,
		viewport:  vp,
		offsets:   make(map[int]int),
		fading:    cfg.Reader.FadeEnabled(),
		helpStyle: cfg.Reader.HelpStyle,
	}
	m.resize(defaultWidth, defaultHeight)
	return m
}

// WithTheme returns a copy of m drawing with t.
func (m Model) WithTheme(t Theme) Model {
	m.theme = t
	m.saveOffset()
	m.relayout()
	return m
}

// Init starts the opening fade.
func (m Model) Init() tea.Cmd {
	if !m.fading {
		return nil
	}
	return m.fadeCmd()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case fadeDoneMsg:
		if msg.gen == m.fadeGen && m.fading {
			m.fading = false
			m.saveOffset()
			m.relayout()
		}
		return m, nil

	case clearStatusMsg:
		if msg.gen == m.statusGen {
			m.statusMsg = ""
			m.statusIsError = false
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		switch {
		case key.Matches(msg, m.keys.Help), msg.String() == "esc":
			m.showHelp = false
			return m, nil
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		}
		return m, nil
	}

	// Page turns are consumed here so the viewport never sees them.
	if a, ok := nav.KeyAction(msg.String()); ok {
		return m.turn(a)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		m.helpView = renderHelp(m.keys, m.theme, m.book.Title(), m.helpStyle, m.width, max(m.height-2, 0))
		return m, nil
	case key.Matches(msg, m.keys.Copy):
		return m.copyPage()
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		return m, nil
	}
	if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
		if a := m.Zones().Hit(msg.X, msg.Y); a != nav.ActionNone {
			return m.turn(a)
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// turn applies a navigation action and redraws when the page changed.
func (m Model) turn(a nav.Action) (tea.Model, tea.Cmd) {
	prev := m.nav.Current()
	yoff := m.viewport.YOffset
	changed := m.nav.Dispatch(a)
	debug.LogIf(!changed, "%s ignored at page %d", a, prev)
	if !changed {
		return m, nil
	}
	m.offsets[prev] = yoff
	m.statusMsg = ""
	m.statusIsError = false

	var cmd tea.Cmd
	m.fadeGen++
	m.fading = m.cfg.FadeEnabled()
	if m.fading {
		cmd = m.fadeCmd()
	}
	m.relayout()
	return m, cmd
}

func (m Model) copyPage() (tea.Model, tea.Cmd) {
	p, ok := m.book.Page(m.nav.Current())
	if !ok {
		return m, nil
	}
	if err := writeClipboard(p.Content); err != nil {
		debug.Logw("clipboard write failed", "page", p.ID, "err", err)
		return m.setStatus(fmt.Sprintf("Clipboard error: %v", err), true)
	}
	return m.setStatus(fmt.Sprintf("Copied page %d", p.Number()), false)
}

func (m Model) setStatus(s string, isErr bool) (tea.Model, tea.Cmd) {
	m.statusMsg = s
	m.statusIsError = isErr
	m.statusGen++
	gen := m.statusGen
	return m, tea.Tick(statusTimeout, func(time.Time) tea.Msg { return clearStatusMsg{gen: gen} })
}

// fadeCmd ends the fade halfway through the transition, which is where the
// page stops looking faint.
func (m Model) fadeCmd() tea.Cmd {
	gen := m.fadeGen
	d := render.FadeIn.Delay + render.FadeIn.Duration/2
	return tea.Tick(d, func(time.Time) tea.Msg { return fadeDoneMsg{gen: gen} })
}

func (m *Model) saveOffset() {
	m.offsets[m.nav.Current()] = m.viewport.YOffset
}

func (m *Model) resize(w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	m.saveOffset()
	m.width, m.height = w, h
	m.geo = Layout(w, h, m.cfg)
	debug.Log("resize %dx%d: paper %dx%d at (%d,%d)", w, h, m.geo.PaperW, m.geo.PaperH, m.geo.PaperX, m.geo.PaperY)
	m.relayout()
	if m.showHelp {
		m.helpView = renderHelp(m.keys, m.theme, m.book.Title(), m.helpStyle, w, max(h-2, 0))
	}
}

// relayout re-renders the book and paints the active page into the paper.
func (m *Model) relayout() {
	top, ok := m.renderer.RenderAll(m.book, m.nav.Current()).Top()
	if !ok {
		m.page = pageView{}
		return
	}
	p := painter{theme: m.theme, width: m.geo.InnerW, height: m.geo.InnerH, faint: m.fading}
	m.page = p.paint(top)

	m.viewport.Width = m.geo.InnerW
	m.viewport.Height = m.page.scrollHeight(m.geo.InnerH)
	m.viewport.SetContent(strings.Join(m.page.scroll, "\n"))
	m.viewport.SetYOffset(m.offsets[top.PageID])
}

// Current returns the active page index.
func (m Model) Current() int { return m.nav.Current() }

// State returns the navigation state.
func (m Model) State() nav.State { return m.nav.State() }

// Affordances reports which page-turn chevrons are shown.
func (m Model) Affordances() (prev, next bool) {
	if !m.cfg.Chevrons() {
		return false, false
	}
	s := m.nav.State()
	return !s.AtStart(), !s.AtEnd()
}

// Geometry returns the current screen layout.
func (m Model) Geometry() Geometry { return m.geo }

// ShowingHelp reports whether the help overlay is open.
func (m Model) ShowingHelp() bool { return m.showHelp }

// Status returns the status message, if any.
func (m Model) Status() string { return m.statusMsg }

// Fading reports whether the active page is still fading in.
func (m Model) Fading() bool { return m.fading }

// ScrollOffset returns the viewport's scroll position on the active page.
func (m Model) ScrollOffset() int { return m.viewport.YOffset }

// Zones returns the clickable regions for the current layout.
func (m Model) Zones() nav.Zones {
	return nav.Zones{
		Width:     m.width,
		Height:    m.height,
		Band:      m.geo.Band,
		LogoRow:   m.geo.HeaderRow,
		LogoStart: 1,
		LogoWidth: runewidth.StringWidth(m.logo()),
		InertRow:  m.geo.ProgressRow,
	}
}

// logo is the clickable title in the header.
func (m Model) logo() string {
	title := m.book.Title()
	if title == "" {
		return logoGlyph
	}
	limit := max(m.width/2-4, 4)
	return logoGlyph + " " + runewidth.Truncate(title, limit, "…")
}

func (m Model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}
	rows := make([]string, 0, m.height)
	rows = append(rows, m.headerView())

	if m.showHelp {
		rows = append(rows, strings.Split(m.helpView, "\n")...)
	} else {
		rows = append(rows, m.stageView()...)
	}
	for len(rows) < m.height-1 {
		rows = append(rows, strings.Repeat(" ", m.width))
	}
	rows = rows[:m.height-1]
	rows = append(rows, m.progressView())
	return strings.Join(rows, "\n")
}

func (m Model) headerView() string {
	s := m.nav.State()
	logoStyle := m.theme.style().Foreground(m.theme.Ink).Bold(true)
	counterStyle := m.theme.style().Foreground(m.theme.Faint)

	left := " " + logoStyle.Render(m.logo())
	right := counterStyle.Render(progress.Label(s.Current, s.Total)) + " "

	mid := ""
	if m.statusMsg != "" {
		st := m.theme.style().Foreground(m.theme.Muted).Italic(true)
		if m.statusIsError {
			st = m.theme.style().Foreground(m.theme.Ink).Bold(true)
		}
		mid = st.Render(m.statusMsg)
	}

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		return padStyled(left, m.width)
	}
	midW := lipgloss.Width(mid)
	if midW == 0 || midW > gap-2 {
		return left + strings.Repeat(" ", gap) + right
	}
	l := (gap - midW) / 2
	return left + strings.Repeat(" ", l) + mid + strings.Repeat(" ", gap-midW-l) + right
}

// stageView draws the rows between header and progress bar: the bands with
// their chevrons and the paper.
func (m Model) stageView() []string {
	g := m.geo
	inner := m.page.compose(m.viewport.View(), g.InnerW, g.InnerH)

	binding := m.theme.style().Foreground(m.theme.Binding).Render("▏")
	chevron := m.theme.style().Foreground(m.theme.Muted)
	prev, next := m.Affordances()
	leftCol := g.Band / 2
	rightCol := g.Width - g.Band + g.Band/2

	rows := make([]string, 0, max(g.Height-2, 0))
	for y := 1; y < g.ProgressRow; y++ {
		leftW := g.PaperX
		rightW := max(g.Width-g.PaperX-g.PaperW, 0)
		left := strings.Repeat(" ", leftW)
		right := strings.Repeat(" ", rightW)
		if y == g.MiddleRow() {
			if prev && leftCol < leftW {
				left = strings.Repeat(" ", leftCol) + chevron.Render("‹") + strings.Repeat(" ", leftW-leftCol-1)
			}
			if off := rightCol - (g.PaperX + g.PaperW); next && off >= 0 && off < rightW {
				right = strings.Repeat(" ", off) + chevron.Render("›") + strings.Repeat(" ", rightW-off-1)
			}
		}

		paper := strings.Repeat(" ", g.PaperW)
		if y >= g.PaperY && y < g.PaperY+g.PaperH {
			line := strings.Repeat(" ", g.InnerW)
			if r := y - g.InnerY; r >= 0 && r < len(inner) {
				line = inner[r]
			}
			pad := strings.Repeat(" ", g.PadX())
			paper = padStyled(binding+pad+line+pad, g.PaperW)
		}
		rows = append(rows, left+paper+right)
	}
	return rows
}

func (m Model) progressView() string {
	s := m.nav.State()
	n := progress.Filled(s.Current, s.Total, m.width)
	fill := m.theme.style().Foreground(m.theme.Fill).Render(strings.Repeat("━", n))
	track := m.theme.style().Foreground(m.theme.Track).Render(strings.Repeat("━", m.width-n))
	return fill + track
}
