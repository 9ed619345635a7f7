// Package bubbletea implements the interactive changeset viewer.
package bubbletea

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/jamesharris-garmin/diffrec"
	"github.com/muesli/termenv"
)

// Compile-time interface verification.
var _ diffrec.Viewer = (*Viewer)(nil)

// Viewer displays a changeset in an interactive terminal UI.
type Viewer struct {
	// HunkParser, when set, structures record bodies into hunks for
	// rendering; without it bodies are shown raw.
	HunkParser diffrec.HunkParser

	// Tokenizer and Detector, when both set, syntax-highlight context
	// lines.
	Tokenizer diffrec.Tokenizer
	Detector  diffrec.LanguageDetector
}

// View displays the changeset and blocks until the user exits.
func (v *Viewer) View(ctx context.Context, cs *diffrec.ChangeSet) error {
	renderer := lipgloss.NewRenderer(os.Stdout, termenv.WithColorCache(true))
	m := NewModel(cs,
		WithHunkParser(v.HunkParser),
		WithHighlighter(v.Tokenizer, v.Detector),
		WithRenderer(renderer),
	)
	p := tea.NewProgram(m, tea.WithContext(ctx), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// Option configures a Model.
type Option func(*Model)

// WithHunkParser sets the hunk parser used to structure record bodies.
func WithHunkParser(hp diffrec.HunkParser) Option {
	return func(m *Model) { m.hunks = hp }
}

// WithHighlighter sets the tokenizer and language detector used to
// highlight context lines.
func WithHighlighter(tok diffrec.Tokenizer, det diffrec.LanguageDetector) Option {
	return func(m *Model) {
		m.tokenizer = tok
		m.detector = det
	}
}

// WithRenderer sets the lipgloss renderer, mainly so tests can force a
// color profile.
func WithRenderer(r *lipgloss.Renderer) Option {
	return func(m *Model) {
		if r != nil {
			m.renderer = r
		}
	}
}

// Model is the bubbletea model for the changeset viewer.
type Model struct {
	cs        *diffrec.ChangeSet
	hunks     diffrec.HunkParser
	tokenizer diffrec.Tokenizer
	detector  diffrec.LanguageDetector
	renderer  *lipgloss.Renderer

	viewport viewport.Model
	selected int
	ready    bool
}

// NewModel creates a viewer model for the changeset.
func NewModel(cs *diffrec.ChangeSet, opts ...Option) *Model {
	m := &Model{
		cs:       cs,
		renderer: lipgloss.DefaultRenderer(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd { return nil }

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		bodyHeight := msg.Height - m.chromeHeight()
		if bodyHeight < 1 {
			bodyHeight = 1
		}
		if !m.ready {
			m.viewport = viewport.New(msg.Width, bodyHeight)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = bodyHeight
		}
		m.viewport.SetContent(m.renderBody())
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "j", "down":
			m.selectRecord(m.selected + 1)
			return m, nil
		case "k", "up":
			m.selectRecord(m.selected - 1)
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *Model) selectRecord(i int) {
	if i < 0 || i >= len(m.cs.Records) {
		return
	}
	m.selected = i
	if m.ready {
		m.viewport.SetContent(m.renderBody())
		m.viewport.GotoTop()
	}
}

// chromeHeight is the number of rows used by the file list and the
// help line.
func (m *Model) chromeHeight() int {
	return len(m.cs.Records) + 2
}

// View implements tea.Model.
func (m *Model) View() string {
	if len(m.cs.Records) == 0 {
		return "no changes\n"
	}

	var b strings.Builder
	b.WriteString(m.renderList())
	if m.ready {
		b.WriteString(m.viewport.View())
		b.WriteString("\n")
	}
	b.WriteString(m.helpStyle().Render("j/k: select file • q: quit"))
	return b.String()
}

func (m *Model) renderList() string {
	// Pad paths to a common width so the stat columns line up.
	maxWidth := 0
	for _, rec := range m.cs.Records {
		if w := DisplayWidth(displayPath(rec)); w > maxWidth {
			maxWidth = w
		}
	}

	var b strings.Builder
	for i, rec := range m.cs.Records {
		line := m.recordLine(rec, maxWidth)
		if i == m.selected {
			line = "> " + line
		} else {
			line = "  " + line
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString("\n")
	return b.String()
}

func displayPath(rec diffrec.Record) string {
	if rec.Renamed() {
		return rec.RenameFrom + " → " + rec.RenameTo
	}
	return rec.Path()
}

// recordLine formats one file entry: status letter, path (with rename
// arrow), and a line stat when a hunk parser is available.
func (m *Model) recordLine(rec diffrec.Record, pathWidth int) string {
	status := rec.Status()
	path := displayPath(rec)
	if pad := pathWidth - DisplayWidth(path); pad > 0 {
		path += strings.Repeat(" ", pad)
	}

	line := m.statusStyle(status).Render(status.String()) + " " + path

	if m.hunks != nil {
		if stat, err := m.hunks.Stat(rec); err == nil && (stat.Additions > 0 || stat.Deletions > 0) {
			line += "  " +
				m.addStyle().Render(fmt.Sprintf("+%d", stat.Additions)) + " " +
				m.delStyle().Render(fmt.Sprintf("-%d", stat.Deletions))
		}
	}
	return line
}

func (m *Model) renderBody() string {
	if len(m.cs.Records) == 0 {
		return ""
	}
	rec := m.cs.Records[m.selected]

	if m.hunks != nil {
		if hunks, err := m.hunks.Hunks(rec); err == nil && len(hunks) > 0 {
			return m.renderHunks(rec, hunks)
		}
	}
	if rec.RawBody == "" {
		return m.helpStyle().Render("(no content changes)")
	}
	return rec.RawBody
}

func (m *Model) renderHunks(rec diffrec.Record, hunks []diffrec.Hunk) string {
	var language string
	if m.detector != nil {
		language = m.detector.DetectFromPath(rec.Path())
	}

	var b strings.Builder
	for _, hunk := range hunks {
		header := fmt.Sprintf("@@ -%d,%d +%d,%d @@", hunk.OldStart, hunk.OldCount, hunk.NewStart, hunk.NewCount)
		if hunk.Section != "" {
			header += " " + hunk.Section
		}
		b.WriteString(m.hunkStyle().Render(header))
		b.WriteString("\n")

		for _, line := range hunk.Lines {
			b.WriteString(m.renderLine(language, line))
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (m *Model) renderLine(language string, line diffrec.Line) string {
	content := expandTabs(line.Content)
	switch line.Type {
	case diffrec.LineAdded:
		return m.addStyle().Render("+" + content)
	case diffrec.LineDeleted:
		return m.delStyle().Render("-" + content)
	default:
		return " " + m.highlight(language, content)
	}
}

// highlight applies syntax tokens to a context line, falling back to
// plain text when no tokenizer is configured or the language is
// unsupported.
func (m *Model) highlight(language, source string) string {
	if m.tokenizer == nil || language == "" {
		return source
	}
	tokens := m.tokenizer.Tokenize(language, source)
	if tokens == nil {
		return source
	}

	var b strings.Builder
	for _, tok := range tokens {
		style := m.renderer.NewStyle()
		if tok.Style.Foreground != "" {
			style = style.Foreground(lipgloss.Color(tok.Style.Foreground))
		}
		if tok.Style.Bold {
			style = style.Bold(true)
		}
		b.WriteString(style.Render(tok.Text))
	}
	return b.String()
}

func (m *Model) statusStyle(s diffrec.RecordStatus) lipgloss.Style {
	switch s {
	case diffrec.StatusAdded:
		return m.addStyle()
	case diffrec.StatusDeleted:
		return m.delStyle()
	case diffrec.StatusRenamed, diffrec.StatusModeChanged:
		return m.renderer.NewStyle().Foreground(lipgloss.Color("#e5c07b"))
	default:
		return m.renderer.NewStyle()
	}
}

func (m *Model) addStyle() lipgloss.Style {
	return m.renderer.NewStyle().Foreground(lipgloss.Color("#98c379"))
}

func (m *Model) delStyle() lipgloss.Style {
	return m.renderer.NewStyle().Foreground(lipgloss.Color("#e06c75"))
}

func (m *Model) hunkStyle() lipgloss.Style {
	return m.renderer.NewStyle().Foreground(lipgloss.Color("#56b6c2"))
}

func (m *Model) helpStyle() lipgloss.Style {
	return m.renderer.NewStyle().Foreground(lipgloss.Color("#5c6370"))
}
