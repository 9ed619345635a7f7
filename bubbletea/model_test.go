package bubbletea_test

import (
	"bytes"
	"io"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/exp/teatest"
	"github.com/jamesharris-garmin/diffrec"
	"github.com/jamesharris-garmin/diffrec/bubbletea"
	"github.com/jamesharris-garmin/diffrec/mock"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// trueColorRenderer creates a lipgloss renderer that outputs true
// colors without touching global state.
func trueColorRenderer() *lipgloss.Renderer {
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(termenv.TrueColor)
	return r
}

func testChangeSet() *diffrec.ChangeSet {
	return &diffrec.ChangeSet{
		Records: []diffrec.Record{
			{
				OldPath: "greet.go",
				NewPath: "greet.go",
				OldMode: "100644",
				NewMode: "100644",
				RawBody: "--- a/greet.go\n+++ b/greet.go\n@@ -1 +1 @@\n-old\n+new\n",
			},
			{
				OldPath: "added.txt",
				NewPath: "added.txt",
				NewFile: true,
				NewMode: "100644",
			},
		},
	}
}

func statHunkParser() *mock.HunkParser {
	return &mock.HunkParser{
		HunksFn: func(rec diffrec.Record) ([]diffrec.Hunk, error) {
			if rec.RawBody == "" {
				return nil, nil
			}
			return []diffrec.Hunk{
				{
					OldStart: 1, OldCount: 1, NewStart: 1, NewCount: 1,
					Section: "func greet",
					Lines: []diffrec.Line{
						{Type: diffrec.LineDeleted, Content: "old"},
						{Type: diffrec.LineAdded, Content: "new"},
					},
				},
			}, nil
		},
		StatFn: func(rec diffrec.Record) (diffrec.Stat, error) {
			if rec.RawBody == "" {
				return diffrec.Stat{}, nil
			}
			return diffrec.Stat{Additions: 1, Deletions: 1}, nil
		},
	}
}

func sizedModel(t *testing.T, m *bubbletea.Model) *bubbletea.Model {
	t.Helper()
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	sized, ok := updated.(*bubbletea.Model)
	require.True(t, ok)
	return sized
}

func TestModel_View(t *testing.T) {
	t.Parallel()

	t.Run("lists every record with status and path", func(t *testing.T) {
		t.Parallel()

		m := sizedModel(t, bubbletea.NewModel(testChangeSet(),
			bubbletea.WithRenderer(trueColorRenderer()),
		))

		out := m.View()
		assert.Contains(t, out, "greet.go")
		assert.Contains(t, out, "added.txt")
		assert.Contains(t, out, "A")
	})

	t.Run("shows line stats when a hunk parser is set", func(t *testing.T) {
		t.Parallel()

		m := sizedModel(t, bubbletea.NewModel(testChangeSet(),
			bubbletea.WithRenderer(trueColorRenderer()),
			bubbletea.WithHunkParser(statHunkParser()),
		))

		out := m.View()
		assert.Contains(t, out, "+1")
		assert.Contains(t, out, "-1")
	})

	t.Run("renders hunks of the selected record", func(t *testing.T) {
		t.Parallel()

		m := sizedModel(t, bubbletea.NewModel(testChangeSet(),
			bubbletea.WithRenderer(trueColorRenderer()),
			bubbletea.WithHunkParser(statHunkParser()),
		))

		out := m.View()
		assert.Contains(t, out, "@@ -1,1 +1,1 @@ func greet")
		assert.Contains(t, out, "+new")
		assert.Contains(t, out, "-old")
	})

	t.Run("renames show both sides", func(t *testing.T) {
		t.Parallel()

		cs := &diffrec.ChangeSet{Records: []diffrec.Record{
			{OldPath: "new.txt", NewPath: "new.txt", RenameFrom: "old.txt", RenameTo: "new.txt"},
		}}
		m := sizedModel(t, bubbletea.NewModel(cs,
			bubbletea.WithRenderer(trueColorRenderer()),
		))

		out := m.View()
		assert.Contains(t, out, "old.txt")
		assert.Contains(t, out, "new.txt")
	})

	t.Run("empty changeset", func(t *testing.T) {
		t.Parallel()

		m := bubbletea.NewModel(&diffrec.ChangeSet{},
			bubbletea.WithRenderer(trueColorRenderer()),
		)
		assert.Contains(t, m.View(), "no changes")
	})

	t.Run("highlights context lines through the tokenizer", func(t *testing.T) {
		t.Parallel()

		cs := &diffrec.ChangeSet{Records: []diffrec.Record{
			{OldPath: "x.go", NewPath: "x.go", RawBody: "@@ -1 +1 @@\n body\n"},
		}}
		var sawLanguage string
		tok := &mock.Tokenizer{
			TokenizeFn: func(language, source string) []diffrec.Token {
				sawLanguage = language
				return []diffrec.Token{{Text: source, Style: diffrec.Style{Foreground: "#61afef"}}}
			},
		}
		det := &mock.LanguageDetector{
			DetectFromPathFn: func(string) string { return "Go" },
		}
		hp := &mock.HunkParser{
			HunksFn: func(diffrec.Record) ([]diffrec.Hunk, error) {
				return []diffrec.Hunk{{Lines: []diffrec.Line{
					{Type: diffrec.LineContext, Content: "body"},
				}}}, nil
			},
			StatFn: func(diffrec.Record) (diffrec.Stat, error) { return diffrec.Stat{}, nil },
		}

		m := sizedModel(t, bubbletea.NewModel(cs,
			bubbletea.WithRenderer(trueColorRenderer()),
			bubbletea.WithHunkParser(hp),
			bubbletea.WithHighlighter(tok, det),
		))

		out := m.View()
		assert.Equal(t, "Go", sawLanguage)
		assert.Contains(t, out, "body")
	})
}

func TestModel_Selection(t *testing.T) {
	t.Parallel()

	t.Run("j moves selection down and refreshes the body", func(t *testing.T) {
		t.Parallel()

		m := sizedModel(t, bubbletea.NewModel(testChangeSet(),
			bubbletea.WithRenderer(trueColorRenderer()),
			bubbletea.WithHunkParser(statHunkParser()),
		))

		updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
		out := updated.(*bubbletea.Model).View()

		// The second record has no body, so the hunk header from the
		// first record must be gone.
		assert.NotContains(t, out, "@@ -1,1 +1,1 @@")
		assert.Contains(t, out, "(no content changes)")
	})

	t.Run("selection stops at the ends", func(t *testing.T) {
		t.Parallel()

		m := sizedModel(t, bubbletea.NewModel(testChangeSet(),
			bubbletea.WithRenderer(trueColorRenderer()),
		))

		updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}})
		require.NotNil(t, updated)
		out := updated.(*bubbletea.Model).View()
		assert.Contains(t, out, "> ")
	})
}

func TestModel_Quit(t *testing.T) {
	t.Parallel()

	m := bubbletea.NewModel(testChangeSet(),
		bubbletea.WithRenderer(trueColorRenderer()),
	)
	tm := teatest.NewTestModel(t, m, teatest.WithInitialTermSize(80, 24))

	teatest.WaitFor(t, tm.Output(), func(out []byte) bool {
		return bytes.Contains(out, []byte("greet.go"))
	})

	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	tm.WaitFinished(t, teatest.WithFinalTimeout(0))
}
