package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jamesharris-garmin/diffrec"
	"github.com/jamesharris-garmin/diffrec/jsonl"
	"github.com/jamesharris-garmin/diffrec/parse"
	"golang.org/x/sync/errgroup"
)

// ErrNoChanges is returned when the input contains no file segments.
var ErrNoChanges = errors.New("no changes to display")

// statWorkers bounds concurrent per-record stat computation.
const statWorkers = 8

// App holds the wiring for one CLI invocation. Collaborators are
// fields so tests can substitute mocks.
type App struct {
	// Diff text source, in priority order: FilePath, Differ, Input.
	FilePath string
	Differ   diffrec.Differ
	DiffArgs []string
	Input    io.Reader

	Parser     diffrec.Parser     // defaults to parse.New()
	Hunks      diffrec.HunkParser // optional, enables line stats
	Summarizer diffrec.Summarizer // optional, prints a summary
	Viewer     diffrec.Viewer     // optional, opens the interactive view

	JSONL bool // emit records as JSON Lines instead of the table

	Out io.Writer // defaults to os.Stdout
}

// Run obtains the diff text, parses it, and renders the requested
// output. The parsed changeset is returned for callers that want it.
func (a *App) Run(ctx context.Context) (*diffrec.ChangeSet, error) {
	out := a.Out
	if out == nil {
		out = os.Stdout
	}
	parser := a.Parser
	if parser == nil {
		parser = parse.New()
	}

	text, err := a.diffText(ctx)
	if err != nil {
		return nil, err
	}

	cs, err := parser.Parse(strings.NewReader(text))
	if err != nil {
		return nil, err
	}
	if len(cs.Records) == 0 {
		return nil, ErrNoChanges
	}

	if a.JSONL {
		return cs, jsonl.Write(out, cs)
	}

	if a.Summarizer != nil {
		summary, err := a.Summarizer.Summarize(ctx, cs)
		if err != nil {
			return nil, err
		}
		fmt.Fprintln(out, summary)
		return cs, nil
	}

	if a.Viewer != nil {
		return cs, a.Viewer.View(ctx, cs)
	}

	return cs, a.printTable(ctx, out, cs)
}

func (a *App) diffText(ctx context.Context) (string, error) {
	switch {
	case a.FilePath != "":
		data, err := os.ReadFile(a.FilePath)
		if err != nil {
			return "", err
		}
		return string(data), nil
	case a.Differ != nil:
		return a.Differ.Diff(ctx, a.DiffArgs...)
	case a.Input != nil:
		data, err := io.ReadAll(a.Input)
		if err != nil {
			return "", err
		}
		return string(data), nil
	default:
		return "", errors.New("no diff input configured")
	}
}

// printTable writes one line per record: status, path, and line stats
// when a hunk parser is available. Stats are computed concurrently.
func (a *App) printTable(ctx context.Context, out io.Writer, cs *diffrec.ChangeSet) error {
	stats := make([]diffrec.Stat, len(cs.Records))
	if a.Hunks != nil {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(statWorkers)
		for i, rec := range cs.Records {
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				stat, err := a.Hunks.Stat(rec)
				if err != nil {
					return fmt.Errorf("stat for %s: %w", rec.Path(), err)
				}
				stats[i] = stat
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}
	}

	for i, rec := range cs.Records {
		path := rec.Path()
		if rec.Renamed() {
			path = rec.RenameFrom + " -> " + rec.RenameTo
		}
		line := fmt.Sprintf("%s\t%s", rec.Status(), path)
		if a.Hunks != nil {
			line += fmt.Sprintf("\t+%d\t-%d", stats[i].Additions, stats[i].Deletions)
		}
		if _, err := fmt.Fprintln(out, line); err != nil {
			return err
		}
	}
	return nil
}
