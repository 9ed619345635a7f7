// Package gitdiff parses record bodies into hunks using the go-gitdiff
// library.
package gitdiff

import (
	"fmt"
	"strings"

	"github.com/bluekeyes/go-gitdiff/gitdiff"
	"github.com/jamesharris-garmin/diffrec"
)

// Compile-time interface verification.
var _ diffrec.HunkParser = (*Parser)(nil)

// Parser parses the opaque body of a record into hunk-level structure.
type Parser struct{}

// NewParser creates a new go-gitdiff-based hunk parser.
func NewParser() *Parser {
	return &Parser{}
}

// Hunks parses the record's raw body. Bodies without hunk markers
// (binary changes, pure renames, mode changes) yield no hunks and no
// error.
func (p *Parser) Hunks(rec diffrec.Record) ([]diffrec.Hunk, error) {
	file, err := parseBody(rec)
	if err != nil || file == nil {
		return nil, err
	}

	hunks := make([]diffrec.Hunk, 0, len(file.TextFragments))
	for _, frag := range file.TextFragments {
		hunk := diffrec.Hunk{
			OldStart: int(frag.OldPosition),
			OldCount: int(frag.OldLines),
			NewStart: int(frag.NewPosition),
			NewCount: int(frag.NewLines),
			Section:  frag.Comment,
		}
		for _, line := range frag.Lines {
			hunk.Lines = append(hunk.Lines, diffrec.Line{
				Type:      lineType(line.Op),
				Content:   strings.TrimSuffix(line.Line, "\n"),
				NoNewline: !strings.HasSuffix(line.Line, "\n"),
			})
		}
		hunks = append(hunks, hunk)
	}
	return hunks, nil
}

// Stat counts added and deleted lines in the record's raw body.
func (p *Parser) Stat(rec diffrec.Record) (diffrec.Stat, error) {
	file, err := parseBody(rec)
	if err != nil || file == nil {
		return diffrec.Stat{}, err
	}

	var stat diffrec.Stat
	for _, frag := range file.TextFragments {
		stat.Additions += int(frag.LinesAdded)
		stat.Deletions += int(frag.LinesDeleted)
	}
	return stat, nil
}

func parseBody(rec diffrec.Record) (*gitdiff.File, error) {
	if !hasHunks(rec.RawBody) {
		return nil, nil
	}

	files, _, err := gitdiff.Parse(strings.NewReader(rec.RawBody))
	if err != nil {
		return nil, fmt.Errorf("parsing hunks for %s: %w", rec.Path(), err)
	}
	if len(files) == 0 {
		return nil, nil
	}
	return files[0], nil
}

func lineType(op gitdiff.LineOp) diffrec.LineType {
	switch op {
	case gitdiff.OpAdd:
		return diffrec.LineAdded
	case gitdiff.OpDelete:
		return diffrec.LineDeleted
	default:
		return diffrec.LineContext
	}
}

// hasHunks reports whether the body contains a hunk header at line
// start. Record bodies never contain the per-file delimiter, so a
// single file is the most gitdiff.Parse can find.
func hasHunks(body string) bool {
	return strings.HasPrefix(body, "@@ ") || strings.Contains(body, "\n@@ ")
}
