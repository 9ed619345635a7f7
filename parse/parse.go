// Package parse implements the git diff header parser.
//
// The parser splits raw diff output into per-file segments on the
// "diff --git" delimiter and matches each segment's header as an
// ordered sequence of independently optional clauses. Everything after
// the matched header is preserved verbatim as the record body.
package parse

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/jamesharris-garmin/diffrec"
)

// Compile-time interface verification.
var _ diffrec.Parser = (*Parser)(nil)

// delimiter marks the start of a file segment. The input is prefixed
// with a newline so a segment starting at offset zero still splits.
const delimiter = "\ndiff --git"

// Header clauses, each anchored to the start of the unconsumed
// remainder of a segment. Order is significant and fixed: a clause
// appearing out of order is not consumed and falls through into the
// record body.
var (
	rePaths    = regexp.MustCompile(`^ a/(\S+) b/(\S+)\n`)
	reRename   = regexp.MustCompile(`^similarity index (\d+)%\nrename from (\S+)\nrename to (\S+)(?:\n|$)`)
	reModePair = regexp.MustCompile(`^old mode (\d+)\nnew mode (\d+)(?:\n|$)`)
	reNewFile  = regexp.MustCompile(`^new file mode ([^\n]+)(?:\n|$)`)
	reDelFile  = regexp.MustCompile(`^deleted file mode ([^\n]+)(?:\n|$)`)
	reIndex    = regexp.MustCompile(`^index ([0-9A-Fa-f]+)\.\.([0-9A-Fa-f]+)(?: ([^\n]+))?(?:\n|$)`)
)

// Parser parses raw git diff output into change records. The zero
// value is ready to use; a Parser is stateless and safe for concurrent
// use.
type Parser struct {
	// Source, when non-nil, is attached to every constructed record
	// for lazy blob resolution. The parser never invokes it.
	Source diffrec.BlobSource
}

// New creates a parser with no blob source attached.
func New() *Parser {
	return &Parser{}
}

// Parse reads complete diff output and returns one record per file
// segment, in input order.
func (p *Parser) Parse(r io.Reader) (*diffrec.ChangeSet, error) {
	text, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading diff input: %w", err)
	}
	return p.ParseString(string(text))
}

// ParseString parses complete diff output held in memory. Input with
// zero file segments yields a changeset with no records. A segment
// whose mandatory path clause does not match fails the whole call.
func (p *Parser) ParseString(text string) (*diffrec.ChangeSet, error) {
	// Text before the first delimiter is preamble (typically empty)
	// and is discarded.
	segments := strings.Split("\n"+text, delimiter)[1:]

	cs := &diffrec.ChangeSet{}
	for i, segment := range segments {
		rec, err := p.parseSegment(segment)
		if err != nil {
			return nil, fmt.Errorf("segment %d: %w", i+1, err)
		}
		cs.Records = append(cs.Records, rec)
	}
	return cs, nil
}

func (p *Parser) parseSegment(segment string) (diffrec.Record, error) {
	rec := diffrec.Record{Source: p.Source}

	m := rePaths.FindStringSubmatch(segment)
	if m == nil {
		return diffrec.Record{}, diffrec.ErrMalformedHeader
	}
	rec.OldPath, rec.NewPath = m[1], m[2]
	rest := segment[len(m[0]):]

	if m = reRename.FindStringSubmatch(rest); m != nil {
		rec.RenameFrom, rec.RenameTo = m[2], m[3]
		rest = rest[len(m[0]):]
	}

	var oldMode, newMode string
	if m = reModePair.FindStringSubmatch(rest); m != nil {
		oldMode, newMode = m[1], m[2]
		rest = rest[len(m[0]):]
	}

	var newFileMode, deletedFileMode string
	if m = reNewFile.FindStringSubmatch(rest); m != nil {
		newFileMode = m[1]
		rec.NewFile = true
		rest = rest[len(m[0]):]
	}
	if m = reDelFile.FindStringSubmatch(rest); m != nil {
		deletedFileMode = m[1]
		rec.DeletedFile = true
		rest = rest[len(m[0]):]
	}
	if rec.NewFile && rec.DeletedFile {
		return diffrec.Record{}, diffrec.ErrAmbiguousMode
	}

	var indexMode string
	if m = reIndex.FindStringSubmatch(rest); m != nil {
		rec.OldBlobID, rec.NewBlobID = m[1], m[2]
		indexMode = m[3]
		rest = rest[len(m[0]):]
	}

	// Effective modes: explicit mode lines win, then the mode implied
	// by a creation or deletion clause, then the mode trailing the
	// index line.
	rec.OldMode = firstNonEmpty(oldMode, deletedFileMode)
	rec.NewMode = firstNonEmpty(newMode, newFileMode, indexMode)

	rec.RawBody = rest
	return rec, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
