// Package jsonl reads and writes changesets as JSON Lines, one record
// per line, for non-interactive pipelines.
package jsonl

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/jamesharris-garmin/diffrec"
)

// maxLineSize accommodates records with large raw bodies; the default
// scanner buffer is only 64KB.
const maxLineSize = 16 * 1024 * 1024

// Write encodes each record on its own line.
func Write(w io.Writer, cs *diffrec.ChangeSet) error {
	enc := json.NewEncoder(w)
	for i, rec := range cs.Records {
		if err := enc.Encode(rec); err != nil {
			return fmt.Errorf("encoding record %d: %w", i+1, err)
		}
	}
	return nil
}

// Loader loads changesets from JSONL files.
type Loader struct{}

// NewLoader creates a new JSONL loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads a JSONL file into a changeset. Blank lines are skipped;
// a malformed line fails the load with its line number.
func (l *Loader) Load(path string) (*diffrec.ChangeSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	cs, err := l.Read(f)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return cs, nil
}

// Read decodes a JSONL stream into a changeset.
func (l *Loader) Read(r io.Reader) (*diffrec.ChangeSet, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	cs := &diffrec.ChangeSet{}
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var rec diffrec.Record
		if err := json.Unmarshal(line, &rec); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}
		cs.Records = append(cs.Records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return cs, nil
}
