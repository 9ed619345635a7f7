package diffrec

import "io"

// Parser parses raw diff output into change records.
type Parser interface {
	// Parse reads complete diff output and returns one record per file
	// segment, in input order.
	Parse(r io.Reader) (*ChangeSet, error)
}

// HunkParser turns a record's opaque body into hunk-level structure.
type HunkParser interface {
	// Hunks parses the record's raw body. Binary changes and bodies
	// without hunks yield an empty slice.
	Hunks(rec Record) ([]Hunk, error)

	// Stat counts added and deleted lines in the record's raw body.
	Stat(rec Record) (Stat, error)
}
