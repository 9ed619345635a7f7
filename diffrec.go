// Package diffrec provides domain types for structuring git diff output
// into per-file change records.
package diffrec

import "context"

// ChangeSet holds the records parsed from one diff invocation, in the
// order the file segments appeared in the input.
type ChangeSet struct {
	Records []Record
}

// Record describes the change to a single file within a changeset.
type Record struct {
	OldPath string `json:"old_path"` // path before the change, from the "a/" token
	NewPath string `json:"new_path"` // path after the change, from the "b/" token

	// RenameFrom and RenameTo are set only when git classified the
	// change as a rename; both are empty otherwise.
	RenameFrom string `json:"rename_from,omitempty"`
	RenameTo   string `json:"rename_to,omitempty"`

	// OldMode and NewMode are the effective textual file modes,
	// e.g. "100644". OldMode falls back to the deleted-file mode,
	// NewMode to the new-file mode and then to the mode trailing the
	// index line. Empty when the header carried no mode information.
	OldMode string `json:"old_mode,omitempty"`
	NewMode string `json:"new_mode,omitempty"`

	// OldBlobID and NewBlobID are the abbreviated object ids from the
	// index line; either may be empty for untracked states.
	OldBlobID string `json:"old_blob_id,omitempty"`
	NewBlobID string `json:"new_blob_id,omitempty"`

	NewFile     bool `json:"is_new_file"`     // "new file mode" clause was present
	DeletedFile bool `json:"is_deleted_file"` // "deleted file mode" clause was present

	// RawBody is the verbatim remainder of the segment after the
	// header: hunk content, binary notices, anything git appended.
	RawBody string `json:"raw_body,omitempty"`

	// Source, when non-nil, resolves blob ids to content on demand.
	// The parser attaches it; the parser itself never calls it.
	Source BlobSource `json:"-"`
}

// Renamed reports whether the record represents a rename.
func (r Record) Renamed() bool { return r.RenameFrom != r.RenameTo }

// Status classifies the record for display purposes.
func (r Record) Status() RecordStatus {
	switch {
	case r.NewFile:
		return StatusAdded
	case r.DeletedFile:
		return StatusDeleted
	case r.Renamed():
		return StatusRenamed
	case r.RawBody == "" && r.OldMode != "" && r.NewMode != "" && r.OldMode != r.NewMode:
		return StatusModeChanged
	default:
		return StatusModified
	}
}

// Path returns the post-change path, falling back to the pre-change path
// for deletions.
func (r Record) Path() string {
	if r.NewPath != "" {
		return r.NewPath
	}
	return r.OldPath
}

// OldBlob resolves the pre-change file content through the attached
// source. Returns ErrNoSource if the record has no source, and nil
// content with no error when there is no pre-change blob (new files).
func (r Record) OldBlob(ctx context.Context) ([]byte, error) {
	return r.resolve(ctx, r.OldBlobID)
}

// NewBlob resolves the post-change file content through the attached
// source. Returns ErrNoSource if the record has no source, and nil
// content with no error when there is no post-change blob (deletions).
func (r Record) NewBlob(ctx context.Context) ([]byte, error) {
	return r.resolve(ctx, r.NewBlobID)
}

func (r Record) resolve(ctx context.Context, id string) ([]byte, error) {
	if id == "" || allZero(id) {
		return nil, nil
	}
	if r.Source == nil {
		return nil, ErrNoSource
	}
	return r.Source.Blob(ctx, id)
}

// allZero reports whether id is the null object id git uses for the
// missing side of a creation or deletion.
func allZero(id string) bool {
	for i := 0; i < len(id); i++ {
		if id[i] != '0' {
			return false
		}
	}
	return true
}

// RecordStatus is the display classification of a record.
type RecordStatus int

// Record statuses. A record can combine properties (a rename may also
// change mode); Status reports the most specific one.
const (
	StatusModified RecordStatus = iota
	StatusAdded
	StatusDeleted
	StatusRenamed
	StatusModeChanged
)

// String returns the single-letter git status code for the status.
func (s RecordStatus) String() string {
	switch s {
	case StatusAdded:
		return "A"
	case StatusDeleted:
		return "D"
	case StatusRenamed:
		return "R"
	case StatusModeChanged:
		return "T"
	default:
		return "M"
	}
}

// Hunk represents a contiguous block of changes within a record's body,
// produced by a downstream HunkParser.
type Hunk struct {
	OldStart int
	OldCount int
	NewStart int
	NewCount int
	Section  string // optional function context after the @@ markers
	Lines    []Line
}

// Line is a single line within a hunk.
type Line struct {
	Type      LineType
	Content   string
	NoNewline bool // "\ No newline at end of file" marker
}

// LineType represents the type of a diff line.
type LineType int

// Line types.
const (
	LineContext LineType = iota
	LineAdded
	LineDeleted
)

// Stat holds per-record line counts.
type Stat struct {
	Additions int
	Deletions int
}
