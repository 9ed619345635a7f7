package diffrec

import "errors"

var (
	// ErrMalformedHeader reports a diff segment whose mandatory
	// "a/<path> b/<path>" clause did not match. Diff output is assumed
	// well-formed when produced by git, so a mismatch is fatal for the
	// whole parse call rather than recoverable per segment.
	ErrMalformedHeader = errors.New("diffrec: malformed diff header")

	// ErrAmbiguousMode reports a segment carrying both a "new file
	// mode" and a "deleted file mode" clause. Git never emits both;
	// their co-occurrence means the input is not valid diff output.
	ErrAmbiguousMode = errors.New("diffrec: segment claims both new and deleted file modes")

	// ErrNoSource is returned by blob resolution on a record that was
	// parsed without an attached BlobSource.
	ErrNoSource = errors.New("diffrec: record has no blob source")
)
