package diffrec

import "context"

// Differ produces raw diff text for a changeset. How the text is
// obtained (subprocess, file, network) is up to the implementation.
type Differ interface {
	// Diff returns the raw output of a diff invocation. Args are
	// passed through to the underlying tool, e.g. a revision range.
	Diff(ctx context.Context, args ...string) (string, error)
}

// BlobSource resolves content-addressed blob ids to file content.
// The parser attaches a BlobSource to each record it constructs but
// never invokes it; resolution happens lazily via Record.OldBlob and
// Record.NewBlob.
type BlobSource interface {
	Blob(ctx context.Context, id string) ([]byte, error)
}
