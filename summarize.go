package diffrec

import "context"

// Summarizer produces a prose summary of a parsed changeset.
type Summarizer interface {
	Summarize(ctx context.Context, cs *ChangeSet) (string, error)
}
