package diffrec

import "context"

// Viewer displays a changeset to the user.
type Viewer interface {
	// View displays the changeset and blocks until the user exits.
	View(ctx context.Context, cs *ChangeSet) error
}
