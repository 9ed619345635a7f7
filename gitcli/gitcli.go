// Package gitcli implements the diff and blob collaborators on top of
// the git binary.
package gitcli

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"

	"github.com/jamesharris-garmin/diffrec"
	"golang.org/x/sync/errgroup"
)

// Compile-time interface verification.
var (
	_ diffrec.Differ     = (*Client)(nil)
	_ diffrec.BlobSource = (*Client)(nil)
)

// Client runs read-only git plumbing commands in a repository.
type Client struct {
	dir    string
	gitBin string
	log    *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithGitBin overrides the git executable name or path.
func WithGitBin(bin string) Option {
	return func(c *Client) {
		if strings.TrimSpace(bin) != "" {
			c.gitBin = bin
		}
	}
}

// WithLogger attaches a logger for command-level debug output.
func WithLogger(log *slog.Logger) Option {
	return func(c *Client) {
		if log != nil {
			c.log = log
		}
	}
}

// New creates a client rooted at the given repository directory. An
// empty dir means the current working directory.
func New(dir string, opts ...Option) *Client {
	c := &Client{
		dir:    dir,
		gitBin: "git",
		log:    slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Diff returns the raw output of `git diff` with the given args, e.g.
// a revision range or --cached.
func (c *Client) Diff(ctx context.Context, args ...string) (string, error) {
	out, err := c.run(ctx, append([]string{"diff"}, args...)...)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// Blob returns the content of the blob with the given (possibly
// abbreviated) object id, via `git cat-file blob`.
func (c *Client) Blob(ctx context.Context, id string) ([]byte, error) {
	return c.run(ctx, "cat-file", "blob", id)
}

// Blobs resolves both sides of a record concurrently. Missing sides
// (empty or null ids) come back nil without error.
func (c *Client) Blobs(ctx context.Context, rec diffrec.Record) (oldContent, newContent []byte, err error) {
	rec.Source = c
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		oldContent, err = rec.OldBlob(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		newContent, err = rec.NewBlob(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return oldContent, newContent, nil
}

func (c *Client) run(ctx context.Context, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, c.gitBin, args...)
	if c.dir != "" {
		cmd.Dir = c.dir
	}
	var out, errb bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errb

	c.log.Debug("running git", "args", args, "dir", c.dir)
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(errb.String())
		if msg == "" {
			msg = err.Error()
		}
		return nil, fmt.Errorf("git %s: %s", args[0], msg)
	}
	return out.Bytes(), nil
}
