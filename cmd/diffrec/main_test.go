package main_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jamesharris-garmin/diffrec"
	main "github.com/jamesharris-garmin/diffrec/cmd/diffrec"
	"github.com/jamesharris-garmin/diffrec/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const diffInput = `diff --git a/hello.go b/hello.go
new file mode 100644
index 0000000..e69de29
--- /dev/null
+++ b/hello.go
@@ -0,0 +1,3 @@
+package main
+
+func hello() {}
`

func TestApp_Run_ParsesFromStdin(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	app := &main.App{
		Input: strings.NewReader(diffInput),
		Out:   &out,
	}

	cs, err := app.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, cs.Records, 1)
	assert.Equal(t, "hello.go", cs.Records[0].NewPath)
	assert.True(t, cs.Records[0].NewFile)

	// Table output: status and path.
	assert.Contains(t, out.String(), "A\thello.go")
}

func TestApp_Run_ReadsFromFilePath(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	diffPath := filepath.Join(tmpDir, "test.patch")
	require.NoError(t, os.WriteFile(diffPath, []byte(diffInput), 0o644))

	var out bytes.Buffer
	app := &main.App{FilePath: diffPath, Out: &out}

	cs, err := app.Run(context.Background())
	require.NoError(t, err)
	assert.Len(t, cs.Records, 1)
}

func TestApp_Run_FileNotFound(t *testing.T) {
	t.Parallel()

	app := &main.App{FilePath: "/nonexistent/path/to/diff.patch", Out: &bytes.Buffer{}}

	_, err := app.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no such file")
}

func TestApp_Run_UsesDiffer(t *testing.T) {
	t.Parallel()

	var capturedArgs []string
	app := &main.App{
		Differ: &mock.Differ{
			DiffFn: func(_ context.Context, args ...string) (string, error) {
				capturedArgs = args
				return diffInput, nil
			},
		},
		DiffArgs: []string{"HEAD~1", "HEAD"},
		Out:      &bytes.Buffer{},
	}

	cs, err := app.Run(context.Background())
	require.NoError(t, err)
	assert.Len(t, cs.Records, 1)
	assert.Equal(t, []string{"HEAD~1", "HEAD"}, capturedArgs)
}

func TestApp_Run_DifferError(t *testing.T) {
	t.Parallel()

	app := &main.App{
		Differ: &mock.Differ{
			DiffFn: func(context.Context, ...string) (string, error) {
				return "", errors.New("not a git repository")
			},
		},
		Out: &bytes.Buffer{},
	}

	_, err := app.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a git repository")
}

func TestApp_Run_EmptyDiff(t *testing.T) {
	t.Parallel()

	app := &main.App{Input: strings.NewReader(""), Out: &bytes.Buffer{}}

	_, err := app.Run(context.Background())
	require.Error(t, err)
	assert.Equal(t, main.ErrNoChanges, err)
}

func TestApp_Run_JSONLOutput(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	app := &main.App{
		Input: strings.NewReader(diffInput),
		JSONL: true,
		Out:   &out,
	}

	_, err := app.Run(context.Background())
	require.NoError(t, err)
	assert.Contains(t, out.String(), `"new_path":"hello.go"`)
	assert.Contains(t, out.String(), `"is_new_file":true`)
}

func TestApp_Run_TableIncludesStats(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	app := &main.App{
		Input: strings.NewReader(diffInput),
		Hunks: &mock.HunkParser{
			HunksFn: func(diffrec.Record) ([]diffrec.Hunk, error) { return nil, nil },
			StatFn: func(diffrec.Record) (diffrec.Stat, error) {
				return diffrec.Stat{Additions: 3}, nil
			},
		},
		Out: &out,
	}

	_, err := app.Run(context.Background())
	require.NoError(t, err)
	assert.Contains(t, out.String(), "+3\t-0")
}

func TestApp_Run_Summarizer(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	app := &main.App{
		Input: strings.NewReader(diffInput),
		Summarizer: &mock.Summarizer{
			SummarizeFn: func(_ context.Context, cs *diffrec.ChangeSet) (string, error) {
				require.Len(t, cs.Records, 1)
				return "Adds a hello function.", nil
			},
		},
		Out: &out,
	}

	_, err := app.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Adds a hello function.\n", out.String())
}

func TestApp_Run_SummarizerError(t *testing.T) {
	t.Parallel()

	app := &main.App{
		Input: strings.NewReader(diffInput),
		Summarizer: &mock.Summarizer{
			SummarizeFn: func(context.Context, *diffrec.ChangeSet) (string, error) {
				return "", errors.New("API error")
			},
		},
		Out: &bytes.Buffer{},
	}

	_, err := app.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API error")
}

func TestApp_Run_Viewer(t *testing.T) {
	t.Parallel()

	var viewed *diffrec.ChangeSet
	app := &main.App{
		Input: strings.NewReader(diffInput),
		Viewer: &mock.Viewer{
			ViewFn: func(_ context.Context, cs *diffrec.ChangeSet) error {
				viewed = cs
				return nil
			},
		},
		Out: &bytes.Buffer{},
	}

	_, err := app.Run(context.Background())
	require.NoError(t, err)
	require.NotNil(t, viewed)
	assert.Len(t, viewed.Records, 1)
}

func TestApp_Run_RenamePrintsBothPaths(t *testing.T) {
	t.Parallel()

	input := "diff --git a/old.txt b/new.txt\n" +
		"similarity index 100%\n" +
		"rename from old.txt\n" +
		"rename to new.txt\n"

	var out bytes.Buffer
	app := &main.App{Input: strings.NewReader(input), Out: &out}

	_, err := app.Run(context.Background())
	require.NoError(t, err)
	assert.Contains(t, out.String(), "R\told.txt -> new.txt")
}
