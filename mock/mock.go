// Package mock provides function-field test doubles for the diffrec
// interfaces.
package mock

import (
	"context"
	"io"

	"github.com/jamesharris-garmin/diffrec"
)

// Compile-time interface verification.
var (
	_ diffrec.Parser           = (*Parser)(nil)
	_ diffrec.HunkParser       = (*HunkParser)(nil)
	_ diffrec.Differ           = (*Differ)(nil)
	_ diffrec.BlobSource       = (*BlobSource)(nil)
	_ diffrec.Viewer           = (*Viewer)(nil)
	_ diffrec.Summarizer       = (*Summarizer)(nil)
	_ diffrec.Tokenizer        = (*Tokenizer)(nil)
	_ diffrec.LanguageDetector = (*LanguageDetector)(nil)
)

// Parser implements diffrec.Parser.
type Parser struct {
	ParseFn func(r io.Reader) (*diffrec.ChangeSet, error)
}

func (m *Parser) Parse(r io.Reader) (*diffrec.ChangeSet, error) {
	return m.ParseFn(r)
}

// HunkParser implements diffrec.HunkParser.
type HunkParser struct {
	HunksFn func(rec diffrec.Record) ([]diffrec.Hunk, error)
	StatFn  func(rec diffrec.Record) (diffrec.Stat, error)
}

func (m *HunkParser) Hunks(rec diffrec.Record) ([]diffrec.Hunk, error) {
	return m.HunksFn(rec)
}

func (m *HunkParser) Stat(rec diffrec.Record) (diffrec.Stat, error) {
	return m.StatFn(rec)
}

// Differ implements diffrec.Differ.
type Differ struct {
	DiffFn func(ctx context.Context, args ...string) (string, error)
}

func (m *Differ) Diff(ctx context.Context, args ...string) (string, error) {
	return m.DiffFn(ctx, args...)
}

// BlobSource implements diffrec.BlobSource.
type BlobSource struct {
	BlobFn func(ctx context.Context, id string) ([]byte, error)
}

func (m *BlobSource) Blob(ctx context.Context, id string) ([]byte, error) {
	return m.BlobFn(ctx, id)
}

// Viewer implements diffrec.Viewer.
type Viewer struct {
	ViewFn func(ctx context.Context, cs *diffrec.ChangeSet) error
}

func (m *Viewer) View(ctx context.Context, cs *diffrec.ChangeSet) error {
	return m.ViewFn(ctx, cs)
}

// Summarizer implements diffrec.Summarizer.
type Summarizer struct {
	SummarizeFn func(ctx context.Context, cs *diffrec.ChangeSet) (string, error)
}

func (m *Summarizer) Summarize(ctx context.Context, cs *diffrec.ChangeSet) (string, error) {
	return m.SummarizeFn(ctx, cs)
}

// Tokenizer implements diffrec.Tokenizer.
type Tokenizer struct {
	TokenizeFn func(language, source string) []diffrec.Token
}

func (m *Tokenizer) Tokenize(language, source string) []diffrec.Token {
	return m.TokenizeFn(language, source)
}

// LanguageDetector implements diffrec.LanguageDetector.
type LanguageDetector struct {
	DetectFromPathFn func(path string) string
}

func (m *LanguageDetector) DetectFromPath(path string) string {
	return m.DetectFromPathFn(path)
}
