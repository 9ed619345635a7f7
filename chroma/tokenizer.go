// Package chroma provides syntax highlighting using the chroma library.
package chroma

import (
	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/jamesharris-garmin/diffrec"
)

// Compile-time interface verification.
var (
	_ diffrec.Tokenizer        = (*Tokenizer)(nil)
	_ diffrec.LanguageDetector = (*Detector)(nil)
)

// Tokenizer extracts syntax tokens using chroma.
type Tokenizer struct{}

// NewTokenizer creates a new chroma-based tokenizer.
func NewTokenizer() *Tokenizer {
	return &Tokenizer{}
}

// Tokenize splits source code into syntax-highlighted tokens for the
// given language. Returns nil if the language is not supported, and an
// empty slice for empty source.
func (t *Tokenizer) Tokenize(language, source string) []diffrec.Token {
	if source == "" {
		return []diffrec.Token{}
	}

	lexer := lexers.Get(language)
	if lexer == nil {
		return nil
	}

	// Coalesce for better performance with consecutive tokens of the
	// same type
	lexer = chroma.Coalesce(lexer)

	iterator, err := lexer.Tokenise(nil, source)
	if err != nil {
		return nil
	}

	var tokens []diffrec.Token
	for token := iterator(); token != chroma.EOF; token = iterator() {
		tokens = append(tokens, diffrec.Token{
			Text:  token.Value,
			Style: tokenStyle(token.Type),
		})
	}
	return tokens
}

// Detector maps file paths to chroma language names.
type Detector struct{}

// NewDetector creates a new chroma-based language detector.
func NewDetector() *Detector {
	return &Detector{}
}

// DetectFromPath returns the language name for a path, or an empty
// string when chroma has no matching lexer.
func (d *Detector) DetectFromPath(path string) string {
	lexer := lexers.Match(path)
	if lexer == nil {
		return ""
	}
	return lexer.Config().Name
}

// tokenStyle returns the visual style for a chroma token type. Colors
// are loosely based on the One Dark theme, reduced to the categories
// the record viewer distinguishes.
func tokenStyle(tt chroma.TokenType) diffrec.Style {
	switch {
	case tt.InCategory(chroma.Keyword):
		return diffrec.Style{Foreground: "#c678dd", Bold: true}
	case tt.InCategory(chroma.Comment):
		return diffrec.Style{Foreground: "#5c6370"}
	case tt.InSubCategory(chroma.LiteralString):
		return diffrec.Style{Foreground: "#98c379"}
	case tt.InSubCategory(chroma.LiteralNumber):
		return diffrec.Style{Foreground: "#d19a66"}
	case tt.InCategory(chroma.Operator):
		return diffrec.Style{Foreground: "#56b6c2"}
	case tt == chroma.NameBuiltin || tt == chroma.NameBuiltinPseudo:
		return diffrec.Style{Foreground: "#e5c07b"}
	case tt == chroma.NameFunction || tt == chroma.NameFunctionMagic:
		return diffrec.Style{Foreground: "#61afef"}
	default:
		return diffrec.Style{}
	}
}
