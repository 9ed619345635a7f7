package diffrec

// Token is a fragment of source text with an associated visual style.
type Token struct {
	Text  string
	Style Style
}

// Style describes how a token should be rendered.
type Style struct {
	Foreground string // hex color, empty for terminal default
	Bold       bool
}

// Tokenizer splits source code into syntax-highlighted tokens.
type Tokenizer interface {
	// Tokenize returns tokens for the given language and source.
	// Returns nil if the language is not supported.
	Tokenize(language, source string) []Token
}

// LanguageDetector maps file paths to language names usable by a
// Tokenizer.
type LanguageDetector interface {
	DetectFromPath(path string) string
}
