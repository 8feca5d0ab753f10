package tokenizer

import (
	"strings"
	"unicode"
)

// Config holds tokenization settings
type Config struct {
	// Token length bounds; MaxTokenLength <= 0 means unbounded
	MinTokenLength int  `json:"min_token_length" yaml:"min_token_length"`
	MaxTokenLength int  `json:"max_token_length" yaml:"max_token_length"`
	KeepNumbers    bool `json:"keep_numbers" yaml:"keep_numbers"`
}

// DefaultConfig returns default tokenization settings.
// The defaults keep every word token, so repeated runs over the same
// corpus produce identical token streams.
func DefaultConfig() *Config {
	return &Config{
		MinTokenLength: 1,
		MaxTokenLength: 0,
		KeepNumbers:    true,
	}
}

// Tokenizer splits raw text into normalized word tokens
type Tokenizer struct {
	config *Config
}

// New creates a tokenizer with the given settings
func New(config *Config) *Tokenizer {
	if config == nil {
		config = DefaultConfig()
	}
	return &Tokenizer{config: config}
}

// Tokenize splits text into lower-cased word tokens. Any rune that is
// not a letter (or digit, when KeepNumbers is set) acts as a separator,
// and empty tokens from consecutive separators are dropped. Repeated
// occurrences are kept: downstream counting is multinomial, so every
// occurrence matters. Token order is preserved.
func (t *Tokenizer) Tokenize(text string) []string {
	var tokens []string
	var current strings.Builder

	for _, r := range text {
		if t.isWordRune(r) {
			current.WriteRune(unicode.ToLower(r))
			continue
		}
		if current.Len() > 0 {
			tokens = t.appendToken(tokens, current.String())
			current.Reset()
		}
	}

	if current.Len() > 0 {
		tokens = t.appendToken(tokens, current.String())
	}

	return tokens
}

func (t *Tokenizer) isWordRune(r rune) bool {
	if unicode.IsLetter(r) {
		return true
	}
	return t.config.KeepNumbers && unicode.IsDigit(r)
}

func (t *Tokenizer) appendToken(tokens []string, token string) []string {
	n := len([]rune(token))
	if n < t.config.MinTokenLength {
		return tokens
	}
	if t.config.MaxTokenLength > 0 && n > t.config.MaxTokenLength {
		return tokens
	}
	return append(tokens, token)
}
