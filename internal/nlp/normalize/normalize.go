// Package normalize turns raw document text into the token string the term
// weighting engine consumes.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// StopWords is the read-only stop-word lookup the normalizer filters against.
type StopWords interface {
	Contains(word string) bool
}

// Option configures a Normalizer.
type Option func(*Normalizer)

// WithFoldDiacritics strips combining marks before filtering, so "résumé"
// keeps its base letters instead of losing the accented ones.
func WithFoldDiacritics(enabled bool) Option {
	return func(n *Normalizer) { n.foldDiacritics = enabled }
}

// Normalizer strips non-letters, lowercases, tokenizes on whitespace and drops
// stop words. It holds no mutable state and is safe for concurrent use.
type Normalizer struct {
	stopWords      StopWords
	foldDiacritics bool
}

// New creates a Normalizer backed by the given stop words.
func New(stopWords StopWords, opts ...Option) *Normalizer {
	n := &Normalizer{stopWords: stopWords}
	for _, o := range opts {
		o(n)
	}
	return n
}

// Normalize returns the surviving tokens joined by single spaces.
// Removed characters are not replaced by a separator: "scikit-learn" becomes
// "scikitlearn". Input without letters yields "".
func (n *Normalizer) Normalize(text string) string {
	if n.foldDiacritics {
		text = foldDiacritics(text)
	}

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		switch {
		case r >= 'A' && r <= 'Z':
			b.WriteRune(r + ('a' - 'A'))
		case r >= 'a' && r <= 'z':
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune(r)
		}
	}

	tokens := strings.Fields(b.String())
	kept := tokens[:0]
	for _, tok := range tokens {
		if n.stopWords != nil && n.stopWords.Contains(tok) {
			continue
		}
		kept = append(kept, tok)
	}
	return strings.Join(kept, " ")
}

func foldDiacritics(text string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, text)
	if err != nil {
		return text
	}
	return folded
}
