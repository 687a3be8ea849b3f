// Package tfidf builds smoothed, L2-normalized TF-IDF vectors over small
// document batches and ranks the most salient terms of a document.
//
// For a batch of n documents the weight of term t in document d is
//
//	count(t, d) * (ln((1+n) / (1+df(t))) + 1)
//
// divided by the Euclidean norm of d's vector. A term shared by every document
// in the batch keeps idf 1; rarer terms weigh more.
package tfidf

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"unicode/utf8"
)

// Defaults.
const (
	DefaultMaxFeatures    = 100
	DefaultMinTokenLength = 2
)

// TieBreak orders terms of equal weight.
type TieBreak string

const (
	// TieBreakFirstSeen keeps the order in which terms first occur in the text.
	TieBreakFirstSeen TieBreak = "first_seen"
	// TieBreakAlphabetical orders equal-weight terms lexically.
	TieBreakAlphabetical TieBreak = "alphabetical"
)

// IsValid reports whether tb is a known rule.
func (tb TieBreak) IsValid() bool {
	return tb == TieBreakFirstSeen || tb == TieBreakAlphabetical
}

// ParseTieBreak converts a config value into a TieBreak. Empty means first-seen.
func ParseTieBreak(s string) (TieBreak, error) {
	if s == "" {
		return TieBreakFirstSeen, nil
	}
	tb := TieBreak(s)
	if !tb.IsValid() {
		return "", fmt.Errorf("invalid tie break %q (want %q or %q)", s, TieBreakFirstSeen, TieBreakAlphabetical)
	}
	return tb, nil
}

// Option configures a Vectorizer.
type Option func(*Vectorizer)

// WithMaxFeatures caps the single-document vocabulary at the n most frequent
// distinct terms. n <= 0 disables the cap.
func WithMaxFeatures(n int) Option {
	return func(v *Vectorizer) { v.maxFeatures = n }
}

// WithMinTokenLength drops tokens shorter than n runes.
func WithMinTokenLength(n int) Option {
	return func(v *Vectorizer) {
		if n > 0 {
			v.minTokenLength = n
		}
	}
}

// WithTieBreak sets the ordering rule for equal weights.
func WithTieBreak(tb TieBreak) Option {
	return func(v *Vectorizer) {
		if tb.IsValid() {
			v.tieBreak = tb
		}
	}
}

// Vectorizer computes term vectors. It is immutable and safe for concurrent use.
type Vectorizer struct {
	maxFeatures    int
	minTokenLength int
	tieBreak       TieBreak
}

// New creates a Vectorizer with the given options applied over the defaults.
func New(opts ...Option) *Vectorizer {
	v := &Vectorizer{
		maxFeatures:    DefaultMaxFeatures,
		minTokenLength: DefaultMinTokenLength,
		tieBreak:       TieBreakFirstSeen,
	}
	for _, o := range opts {
		o(v)
	}
	return v
}

// TieBreak returns the configured tie-break rule.
func (v *Vectorizer) TieBreak() TieBreak { return v.tieBreak }

// WeighPair weighs two normalized documents against each other. The vocabulary
// is the union of both documents and is not capped.
func (v *Vectorizer) WeighPair(a, b string) (Vector, Vector) {
	vecs := weigh([][]termCount{v.count(a), v.count(b)})
	return vecs[0], vecs[1]
}

// Weigh computes the vector of a single normalized document, with the
// vocabulary capped at the configured maximum number of features.
func (v *Vectorizer) Weigh(doc string) Vector {
	counts := capFeatures(v.count(doc), v.maxFeatures)
	return weigh([][]termCount{counts})[0]
}

// TopTerms returns up to topN terms of doc with strictly positive weight, in
// descending weight order.
func (v *Vectorizer) TopTerms(doc string, topN int) []string {
	if topN <= 0 {
		return []string{}
	}
	ranked := v.Weigh(doc).Ranked(v.tieBreak)

	out := make([]string, 0, min(topN, len(ranked)))
	for _, t := range ranked {
		if len(out) == topN || t.Weight <= 0 {
			break
		}
		out = append(out, t.Word)
	}
	return out
}

type termCount struct {
	word  string
	count int
	first int
}

// count tallies tokens in first-seen order.
func (v *Vectorizer) count(doc string) []termCount {
	var counts []termCount
	pos := make(map[string]int)
	for _, tok := range strings.Fields(doc) {
		if utf8.RuneCountInString(tok) < v.minTokenLength {
			continue
		}
		if i, ok := pos[tok]; ok {
			counts[i].count++
			continue
		}
		pos[tok] = len(counts)
		counts = append(counts, termCount{word: tok, count: 1, first: len(counts)})
	}
	return counts
}

// capFeatures keeps the limit most frequent terms; frequency ties favor the
// earlier first occurrence. The first-seen order of survivors is preserved.
func capFeatures(counts []termCount, limit int) []termCount {
	if limit <= 0 || len(counts) <= limit {
		return counts
	}
	kept := make([]termCount, len(counts))
	copy(kept, counts)
	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].count > kept[j].count
	})
	kept = kept[:limit]
	sort.Slice(kept, func(i, j int) bool {
		return kept[i].first < kept[j].first
	})
	return kept
}

func weigh(docs [][]termCount) []Vector {
	df := make(map[string]int)
	for _, doc := range docs {
		for _, tc := range doc {
			df[tc.word]++
		}
	}

	n := float64(len(docs))
	out := make([]Vector, len(docs))
	for i, doc := range docs {
		terms := make([]Term, 0, len(doc))
		var sumSq float64
		for _, tc := range doc {
			idf := math.Log((1+n)/(1+float64(df[tc.word]))) + 1
			w := float64(tc.count) * idf
			terms = append(terms, Term{Word: tc.word, Weight: w})
			sumSq += w * w
		}
		if sumSq > 0 {
			norm := math.Sqrt(sumSq)
			for j := range terms {
				terms[j].Weight /= norm
			}
		}
		out[i] = newVector(terms)
	}
	return out
}
