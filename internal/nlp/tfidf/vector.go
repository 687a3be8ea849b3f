package tfidf

import (
	"math"
	"sort"
)

// Term is a single term-weight pair.
type Term struct {
	Word   string
	Weight float64
}

// Vector is a sparse weighted-frequency vector. Terms keep the order in which
// they first occurred in the source document; absent terms weigh 0.
type Vector struct {
	terms []Term
	index map[string]int
}

func newVector(terms []Term) Vector {
	index := make(map[string]int, len(terms))
	for i, t := range terms {
		index[t.Word] = i
	}
	return Vector{terms: terms, index: index}
}

// Len returns the number of terms with a stored weight.
func (v Vector) Len() int { return len(v.terms) }

// Weight returns the weight of word, or 0 if the document does not contain it.
func (v Vector) Weight(word string) float64 {
	if i, ok := v.index[word]; ok {
		return v.terms[i].Weight
	}
	return 0
}

// Terms returns a copy of the terms in first-seen order.
func (v Vector) Terms() []Term {
	out := make([]Term, len(v.terms))
	copy(out, v.terms)
	return out
}

// Ranked returns the terms sorted by descending weight. Equal weights are
// ordered by tb: first occurrence in the document, or alphabetically.
func (v Vector) Ranked(tb TieBreak) []Term {
	out := v.Terms()
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Weight != out[j].Weight {
			return out[i].Weight > out[j].Weight
		}
		if tb == TieBreakAlphabetical {
			return out[i].Word < out[j].Word
		}
		return false
	})
	return out
}

// sortedWords returns the stored words in lexical order.
func (v Vector) sortedWords() []string {
	words := make([]string, len(v.terms))
	for i, t := range v.terms {
		words[i] = t.Word
	}
	sort.Strings(words)
	return words
}

// Cosine returns the cosine of the angle between a and b in their shared term
// space. Empty vectors yield 0. The dot product and both norms are summed in
// lexical term order, so the result does not depend on argument order and
// identical vectors score exactly 1. The result is clamped to [0, 1].
func Cosine(a, b Vector) float64 {
	if a.Len() == 0 || b.Len() == 0 {
		return 0
	}

	var dot, sa float64
	for _, w := range a.sortedWords() {
		wa := a.Weight(w)
		sa += wa * wa
		if wb, ok := b.index[w]; ok {
			dot += wa * b.terms[wb].Weight
		}
	}
	if dot == 0 {
		return 0
	}

	var sb float64
	for _, w := range b.sortedWords() {
		wb := b.Weight(w)
		sb += wb * wb
	}

	denom := math.Sqrt(sa * sb)
	if denom == 0 {
		return 0
	}
	sim := dot / denom
	switch {
	case sim < 0:
		return 0
	case sim > 1:
		return 1
	}
	return sim
}
