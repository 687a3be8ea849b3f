package match

import "github.com/kailas-cloud/jobmatch/internal/nlp/tfidf"

// Normalizer turns raw text into a normalized token string.
type Normalizer interface {
	Normalize(text string) string
}

// Vectorizer weighs normalized documents and ranks their terms.
type Vectorizer interface {
	WeighPair(a, b string) (tfidf.Vector, tfidf.Vector)
	TopTerms(doc string, topN int) []string
}
