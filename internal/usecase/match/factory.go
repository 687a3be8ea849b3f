package match

import (
	"fmt"

	"github.com/kailas-cloud/jobmatch/internal/domain"
	"github.com/kailas-cloud/jobmatch/internal/nlp/lexicon"
	"github.com/kailas-cloud/jobmatch/internal/nlp/normalize"
	"github.com/kailas-cloud/jobmatch/internal/nlp/tfidf"
)

// Built is a ready matching service plus the identity of the settings behind it.
type Built struct {
	Service *Service
	Lexicon *lexicon.Lexicon
	// Fingerprint changes whenever any setting that affects results changes.
	Fingerprint string
}

// NewFromConfig loads the stop words and assembles the pipeline.
// Stop-word failures wrap domain.ErrResourceUnavailable.
func NewFromConfig(cfg domain.MatcherConfig) (Built, error) {
	tb, err := tfidf.ParseTieBreak(cfg.TieBreak)
	if err != nil {
		return Built{}, err
	}

	lex, err := loadLexicon(cfg)
	if err != nil {
		return Built{}, err
	}

	norm := normalize.New(lex, normalize.WithFoldDiacritics(cfg.FoldDiacritics))
	vec := tfidf.New(
		tfidf.WithMaxFeatures(cfg.MaxFeatures),
		tfidf.WithMinTokenLength(cfg.MinTokenLength),
		tfidf.WithTieBreak(tb),
	)
	svc := New(norm, vec).WithTopN(cfg.TopN)

	return Built{
		Service: svc,
		Lexicon: lex,
		Fingerprint: fmt.Sprintf("%s/%s/%d/%d/%d/%s/%t",
			lex.Language(), lex.Digest(), svc.TopN(), cfg.MaxFeatures,
			cfg.MinTokenLength, tb, cfg.FoldDiacritics),
	}, nil
}

func loadLexicon(cfg domain.MatcherConfig) (*lexicon.Lexicon, error) {
	switch {
	case len(cfg.StopWords) > 0:
		tag, err := lexicon.ParseLanguage(cfg.Language)
		if err != nil {
			return nil, err
		}
		return lexicon.New(tag, cfg.StopWords)
	case cfg.StopWordsFile != "":
		tag, err := lexicon.ParseLanguage(cfg.Language)
		if err != nil {
			return nil, err
		}
		return lexicon.LoadFile(cfg.StopWordsFile, tag)
	default:
		return lexicon.Builtin(cfg.Language)
	}
}
