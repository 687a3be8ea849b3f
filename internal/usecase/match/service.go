package match

import (
	"context"

	"go.uber.org/zap"

	dommatch "github.com/kailas-cloud/jobmatch/internal/domain/match"
	"github.com/kailas-cloud/jobmatch/internal/logger"
	"github.com/kailas-cloud/jobmatch/internal/nlp/tfidf"
)

// DefaultTopN is the number of key terms extracted per document.
const DefaultTopN = 20

// Service computes similarity and key-term coverage between a job description
// and a resume. Every call is an independent, synchronous computation.
type Service struct {
	norm Normalizer
	vec  Vectorizer
	topN int
}

var _ dommatch.Analyzer = (*Service)(nil)

// New creates a match service.
func New(norm Normalizer, vec Vectorizer) *Service {
	return &Service{norm: norm, vec: vec, topN: DefaultTopN}
}

// WithTopN sets the number of key terms extracted from each document.
func (s *Service) WithTopN(n int) *Service {
	if n > 0 {
		s.topN = n
	}
	return s
}

// TopN returns the configured key-term count.
func (s *Service) TopN() int { return s.topN }

// Analyze validates the inputs and runs the matching pipeline. Blank inputs fail
// with *domain.InputError before any work is done. topN <= 0 uses the
// configured key-term count.
func (s *Service) Analyze(
	ctx context.Context, jobDescription, resume string, topN int,
) (dommatch.Result, error) {
	if topN <= 0 {
		topN = s.topN
	}
	req, err := dommatch.NewRequest(jobDescription, resume)
	if err != nil {
		return dommatch.Result{}, err
	}

	job := s.norm.Normalize(req.JobDescription())
	res := s.norm.Normalize(req.Resume())

	jobVec, resVec := s.vec.WeighPair(job, res)
	similarity := tfidf.Cosine(jobVec, resVec)

	jobTerms := s.vec.TopTerms(job, topN)
	resTerms := s.vec.TopTerms(res, topN)
	found, missing := diffTerms(jobTerms, resTerms)

	logger.FromContext(ctx).Debug("match computed",
		zap.Int("job_terms", jobVec.Len()),
		zap.Int("resume_terms", resVec.Len()),
		zap.Float64("similarity", similarity),
		zap.Int("found", len(found)),
		zap.Int("missing", len(missing)),
	)

	return dommatch.NewResult(similarity, found, missing), nil
}

// diffTerms splits job terms by membership in the resume terms, keeping job order.
func diffTerms(jobTerms, resumeTerms []string) (found, missing []string) {
	inResume := make(map[string]struct{}, len(resumeTerms))
	for _, t := range resumeTerms {
		inResume[t] = struct{}{}
	}

	found = make([]string, 0, len(jobTerms))
	missing = make([]string, 0, len(jobTerms))
	for _, t := range jobTerms {
		if _, ok := inResume[t]; ok {
			found = append(found, t)
		} else {
			missing = append(missing, t)
		}
	}
	return found, missing
}
