package match

import "context"

// Analyzer compares a job description with a resume. topN <= 0 selects the
// analyzer's configured key-term count.
type Analyzer interface {
	Analyze(ctx context.Context, jobDescription, resume string, topN int) (Result, error)
}
