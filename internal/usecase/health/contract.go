package health

import "context"

// CachePinger checks result cache availability.
type CachePinger interface {
	Ping(ctx context.Context) error
}

// MatchProber runs a known-answer analysis against the matcher.
type MatchProber interface {
	Analyze(ctx context.Context, jobDescription, resume string, topN int) (float64, error)
}
