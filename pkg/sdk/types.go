package jobmatch

// MatchResult is the outcome of comparing a job description with a resume.
type MatchResult struct {
	// Score is the cosine similarity in [0, 1].
	Score float64 `json:"match_score"`
	// Percentage is Score * 100.
	Percentage float64 `json:"match_percentage"`
	// KeyTermsFound are the job's key terms that are also resume key terms, in job order.
	KeyTermsFound []string `json:"key_terms_found"`
	// MissingTerms are the remaining job key terms, in job order.
	MissingTerms []string `json:"missing_terms"`
}

// TieBreak values for WithTieBreak.
const (
	TieBreakFirstSeen    = "first_seen"
	TieBreakAlphabetical = "alphabetical"
)
