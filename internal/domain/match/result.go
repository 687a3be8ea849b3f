package match

// Result is the outcome of comparing a job description with a resume.
type Result struct {
	similarity float64
	found      []string
	missing    []string
}

// NewResult creates a match result. Nil term slices are stored as empty slices.
func NewResult(similarity float64, found, missing []string) Result {
	if found == nil {
		found = []string{}
	}
	if missing == nil {
		missing = []string{}
	}
	return Result{similarity: similarity, found: found, missing: missing}
}

// Similarity returns the cosine similarity in [0, 1].
func (r Result) Similarity() float64 { return r.similarity }

// Percentage returns the similarity scaled to [0, 100].
func (r Result) Percentage() float64 { return r.similarity * 100 }

// FoundTerms returns the job key terms that also appear among the resume key terms.
func (r Result) FoundTerms() []string { return r.found }

// MissingTerms returns the job key terms absent from the resume key terms.
func (r Result) MissingTerms() []string { return r.missing }
