package match

import (
	"strings"

	"github.com/kailas-cloud/jobmatch/internal/domain"
)

// Request field names as they appear on the wire.
const (
	FieldJobDescription = "job_description"
	FieldResume         = "resume"
)

// Request is a validated pair of documents to compare.
type Request struct {
	jobDescription string
	resume         string
}

// NewRequest validates both documents. Empty and whitespace-only text is rejected
// with a *domain.InputError; job_description is checked first.
func NewRequest(jobDescription, resume string) (Request, error) {
	if strings.TrimSpace(jobDescription) == "" {
		return Request{}, domain.NewInputError(FieldJobDescription)
	}
	if strings.TrimSpace(resume) == "" {
		return Request{}, domain.NewInputError(FieldResume)
	}
	return Request{jobDescription: jobDescription, resume: resume}, nil
}

// JobDescription returns the raw job description text.
func (r Request) JobDescription() string { return r.jobDescription }

// Resume returns the raw resume text.
func (r Request) Resume() string { return r.resume }
