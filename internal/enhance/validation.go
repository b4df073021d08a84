package enhance

import "strings"

const (
	// Resume length bounds in characters. Anything under the minimum is
	// not a plausible LaTeX resume; anything over the maximum blows the
	// prompt budget.
	MinResumeLen = 200
	MaxResumeLen = 50000
	// MaxJobDescriptionLen bounds the pasted job posting.
	MaxJobDescriptionLen = 10000
)

// Validate checks an enhancement request against the input rules. Rules are
// checked in order and the first violation wins. It has no side effects.
func Validate(resumeSource, jobDescription string) error {
	if strings.TrimSpace(resumeSource) == "" {
		return &ValidationError{Field: "resumeSource", Message: "resume is required"}
	}
	if strings.TrimSpace(jobDescription) == "" {
		return &ValidationError{Field: "jobDescription", Message: "job description is required"}
	}
	if len(resumeSource) < MinResumeLen {
		return &ValidationError{Field: "resumeSource", Message: "resume is too short"}
	}
	if len(resumeSource) > MaxResumeLen {
		return &ValidationError{Field: "resumeSource", Message: "resume is too long"}
	}
	if len(jobDescription) > MaxJobDescriptionLen {
		return &ValidationError{Field: "jobDescription", Message: "job description is too long"}
	}
	return nil
}
