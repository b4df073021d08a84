package enhance

// EnhancementRequest carries one resume/job-description pair for a single
// enhancement exchange. It is never shared across requests.
type EnhancementRequest struct {
	ResumeSource   string `json:"resumeSource"`
	JobDescription string `json:"jobDescription"`
}

// ChangeItem is one itemized enhancement or removal with its justification.
type ChangeItem struct {
	Item        string `json:"item"`
	Description string `json:"description"`
	Reason      string `json:"reason"`
}

// EnhancementResult is the typed payload recovered from a model reply.
type EnhancementResult struct {
	RewrittenResume       string       `json:"rewrittenResume"`
	MatchScore            int          `json:"matchScore"`
	MatchScoreExplanation string       `json:"matchScoreExplanation"`
	EnhancedParts         []ChangeItem `json:"enhancedParts"`
	RemovedParts          []ChangeItem `json:"removedParts"`
}
