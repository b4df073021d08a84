package resumes

import "time"

// SavedResume is one tailored resume a user chose to keep. Saved resumes are
// created and deleted, never updated.
type SavedResume struct {
	ID             string    `json:"id"`
	UserID         string    `json:"-"`
	Title          string    `json:"title"`
	Latex          string    `json:"latex"`
	JobDescription string    `json:"jobDescription"`
	CreatedAt      time.Time `json:"createdAt"`
}
