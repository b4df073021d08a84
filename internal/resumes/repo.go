package resumes

import "context"

// Repo defines persistence operations for saved resumes.
type Repo interface {
	Create(ctx context.Context, resume SavedResume) error
	GetByID(ctx context.Context, userID, resumeID string) (SavedResume, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]SavedResume, error)
	Delete(ctx context.Context, userID, resumeID string) error
	TitleExists(ctx context.Context, userID, title string) (bool, error)
}
