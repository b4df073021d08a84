package resumes

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

const maxTitleLen = 200

// Service contains business logic for saved resumes.
type Service struct {
	Repo Repo
}

// Save stores a tailored resume under a per-user unique title. Uniqueness is
// enforced with a pre-check query, not a transaction; a concurrent save with
// the same title can slip through, which is acceptable for a personal
// low-concurrency collection (the schema's unique index is the backstop).
func (s *Service) Save(ctx context.Context, userID, title, latex, jobDescription string) (SavedResume, error) {
	title = strings.TrimSpace(title)
	if userID == "" {
		return SavedResume{}, errors.New("userID is required")
	}
	if title == "" {
		return SavedResume{}, ErrTitleRequired
	}
	if len(title) > maxTitleLen {
		return SavedResume{}, ErrTitleTooLong
	}
	if strings.TrimSpace(latex) == "" {
		return SavedResume{}, ErrLatexRequired
	}

	exists, err := s.Repo.TitleExists(ctx, userID, title)
	if err != nil {
		return SavedResume{}, err
	}
	if exists {
		return SavedResume{}, ErrDuplicateTitle
	}

	resume := SavedResume{
		ID:             uuid.NewString(),
		UserID:         userID,
		Title:          title,
		Latex:          latex,
		JobDescription: jobDescription,
		CreatedAt:      time.Now().UTC(),
	}
	if err := s.Repo.Create(ctx, resume); err != nil {
		return SavedResume{}, err
	}
	return resume, nil
}

// Get fetches one saved resume with an ownership check.
func (s *Service) Get(ctx context.Context, userID, resumeID string) (SavedResume, error) {
	return s.Repo.GetByID(ctx, userID, resumeID)
}

// List returns the user's saved resumes, newest first.
func (s *Service) List(ctx context.Context, userID string, limit, offset int) ([]SavedResume, error) {
	return s.Repo.ListByUser(ctx, userID, limit, offset)
}

// Delete removes one saved resume owned by the user.
func (s *Service) Delete(ctx context.Context, userID, resumeID string) error {
	return s.Repo.Delete(ctx, userID, resumeID)
}
