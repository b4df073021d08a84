package resumes

import "errors"

var (
	ErrNotFound       = errors.New("saved resume not found")
	ErrForbidden      = errors.New("saved resume belongs to another user")
	ErrDuplicateTitle = errors.New("a resume with this title already exists")
	ErrTitleRequired  = errors.New("title is required")
	ErrTitleTooLong   = errors.New("title is too long")
	ErrLatexRequired  = errors.New("latex is required")
)
