package resumes

import (
	"context"
	"database/sql"
	"errors"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a saved resume.
func (r *PGRepo) Create(ctx context.Context, resume SavedResume) error {
	const query = `
INSERT INTO saved_resumes (id, user_id, title, latex, job_description, created_at)
VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.DB.ExecContext(ctx, query,
		resume.ID,
		resume.UserID,
		resume.Title,
		resume.Latex,
		resume.JobDescription,
		resume.CreatedAt,
	)
	return err
}

// GetByID returns a saved resume by ID for a user.
func (r *PGRepo) GetByID(ctx context.Context, userID, resumeID string) (SavedResume, error) {
	const query = `
SELECT id, user_id, title, latex, job_description, created_at
FROM saved_resumes
WHERE id = $1
LIMIT 1`
	var resume SavedResume
	err := r.DB.QueryRowContext(ctx, query, resumeID).Scan(
		&resume.ID,
		&resume.UserID,
		&resume.Title,
		&resume.Latex,
		&resume.JobDescription,
		&resume.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return SavedResume{}, ErrNotFound
		}
		return SavedResume{}, err
	}
	if resume.UserID != userID {
		return SavedResume{}, ErrForbidden
	}
	return resume, nil
}

// ListByUser lists saved resumes ordered newest-first.
func (r *PGRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]SavedResume, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	const query = `
SELECT id, user_id, title, latex, job_description, created_at
FROM saved_resumes
WHERE user_id = $1
ORDER BY created_at DESC
LIMIT $2 OFFSET $3`

	rows, err := r.DB.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []SavedResume
	for rows.Next() {
		var resume SavedResume
		if err := rows.Scan(
			&resume.ID,
			&resume.UserID,
			&resume.Title,
			&resume.Latex,
			&resume.JobDescription,
			&resume.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, resume)
	}
	return out, rows.Err()
}

// Delete removes a saved resume owned by the user.
func (r *PGRepo) Delete(ctx context.Context, userID, resumeID string) error {
	const query = `DELETE FROM saved_resumes WHERE id = $1 AND user_id = $2`
	res, err := r.DB.ExecContext(ctx, query, resumeID, userID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// TitleExists reports whether the user already saved a resume with the title.
func (r *PGRepo) TitleExists(ctx context.Context, userID, title string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM saved_resumes WHERE user_id = $1 AND title = $2)`
	var exists bool
	if err := r.DB.QueryRowContext(ctx, query, userID, title).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

var _ Repo = (*PGRepo)(nil)
