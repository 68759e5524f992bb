package database

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

const getResume = `-- name: GetResume :one
SELECT id, user_id, file_name, resume_text, analysis, uploaded_at FROM resumes WHERE id=$1
`

func (q *Queries) GetResume(ctx context.Context, id uuid.UUID) (Resume, error) {
	row := q.db.QueryRowContext(ctx, getResume, id)
	var i Resume
	err := row.Scan(
		&i.ID,
		&i.UserID,
		&i.FileName,
		&i.ResumeText,
		&i.Analysis,
		&i.UploadedAt,
	)
	return i, err
}

const insertResume = `-- name: InsertResume :one
INSERT INTO resumes (
id, user_id, file_name, resume_text, analysis, uploaded_at)
VALUES ( $1, $2, $3, $4, $5, $6)
RETURNING id, user_id, file_name, resume_text, analysis, uploaded_at
`

type InsertResumeParams struct {
	ID         uuid.UUID
	UserID     string
	FileName   string
	ResumeText string
	Analysis   json.RawMessage
	UploadedAt time.Time
}

func (q *Queries) InsertResume(ctx context.Context, arg InsertResumeParams) (Resume, error) {
	row := q.db.QueryRowContext(ctx, insertResume,
		arg.ID,
		arg.UserID,
		arg.FileName,
		arg.ResumeText,
		arg.Analysis,
		arg.UploadedAt,
	)
	var i Resume
	err := row.Scan(
		&i.ID,
		&i.UserID,
		&i.FileName,
		&i.ResumeText,
		&i.Analysis,
		&i.UploadedAt,
	)
	return i, err
}

const listResumes = `-- name: ListResumes :many
SELECT id, user_id, file_name, resume_text, analysis, uploaded_at FROM resumes
WHERE ($1::text = '' OR user_id = $1)
ORDER BY uploaded_at DESC
`

func (q *Queries) ListResumes(ctx context.Context, userID string) ([]Resume, error) {
	rows, err := q.db.QueryContext(ctx, listResumes, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Resume
	for rows.Next() {
		var i Resume
		if err := rows.Scan(
			&i.ID,
			&i.UserID,
			&i.FileName,
			&i.ResumeText,
			&i.Analysis,
			&i.UploadedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
