package database

import (
	"context"
	_ "embed"
	"fmt"
)

//go:embed schema.sql
var schema string

type Column struct {
	Name    string `json:"name"`
	Type    string `json:"type"`
	Primary bool   `json:"primary,omitempty"`
}

type Table struct {
	Name    string   `json:"name"`
	Columns []Column `json:"columns"`
}

// Tables describes the schema applied by Migrate.
var Tables = []Table{
	{
		Name: "resumes",
		Columns: []Column{
			{Name: "id", Type: "uuid", Primary: true},
			{Name: "user_id", Type: "text"},
			{Name: "file_name", Type: "text"},
			{Name: "resume_text", Type: "text"},
			{Name: "analysis", Type: "jsonb"},
			{Name: "uploaded_at", Type: "timestamp"},
		},
	},
	{
		Name: "dashboard_analytics",
		Columns: []Column{
			{Name: "id", Type: "uuid", Primary: true},
			{Name: "user_id", Type: "text"},
			{Name: "resume_id", Type: "uuid"},
			{Name: "skill_sync_score", Type: "integer"},
			{Name: "decision_breaker_count", Type: "integer"},
			{Name: "interview_preps", Type: "jsonb"},
			{Name: "last_updated", Type: "timestamp"},
		},
	},
}

// Migrate creates the tables if they do not exist yet.
func Migrate(ctx context.Context, db DBTX) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}
