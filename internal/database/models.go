package database

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type Resume struct {
	ID         uuid.UUID       `json:"id"`
	UserID     string          `json:"user_id"`
	FileName   string          `json:"file_name"`
	ResumeText string          `json:"resume_text"`
	Analysis   json.RawMessage `json:"analysis"`
	UploadedAt time.Time       `json:"uploaded_at"`
}
