package plan

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"github.com/muhammadolammi/pivot/internal/database"
)

const anonymousUser = "anonymous"

// Store persists uploaded resumes together with their analysis.
type Store interface {
	InsertResume(ctx context.Context, arg database.InsertResumeParams) (database.Resume, error)
	ListResumes(ctx context.Context, userID string) ([]database.Resume, error)
	GetResume(ctx context.Context, id uuid.UUID) (database.Resume, error)
}

// DocumentSource resolves an uploaded file to plain text.
type DocumentSource interface {
	FetchText(ctx context.Context, objectKey, mime string) (string, error)
}

type UploadInput struct {
	ResumeText string
	FileName   string
	UserID     string
	// ObjectKey and Mime point at a file in object storage, used when
	// ResumeText is empty.
	ObjectKey string
	Mime      string
}

type UploadResult struct {
	Resume   database.Resume
	Analysis AnalysisResult
	// Stored is false when no store is configured or the insert failed.
	Stored bool
}

// StoreConfigured reports whether resumes can be persisted and listed.
func (h *Handler) StoreConfigured() bool {
	return h.store != nil
}

// UploadResume analyzes a resume with the structured extraction prompt and
// stores it. A failed insert is logged and the unsaved record is returned.
func (h *Handler) UploadResume(ctx context.Context, in UploadInput) (*UploadResult, error) {
	if blank(in.FileName) {
		return nil, &ValidationError{Field: "fileName", Message: "Resume text and file name required"}
	}

	text := in.ResumeText
	if blank(text) && in.ObjectKey != "" {
		fetched, err := h.fetchDocument(ctx, in.ObjectKey, in.Mime)
		if err != nil {
			return nil, err
		}
		text = fetched
	}
	if blank(text) {
		return nil, &ValidationError{Field: "resumeText", Message: "Resume text and file name required"}
	}

	res, err := h.Handle(ctx, ResumeAnalysisStructured, Input{ResumeText: text})
	if err != nil {
		return nil, err
	}

	analysis, err := json.Marshal(res.Analysis)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal analysis: %w", err)
	}
	userID := strings.TrimSpace(in.UserID)
	if userID == "" {
		userID = anonymousUser
	}
	params := database.InsertResumeParams{
		ID:         uuid.New(),
		UserID:     userID,
		FileName:   in.FileName,
		ResumeText: text,
		Analysis:   analysis,
		UploadedAt: res.GeneratedAt,
	}

	out := &UploadResult{
		Resume: database.Resume{
			ID:         params.ID,
			UserID:     params.UserID,
			FileName:   params.FileName,
			ResumeText: params.ResumeText,
			Analysis:   params.Analysis,
			UploadedAt: params.UploadedAt,
		},
		Analysis: res.Analysis,
	}
	if h.store == nil {
		return out, nil
	}

	stored, err := h.store.InsertResume(ctx, params)
	if err != nil {
		log.Printf("⚠️ resume insert failed for %s: %v", params.ID, err)
		return out, nil
	}
	out.Resume = stored
	out.Stored = true
	return out, nil
}

func (h *Handler) fetchDocument(ctx context.Context, objectKey, mime string) (string, error) {
	if h.documents == nil {
		return "", &ValidationError{Field: "objectKey", Message: "object storage not configured"}
	}
	text, err := h.documents.FetchText(ctx, objectKey, mime)
	if errors.Is(err, ErrUnsupportedDocument) {
		return "", &ValidationError{Field: "mime", Message: err.Error()}
	}
	if err != nil {
		return "", fmt.Errorf("failed to fetch %s: %w", objectKey, err)
	}
	return text, nil
}

// ListResumes returns the stored resumes, newest first. An empty userID
// lists every user.
func (h *Handler) ListResumes(ctx context.Context, userID string) ([]database.Resume, error) {
	if h.store == nil {
		return nil, ErrPersistenceUnavailable
	}
	resumes, err := h.store.ListResumes(ctx, strings.TrimSpace(userID))
	if err != nil {
		return nil, fmt.Errorf("failed to list resumes: %w", err)
	}
	if resumes == nil {
		resumes = []database.Resume{}
	}
	return resumes, nil
}

// StoredResume fetches a previously uploaded resume by id.
func (h *Handler) StoredResume(ctx context.Context, resumeID string) (database.Resume, error) {
	if h.store == nil || blank(resumeID) {
		return database.Resume{}, &ValidationError{Field: "resumeId", Message: "Database not configured or resume ID required"}
	}
	id, err := uuid.Parse(strings.TrimSpace(resumeID))
	if err != nil {
		return database.Resume{}, ErrNotFound
	}
	resume, err := h.store.GetResume(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return database.Resume{}, ErrNotFound
	}
	if err != nil {
		return database.Resume{}, fmt.Errorf("failed to get resume %s: %w", id, err)
	}
	return resume, nil
}
