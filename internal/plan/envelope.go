package plan

import (
	"encoding/json"

	"github.com/muhammadolammi/pivot/internal/database"
)

// Envelope renders a successful result with the task specific payload.
func (r *Result) Envelope() map[string]any {
	env := map[string]any{
		"success":     true,
		"generatedAt": r.GeneratedAt,
	}
	switch r.Task {
	case DecisionBreaker:
		env["blocker"] = r.Input.Blocker
		env["actionPlan"] = r.ActionPlan
		env["rawText"] = r.RawText
	case InterviewPrep:
		env["fear"] = r.Input.Fear
		env["prepPlan"] = r.PrepPlan
		env["rawText"] = r.RawText
	case ResumeAnalysisStructured, ResumeAnalysisProse:
		env["analysis"] = r.Analysis
		env["rawText"] = r.RawText
	case SkillGapAnalysis:
		env["skillAnalysis"] = r.RawText
	}
	return env
}

func (u *UploadResult) Envelope() map[string]any {
	return map[string]any{
		"success":  true,
		"message":  "Resume uploaded and analyzed",
		"stored":   u.Stored,
		"resume":   u.Resume,
		"analysis": u.Analysis,
	}
}

func ResumeListEnvelope(resumes []database.Resume) map[string]any {
	return map[string]any{
		"success": true,
		"count":   len(resumes),
		"resumes": resumes,
	}
}

// PersistenceUnavailableEnvelope is returned by list endpoints when no store
// is configured.
func PersistenceUnavailableEnvelope() map[string]any {
	return map[string]any{
		"success": false,
		"message": "Database not configured",
		"resumes": []database.Resume{},
	}
}

// StoredResumeEnvelope falls back to an empty analysis object when the row
// has none.
func StoredResumeEnvelope(resume database.Resume) map[string]any {
	analysis := resume.Analysis
	if len(analysis) == 0 || string(analysis) == "null" {
		analysis = json.RawMessage(`{}`)
	}
	return map[string]any{
		"success":  true,
		"resume":   resume,
		"analysis": analysis,
	}
}

// ErrorEnvelope shapes err for clients. Only the error message is exposed.
func ErrorEnvelope(err error) map[string]any {
	return map[string]any{
		"success": false,
		"error":   err.Error(),
	}
}
