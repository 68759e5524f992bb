package plan

import "strings"

// Task selects the prompt template and the parser applied to the provider output.
type Task string

const (
	DecisionBreaker Task = "decision_breaker"
	InterviewPrep   Task = "interview_prep"
	// ResumeAnalysisStructured asks for a JSON profile and extracts the first
	// {...} block from the reply before parsing.
	ResumeAnalysisStructured Task = "resume_analysis_structured"
	// ResumeAnalysisProse asks for an analysis formatted as JSON and parses the
	// reply directly.
	ResumeAnalysisProse Task = "resume_analysis_prose"
	SkillGapAnalysis    Task = "skill_gap_analysis"
)

// Input carries the user supplied text for a task. Only the fields relevant
// to the task are read.
type Input struct {
	Blocker       string
	Fear          string
	ResumeText    string
	CurrentSkills []string
	TargetRole    string
}

// Validate rejects input that must never reach the provider. Skill gap input
// needs a skills list to be present; an empty list is accepted.
func (in Input) Validate(task Task) error {
	switch task {
	case DecisionBreaker:
		if blank(in.Blocker) {
			return &ValidationError{Field: "blocker", Message: "Please provide a blocker description"}
		}
	case InterviewPrep:
		if blank(in.Fear) {
			return &ValidationError{Field: "fear", Message: "Please describe your interview fear"}
		}
	case ResumeAnalysisStructured, ResumeAnalysisProse:
		if blank(in.ResumeText) {
			return &ValidationError{Field: "resumeText", Message: "Please provide resume text"}
		}
	case SkillGapAnalysis:
		if in.CurrentSkills == nil || blank(in.TargetRole) {
			return &ValidationError{Field: "currentSkills,targetRole", Message: "Please provide current skills and target role"}
		}
	default:
		return &ValidationError{Field: "task", Message: "unknown task: " + string(task)}
	}
	return nil
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
