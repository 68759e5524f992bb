package plan

import "encoding/json"

// Fallback keys used when a resume analysis reply is not usable JSON.
const (
	RawAnalysisKey = "rawAnalysis"
	RawResponseKey = "rawResponse"
)

// ActionPlan holds at most MaxPlanDays entries in reply order.
type ActionPlan []string

// PrepPlan is the sectioned interview preparation guide.
type PrepPlan struct {
	FullPlan string       `json:"fullPlan"`
	Sections PrepSections `json:"sections"`
}

type PrepSections struct {
	RootCause string `json:"rootCause"`
	Exercises string `json:"exercises"`
	Questions string `json:"questions"`
	Mindset   string `json:"mindset"`
}

// AnalysisResult is either the parsed JSON object or the raw reply wrapped
// under FallbackKey. Parsed is nil whenever the fallback is in use.
type AnalysisResult struct {
	Parsed      map[string]any
	FallbackKey string
	Raw         string
}

// IsFallback reports whether the reply could not be parsed.
func (a AnalysisResult) IsFallback() bool {
	return a.Parsed == nil
}

// Value returns the object rendered to clients.
func (a AnalysisResult) Value() map[string]any {
	if a.Parsed != nil {
		return a.Parsed
	}
	if a.FallbackKey == "" {
		return map[string]any{}
	}
	return map[string]any{a.FallbackKey: a.Raw}
}

func (a AnalysisResult) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.Value())
}
