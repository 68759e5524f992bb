package plan

import (
	"encoding/json"
	"errors"
	"io"
	"regexp"
	"strings"
)

// MaxPlanDays caps the number of entries kept in an action plan.
const MaxPlanDays = 7

var dayMarker = regexp.MustCompile(`^(Day \d+|Day\d+|\d+\.)`)

// ParseActionPlan picks one entry per day out of a free-form provider reply.
//
// A trimmed line is accepted when it starts with a day marker ("Day 3",
// "Day3" or "3."). Failing that, the loose tier accepts any non-empty line
// other than the first one, so replies without explicit markers still yield
// one action per line. The loose tier can admit provider commentary.
// Order is preserved and at most MaxPlanDays entries are returned.
func ParseActionPlan(text string) ActionPlan {
	days := ActionPlan{}
	lines := strings.Split(text, "\n")
	first := strings.TrimSpace(lines[0])

	for i, raw := range lines {
		if len(days) == MaxPlanDays {
			break
		}
		line := strings.TrimSpace(raw)
		switch {
		case dayMarker.MatchString(line):
			days = append(days, line)
		case looseDayLine(i, line, first):
			days = append(days, line)
		}
	}
	return days
}

// looseDayLine is the fallback tier: a non-empty line that is neither the
// first line nor a repeat of it.
func looseDayLine(index int, line, first string) bool {
	return index > 0 && line != "" && line != first
}

var (
	rootCauseSection = sectionPattern("Root Cause")
	exercisesSection = sectionPattern("Exercise")
	questionsSection = sectionPattern("Question")
	mindsetSection   = sectionPattern("Mindset|Affirmation")
)

// ParseInterviewPlan never fails. Sections that cannot be found are empty.
func ParseInterviewPlan(text string) PrepPlan {
	return PrepPlan{
		FullPlan: text,
		Sections: PrepSections{
			RootCause: extractWith(rootCauseSection, text),
			Exercises: extractWith(exercisesSection, text),
			Questions: extractWith(questionsSection, text),
			Mindset:   extractWith(mindsetSection, text),
		},
	}
}

// ExtractSection returns the text from the first case-insensitive match of
// keywordPattern up to, but excluding, the next blank line ("\n\n") or the
// end of text. keywordPattern may be an alternation such as "A|B"; the whole
// alternation is treated as the keyword. An invalid pattern or no match
// yields "".
func ExtractSection(text, keywordPattern string) string {
	re, err := regexp.Compile(`(?i)(?:` + keywordPattern + `)`)
	if err != nil {
		return ""
	}
	return extractWith(re, text)
}

func sectionPattern(keywordPattern string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)(?:` + keywordPattern + `)`)
}

func extractWith(re *regexp.Regexp, text string) string {
	loc := re.FindStringIndex(text)
	if loc == nil {
		return ""
	}
	rest := text[loc[1]:]
	end := strings.Index(rest, "\n\n")
	if end < 0 {
		end = len(rest)
	}
	return text[loc[0] : loc[1]+end]
}

// ParseJSONDirect parses the whole reply as a JSON object. Anything else is
// wrapped verbatim under fallbackKey.
func ParseJSONDirect(text, fallbackKey string) AnalysisResult {
	if obj, ok := decodeObject(text); ok {
		return AnalysisResult{Parsed: obj}
	}
	return fallback(fallbackKey, text)
}

// ParseJSONExtract parses the span from the first '{' to the last '}' of the
// reply, which tolerates prose or code fences around the JSON block. When no
// such span exists or it does not parse, the reply is wrapped verbatim under
// fallbackKey.
func ParseJSONExtract(text, fallbackKey string) AnalysisResult {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end < start {
		return fallback(fallbackKey, text)
	}
	if obj, ok := decodeObject(text[start : end+1]); ok {
		return AnalysisResult{Parsed: obj}
	}
	return fallback(fallbackKey, text)
}

// decodeObject keeps numbers as json.Number so a parsed object re-encodes to
// the same values the provider sent.
func decodeObject(s string) (map[string]any, bool) {
	dec := json.NewDecoder(strings.NewReader(s))
	dec.UseNumber()
	var obj map[string]any
	if err := dec.Decode(&obj); err != nil || obj == nil {
		return nil, false
	}
	// trailing content makes the document invalid
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, false
	}
	return obj, true
}

func fallback(key, text string) AnalysisResult {
	return AnalysisResult{FallbackKey: key, Raw: text}
}
