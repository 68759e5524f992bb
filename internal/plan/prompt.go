package plan

import (
	"fmt"
	"strings"
)

// BuildPrompt renders the instruction sent to the provider for task. The user
// text is interpolated verbatim. Callers validate the input first.
func BuildPrompt(task Task, in Input) string {
	switch task {
	case DecisionBreaker:
		return fmt.Sprintf(`The user says: "%s".
Generate a practical 7-day micro-action plan to overcome this blocker.
Format as a numbered list with one day per line and daily tasks that take 5-15 minutes each.
Be encouraging, specific, and actionable.
Start each line with the day number, e.g. "Day 1: <action>".`, in.Blocker)

	case InterviewPrep:
		return fmt.Sprintf(`The user is afraid of: "%s" in interviews.
Generate a targeted interview prep strategy to overcome this specific fear.
Include:
1. Root cause analysis (2-3 sentences)
2. Three confidence-building exercises with specific steps
3. Five practice interview questions specific to this fear
4. Mindset shifts and affirmations

Start each part with its heading (Root Cause, Exercises, Questions, Mindset) and separate parts with a blank line.
Be encouraging, practical, and actionable.`, in.Fear)

	case ResumeAnalysisStructured:
		return fmt.Sprintf(`Analyze this resume and extract in JSON format:
{
  "fullName": "extracted name or 'Not found'",
  "skills": ["skill1", "skill2", ...],
  "yearsExperience": number,
  "careerGaps": ["gap1", "gap2"],
  "specializations": ["area1", "area2"],
  "potentialRoles": ["role1", "role2"],
  "marketDemand": ["high-demand-skill1", "high-demand-skill2"],
  "improvements": ["improvement1", "improvement2"]
}

Resume:
%s`, in.ResumeText)

	case ResumeAnalysisProse:
		return fmt.Sprintf(`Analyze this resume and provide:
1. List of detected skills (comma-separated)
2. Years of experience
3. Any career gaps mentioned
4. Top 3 areas for improvement
5. Top 3 unique skill combinations for market advantage
6. Estimated salary range based on experience and skills

Resume:
%s

Format as JSON with keys: skills, experience, careerGaps, improvements, skillCombos, salaryRange`, in.ResumeText)

	case SkillGapAnalysis:
		return fmt.Sprintf(`Given the current skills: %s and target role: "%s"
Analyze and provide:
1. Required skills for the target role
2. Skill gaps (what's missing)
3. Priority of learning each missing skill (High/Medium/Low)
4. Estimated time to learn each skill
5. Recommended learning resources and order
6. Micro-learning path (monthly milestones)

Format as JSON with keys: requiredSkills, gaps, priorities, timeline, resources, learningPath`,
			strings.Join(in.CurrentSkills, ", "), in.TargetRole)
	}
	return ""
}
