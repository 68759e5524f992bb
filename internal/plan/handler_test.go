package plan

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sevenDayReply() string {
	return strings.Join([]string{"Day 1: a", "Day 2: b", "Day 3: c", "Day 4: d", "Day 5: e", "Day 6: f", "Day 7: g"}, "\n")
}

func TestHandleDecisionBreaker(t *testing.T) {
	gen := &fakeGenerator{reply: sevenDayReply()}
	h := NewHandler(gen, WithClock(fixedClock))

	res, err := h.Handle(context.Background(), DecisionBreaker, Input{Blocker: "I keep procrastinating on job applications"})
	require.NoError(t, err)

	assert.Equal(t, ActionPlan{"Day 1: a", "Day 2: b", "Day 3: c", "Day 4: d", "Day 5: e", "Day 6: f", "Day 7: g"}, res.ActionPlan)
	assert.Equal(t, fixedNow, res.GeneratedAt)
	require.Equal(t, 1, gen.calls())
	assert.Contains(t, gen.prompts[0], "I keep procrastinating on job applications")

	env := res.Envelope()
	assert.Equal(t, true, env["success"])
	assert.Equal(t, "I keep procrastinating on job applications", env["blocker"])
	assert.Equal(t, res.ActionPlan, env["actionPlan"])
	assert.Equal(t, sevenDayReply(), env["rawText"])
	assert.Equal(t, fixedNow, env["generatedAt"])
}

func TestHandleInterviewPrep(t *testing.T) {
	gen := &fakeGenerator{reply: "Root Cause: You freeze when watched.\n\nBreathe slowly."}
	h := NewHandler(gen)

	res, err := h.Handle(context.Background(), InterviewPrep, Input{Fear: "whiteboard coding"})
	require.NoError(t, err)

	assert.Equal(t, "Root Cause: You freeze when watched.", res.PrepPlan.Sections.RootCause)
	assert.Empty(t, res.PrepPlan.Sections.Exercises)
	assert.Empty(t, res.PrepPlan.Sections.Questions)
	assert.Empty(t, res.PrepPlan.Sections.Mindset)

	env := res.Envelope()
	assert.Equal(t, "whiteboard coding", env["fear"])
	assert.Equal(t, res.PrepPlan, env["prepPlan"])
}

func TestHandleResumeAnalysisProseUsesDirectParse(t *testing.T) {
	gen := &fakeGenerator{reply: "Analysis: {\"skills\":[\"Go\"]}"}
	h := NewHandler(gen)

	res, err := h.Handle(context.Background(), ResumeAnalysisProse, Input{ResumeText: "Go developer"})
	require.NoError(t, err)

	assert.True(t, res.Analysis.IsFallback())
	assert.Equal(t, map[string]any{RawResponseKey: gen.reply}, res.Analysis.Value())
	assert.Equal(t, true, res.Envelope()["success"])
}

func TestHandleResumeAnalysisStructuredExtracts(t *testing.T) {
	gen := &fakeGenerator{reply: "Analysis: {\"skills\":[\"Go\"]}"}
	h := NewHandler(gen)

	res, err := h.Handle(context.Background(), ResumeAnalysisStructured, Input{ResumeText: "Go developer"})
	require.NoError(t, err)

	require.False(t, res.Analysis.IsFallback())
	assert.Equal(t, []any{"Go"}, res.Analysis.Parsed["skills"])
}

func TestHandleSkillGapsReturnsRawText(t *testing.T) {
	gen := &fakeGenerator{reply: "```json\n{\"gaps\":[\"k8s\"]}\n```"}
	h := NewHandler(gen)

	res, err := h.Handle(context.Background(), SkillGapAnalysis, Input{CurrentSkills: []string{"Go", "SQL"}, TargetRole: "SRE"})
	require.NoError(t, err)

	env := res.Envelope()
	assert.Equal(t, gen.reply, env["skillAnalysis"])
	assert.NotContains(t, env, "analysis")
	assert.Contains(t, gen.prompts[0], "Go, SQL")
}

func TestHandleRejectsBlankInputWithoutCallingProvider(t *testing.T) {
	cases := []struct {
		task Task
		in   Input
	}{
		{DecisionBreaker, Input{Blocker: "   "}},
		{InterviewPrep, Input{Fear: "\n"}},
		{ResumeAnalysisProse, Input{ResumeText: ""}},
		{ResumeAnalysisStructured, Input{ResumeText: "\t"}},
		{SkillGapAnalysis, Input{CurrentSkills: []string{"Go"}}},
		{SkillGapAnalysis, Input{TargetRole: "SRE"}},
	}

	for _, tc := range cases {
		t.Run(string(tc.task), func(t *testing.T) {
			gen := &fakeGenerator{reply: "unused"}
			h := NewHandler(gen)

			_, err := h.Handle(context.Background(), tc.task, tc.in)

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, http.StatusBadRequest, StatusCode(err))
			assert.Equal(t, 0, gen.calls())
		})
	}
}

func TestHandleSkillGapsAcceptsEmptySkillList(t *testing.T) {
	gen := &fakeGenerator{reply: "learn everything"}
	h := NewHandler(gen)

	res, err := h.Handle(context.Background(), SkillGapAnalysis, Input{CurrentSkills: []string{}, TargetRole: "SRE"})
	require.NoError(t, err)
	assert.Equal(t, "learn everything", res.RawText)
	assert.Equal(t, 1, gen.calls())
}

func TestHandleProviderFailure(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("quota exceeded")}
	obs := &fakeObserver{}
	h := NewHandler(gen, WithObserver(obs))

	_, err := h.Handle(context.Background(), DecisionBreaker, Input{Blocker: "stuck"})

	var perr *ProviderError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, DecisionBreaker, perr.Task)
	assert.Equal(t, "quota exceeded", err.Error())
	assert.Equal(t, http.StatusInternalServerError, StatusCode(err))
	assert.Equal(t, map[string]any{"success": false, "error": "quota exceeded"}, ErrorEnvelope(err))
	require.Len(t, obs.providerCalls, 1)
	assert.Error(t, obs.providerCalls[0])
}

func TestHandleWithoutProvider(t *testing.T) {
	h := NewHandler(nil)

	_, err := h.Handle(context.Background(), InterviewPrep, Input{Fear: "silence"})

	assert.ErrorIs(t, err, ErrProviderUnavailable)
	assert.Equal(t, http.StatusInternalServerError, StatusCode(err))
}

func TestHandleParseDegradationStillSucceeds(t *testing.T) {
	gen := &fakeGenerator{reply: "I cannot help with that."}
	obs := &fakeObserver{}
	h := NewHandler(gen, WithObserver(obs))

	res, err := h.Handle(context.Background(), DecisionBreaker, Input{Blocker: "stuck"})
	require.NoError(t, err)

	assert.Empty(t, res.ActionPlan)
	assert.Equal(t, true, res.Envelope()["success"])
	assert.False(t, obs.parses[DecisionBreaker])
}

func TestHandlePublishesAfterSuccess(t *testing.T) {
	pub := &fakePublisher{err: errors.New("broker down")}
	h := NewHandler(&fakeGenerator{reply: "Day 1: go"}, WithPublisher(pub), WithClock(fixedClock))

	_, err := h.Handle(context.Background(), DecisionBreaker, Input{Blocker: "stuck"})
	require.NoError(t, err, "publish failures are not surfaced")

	require.Len(t, pub.sent, 1)
	assert.Equal(t, "plan.decision_breaker", pub.sent[0].key)
	assert.Equal(t, "completed", pub.sent[0].update["status"])
	assert.Equal(t, fixedNow, pub.sent[0].update["generatedAt"])
}

func TestHandleDoesNotPublishOnFailure(t *testing.T) {
	pub := &fakePublisher{}
	h := NewHandler(&fakeGenerator{err: errors.New("boom")}, WithPublisher(pub))

	_, err := h.Handle(context.Background(), DecisionBreaker, Input{Blocker: "stuck"})
	require.Error(t, err)
	assert.Empty(t, pub.sent)
}
