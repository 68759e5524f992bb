package provider

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"google.golang.org/adk/agent"
	"google.golang.org/adk/agent/llmagent"
	"google.golang.org/adk/model"
	"google.golang.org/adk/model/gemini"
	"google.golang.org/adk/runner"
	"google.golang.org/adk/session"
	"google.golang.org/genai"
)

const agentUser = "pivot"

const agentInstruction = `You are a practical career coach.
Follow the output format requested in each message exactly.
Be encouraging, specific, and actionable.
Base all reasoning only on the text the user provides.`

// Agent runs prompts through an ADK llm agent. Every call gets its own
// in-memory session which is deleted afterwards, so no conversation state
// leaks between requests.
type Agent struct {
	name     string
	runner   *runner.Runner
	sessions session.Service
}

func NewAgent(ctx context.Context, apiKey, modelName, name string) (*Agent, error) {
	if modelName == "" {
		modelName = DefaultModel
	}
	llm, err := gemini.NewModel(ctx, modelName, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create model: %v", err)
	}
	return newAgent(llm, name)
}

func newAgent(llm model.LLM, name string) (*Agent, error) {
	coach, err := llmagent.New(llmagent.Config{
		Name:        name,
		Model:       llm,
		Description: "Turn career blockers, interview fears and resumes into plans",
		Instruction: agentInstruction,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create agent: %v", err)
	}

	sessions := session.InMemoryService()
	r, err := runner.New(runner.Config{
		AppName:        coach.Name(),
		Agent:          coach,
		SessionService: sessions,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create runner: %v", err)
	}

	return &Agent{name: coach.Name(), runner: r, sessions: sessions}, nil
}

func (a *Agent) Generate(ctx context.Context, prompt string) (string, error) {
	created, err := a.sessions.Create(ctx, &session.CreateRequest{
		AppName:   a.name,
		UserID:    agentUser,
		SessionID: uuid.NewString(),
	})
	if err != nil {
		return "", fmt.Errorf("failed to create session: %w", err)
	}
	sess := created.Session
	defer func() {
		// the request context may already be cancelled
		_ = a.sessions.Delete(context.Background(), &session.DeleteRequest{
			AppName:   sess.AppName(),
			UserID:    sess.UserID(),
			SessionID: sess.ID(),
		})
	}()

	stream := a.runner.Run(ctx, sess.UserID(), sess.ID(), &genai.Content{
		Role: "user",
		Parts: []*genai.Part{
			{Text: prompt},
		},
	}, agent.RunConfig{})

	var output string
	for event, err := range stream {
		if err != nil {
			return "", err
		}
		if event != nil && event.IsFinalResponse() && event.Content != nil && len(event.Content.Parts) > 0 {
			output = event.Content.Parts[0].Text
		}
	}
	return output, nil
}
