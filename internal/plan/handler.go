package plan

import (
	"context"
	"log"
	"time"
)

// Generator sends a prompt to a text generation provider and returns the raw
// reply.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Publisher receives an update once a result has been assembled.
type Publisher interface {
	Publish(ctx context.Context, routingKey string, update map[string]any) error
}

// Observer is told about provider calls and parse outcomes.
type Observer interface {
	ObserveProviderCall(task Task, elapsed time.Duration, err error)
	ObserveParse(task Task, structured bool)
}

type nopObserver struct{}

func (nopObserver) ObserveProviderCall(Task, time.Duration, error) {}
func (nopObserver) ObserveParse(Task, bool)                        {}

// Handler runs prompt building, generation and parsing for each task. It
// holds no per-request state and is safe for concurrent use as long as its
// collaborators are.
type Handler struct {
	gen       Generator
	store     Store
	documents DocumentSource
	publisher Publisher
	observer  Observer
	now       func() time.Time
}

type Option func(*Handler)

func WithStore(store Store) Option {
	return func(h *Handler) { h.store = store }
}

func WithDocumentSource(src DocumentSource) Option {
	return func(h *Handler) { h.documents = src }
}

func WithPublisher(p Publisher) Option {
	return func(h *Handler) { h.publisher = p }
}

func WithObserver(o Observer) Option {
	return func(h *Handler) { h.observer = o }
}

// WithClock overrides the time source used for generatedAt and uploaded_at.
func WithClock(now func() time.Time) Option {
	return func(h *Handler) { h.now = now }
}

// NewHandler builds a Handler. gen may be nil, in which case every pipeline
// call fails with ErrProviderUnavailable after validation.
func NewHandler(gen Generator, opts ...Option) *Handler {
	h := &Handler{
		gen:      gen,
		observer: nopObserver{},
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Result is the outcome of one pipeline run. Only the field matching Task is
// populated; RawText always holds the provider reply.
type Result struct {
	Task        Task
	Input       Input
	RawText     string
	ActionPlan  ActionPlan
	PrepPlan    PrepPlan
	Analysis    AnalysisResult
	GeneratedAt time.Time
}

// Handle validates in, builds the prompt, calls the provider and parses the
// reply for task. Parse problems never fail the call; they produce a
// degraded result instead.
func (h *Handler) Handle(ctx context.Context, task Task, in Input) (*Result, error) {
	if err := in.Validate(task); err != nil {
		return nil, err
	}

	text, err := h.generate(ctx, task, BuildPrompt(task, in))
	if err != nil {
		return nil, err
	}

	res := &Result{
		Task:        task,
		Input:       in,
		RawText:     text,
		GeneratedAt: h.now().UTC(),
	}

	switch task {
	case DecisionBreaker:
		res.ActionPlan = ParseActionPlan(text)
		h.observer.ObserveParse(task, len(res.ActionPlan) > 0)
	case InterviewPrep:
		res.PrepPlan = ParseInterviewPlan(text)
		h.observer.ObserveParse(task, res.PrepPlan.Sections != PrepSections{})
	case ResumeAnalysisStructured:
		res.Analysis = ParseJSONExtract(text, RawAnalysisKey)
		h.observeAnalysis(task, res.Analysis)
	case ResumeAnalysisProse:
		res.Analysis = ParseJSONDirect(text, RawResponseKey)
		h.observeAnalysis(task, res.Analysis)
	case SkillGapAnalysis:
		// skill gaps are returned verbatim
	}

	h.publish(ctx, res)
	return res, nil
}

func (h *Handler) generate(ctx context.Context, task Task, prompt string) (string, error) {
	if h.gen == nil {
		return "", &ProviderError{Task: task, Err: ErrProviderUnavailable}
	}
	start := time.Now()
	text, err := h.gen.Generate(ctx, prompt)
	h.observer.ObserveProviderCall(task, time.Since(start), err)
	if err != nil {
		return "", &ProviderError{Task: task, Err: err}
	}
	return text, nil
}

func (h *Handler) observeAnalysis(task Task, a AnalysisResult) {
	if a.IsFallback() {
		log.Printf("%s: reply is not valid JSON, keeping raw text under %q", task, a.FallbackKey)
	}
	h.observer.ObserveParse(task, !a.IsFallback())
}

func (h *Handler) publish(ctx context.Context, res *Result) {
	if h.publisher == nil {
		return
	}
	update := map[string]any{
		"task":        string(res.Task),
		"status":      "completed",
		"generatedAt": res.GeneratedAt,
	}
	if err := h.publisher.Publish(ctx, "plan."+string(res.Task), update); err != nil {
		log.Println("failed to publish update:", err)
	}
}
