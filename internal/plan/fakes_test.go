package plan

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/muhammadolammi/pivot/internal/database"
)

type fakeGenerator struct {
	mu      sync.Mutex
	reply   string
	err     error
	prompts []string
}

func (g *fakeGenerator) Generate(_ context.Context, prompt string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.prompts = append(g.prompts, prompt)
	return g.reply, g.err
}

func (g *fakeGenerator) calls() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.prompts)
}

type published struct {
	key    string
	update map[string]any
}

type fakePublisher struct {
	err  error
	sent []published
}

func (p *fakePublisher) Publish(_ context.Context, key string, update map[string]any) error {
	p.sent = append(p.sent, published{key: key, update: update})
	return p.err
}

type fakeObserver struct {
	providerCalls []error
	parses        map[Task]bool
}

func (o *fakeObserver) ObserveProviderCall(_ Task, _ time.Duration, err error) {
	o.providerCalls = append(o.providerCalls, err)
}

func (o *fakeObserver) ObserveParse(task Task, structured bool) {
	if o.parses == nil {
		o.parses = map[Task]bool{}
	}
	o.parses[task] = structured
}

type fakeStore struct {
	inserted  []database.InsertResumeParams
	insertErr error
	list      []database.Resume
	listUser  string
	get       map[uuid.UUID]database.Resume
	getErr    error
}

func (s *fakeStore) InsertResume(_ context.Context, arg database.InsertResumeParams) (database.Resume, error) {
	s.inserted = append(s.inserted, arg)
	if s.insertErr != nil {
		return database.Resume{}, s.insertErr
	}
	return database.Resume{
		ID:         arg.ID,
		UserID:     arg.UserID,
		FileName:   arg.FileName,
		ResumeText: arg.ResumeText,
		Analysis:   arg.Analysis,
		UploadedAt: arg.UploadedAt,
	}, nil
}

func (s *fakeStore) ListResumes(_ context.Context, userID string) ([]database.Resume, error) {
	s.listUser = userID
	return s.list, nil
}

func (s *fakeStore) GetResume(_ context.Context, id uuid.UUID) (database.Resume, error) {
	if s.getErr != nil {
		return database.Resume{}, s.getErr
	}
	return s.get[id], nil
}

type fakeDocuments struct {
	text string
	err  error
	keys []string
}

func (d *fakeDocuments) FetchText(_ context.Context, objectKey, _ string) (string, error) {
	d.keys = append(d.keys, objectKey)
	return d.text, d.err
}

var fixedNow = time.Date(2026, 10, 17, 8, 30, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }
