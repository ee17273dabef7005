package cli

import (
	"context"

	"github.com/custodia-labs/gdpr-rag/internal/core/domain"
	"github.com/custodia-labs/gdpr-rag/internal/core/ports/driven"
	"github.com/custodia-labs/gdpr-rag/internal/core/ports/driving"
)

// mockIndexService replays progress lines and records build options.
type mockIndexService struct {
	lines  []string
	report *domain.BuildReport
	err    error
	opts   driving.BuildOptions
	builds int

	watches  int
	watchErr error
}

func (m *mockIndexService) State(context.Context) (domain.IndexState, error) {
	return domain.IndexStateReady, nil
}

func (m *mockIndexService) Build(_ context.Context, opts driving.BuildOptions) (*domain.BuildReport, error) {
	m.builds++
	m.opts = opts
	for _, l := range m.lines {
		opts.Progress(l)
	}
	if m.err != nil {
		return nil, m.err
	}
	if m.report == nil {
		return &domain.BuildReport{Decision: domain.BuildDecisionFresh}, nil
	}
	return m.report, nil
}

func (m *mockIndexService) Open(context.Context, driving.ProgressFunc) (driven.VectorIndex, *domain.IndexManifest, error) {
	return nil, nil, domain.ErrIndexNotFound
}

func (m *mockIndexService) Watch(_ context.Context, progress driving.ProgressFunc) error {
	m.watches++
	progress("Watching data/GDPR Art 1-21.pdf for changes...")
	return m.watchErr
}

// mockQueryService answers every question with a fixed answer.
type mockQueryService struct {
	hits        []domain.RetrievedChunk
	prompt      string
	sources     []string
	text        string
	model       string
	prepareErr  error
	completeErr error
	question    string
}

func (m *mockQueryService) Retrieve(_ context.Context, q string) ([]domain.RetrievedChunk, error) {
	m.question = q
	return m.hits, m.prepareErr
}

func (m *mockQueryService) Prepare(_ context.Context, q string) (*domain.Answer, error) {
	m.question = q
	if m.prepareErr != nil {
		return nil, m.prepareErr
	}
	return &domain.Answer{Question: q, Prompt: m.prompt, Sources: m.sources}, nil
}

func (m *mockQueryService) Complete(_ context.Context, a *domain.Answer) error {
	if m.completeErr != nil {
		return m.completeErr
	}
	a.Text = m.text
	a.Model = m.model
	return nil
}

func (m *mockQueryService) Ask(ctx context.Context, q string) (*domain.Answer, error) {
	a, err := m.Prepare(ctx, q)
	if err != nil {
		return nil, err
	}
	return a, m.Complete(ctx, a)
}

func (m *mockQueryService) ModelName() string { return m.model }

// mockSettingsService keeps settings in memory.
type mockSettingsService struct {
	settings    domain.AppSettings
	set         map[string]string
	setErr      error
	validateErr error
	checkErr    error
	checks      int
}

func newMockSettingsService() *mockSettingsService {
	return &mockSettingsService{
		settings: domain.DefaultAppSettings(),
		set:      make(map[string]string),
	}
}

func (m *mockSettingsService) Get() (*domain.AppSettings, error) {
	s := m.settings
	return &s, nil
}

func (m *mockSettingsService) Set(key, value string) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.set[key] = value
	return nil
}

func (m *mockSettingsService) Validate() error { return m.validateErr }

func (m *mockSettingsService) Check(context.Context) error {
	m.checks++
	return m.checkErr
}

func (m *mockSettingsService) GetDefaults() domain.AppSettings { return domain.DefaultAppSettings() }

// mockArticleService returns fixed documents.
type mockArticleService struct {
	docs []domain.ArticleDocument
	err  error
}

func (m *mockArticleService) List(context.Context) ([]domain.ArticleDocument, error) {
	return m.docs, m.err
}

// testServices are the mocks installed by setupTestServices.
type testServices struct {
	index    *mockIndexService
	query    *mockQueryService
	settings *mockSettingsService
	articles *mockArticleService
}

// setupTestServices installs mock services and returns them with a
// cleanup func that restores the previous state and resets flags.
func setupTestServices() (*testServices, func()) {
	origIndex, origQuery := indexService, queryService
	origSettings, origArticles := settingsService, articleService
	origErr, origBootstrap := pipelineErr, bootstrap

	ts := &testServices{
		index: &mockIndexService{},
		query: &mockQueryService{
			prompt:  "PROMPT",
			sources: []string{"5:0", "5:1"},
			text:    "Lawfulness, fairness and transparency.",
			model:   "mistral",
		},
		settings: newMockSettingsService(),
		articles: &mockArticleService{docs: []domain.ArticleDocument{
			{ArticleNumber: 1, Summary: "**Article 1 - Subject-matter and objectives**: scope"},
			{ArticleNumber: 2, Summary: "**Article 2 - Material scope**: processing"},
		}},
	}
	indexService = ts.index
	queryService = ts.query
	settingsService = ts.settings
	articleService = ts.articles
	pipelineErr = nil
	bootstrap = nil

	return ts, func() {
		indexService, queryService = origIndex, origQuery
		settingsService, articleService = origSettings, origArticles
		pipelineErr, bootstrap = origErr, origBootstrap
		buildRerun = false
		buildWatch = false
		queryJSON = false
		queryRetrieve = false
		articlesJSON = false
		verbose = false
		configDir = ""
	}
}
