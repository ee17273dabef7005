package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/gdpr-rag/internal/core/domain"
	"github.com/custodia-labs/gdpr-rag/internal/core/ports/driven"
	"github.com/custodia-labs/gdpr-rag/internal/core/ports/driving"
	"github.com/custodia-labs/gdpr-rag/internal/logger"
)

// Ensure IndexService implements the interface.
var _ driving.IndexService = (*IndexService)(nil)

// User-facing build messages.
const (
	msgClearing      = "Clearing vector database..."
	msgNoDatabase    = "No database present, producing vector database from provided pdf..."
	msgAlreadyExists = "Vector database already exists. To rerun analysis, provide argument --rerun"
	msgNeedDatabase  = "Need to first create database, now running script to create vector database..."

	msgLoadingPages     = "Loading pdf pages..."
	msgExtracting       = "Extracting article numbers..."
	msgCleaning         = "Removing header and footer text from pages..."
	msgPreparing        = "Preparing article documents..."
	msgSplitting        = "Splitting article documents into chunks..."
	msgRetrievingEmbed  = "Retrieving embedding function..."
	msgPreparingVectors = "Preparing vector database from chunks, using embedding function..."
	msgSavingFormat     = "Saving database to local folder titled %s"

	msgWatchingFormat = "Watching %s for changes..."
	msgChangedFormat  = "%s changed, rebuilding vector database..."
	msgRebuildFailed  = "Rebuild failed: %v"
)

// defaultEmbedBatch is the number of chunks sent per EmbedBatch call.
const defaultEmbedBatch = 64

// IndexServiceConfig wires the index service to its ports.
type IndexServiceConfig struct {
	Loader    driven.PageLoader
	Cleaner   driven.PageCleaner
	Summaries driven.SummarySource
	Pipeline  driven.PostProcessorPipeline
	Embedder  driven.EmbeddingService
	Store     driven.IndexStore

	// Watcher reports changes to the PDF. Only Watch needs it.
	Watcher driven.FileWatcher

	// NewIndex returns an empty in-memory index to load entries into.
	NewIndex func() driven.VectorIndex

	// PDFPath is the source document.
	PDFPath string

	// EmbeddingProvider is recorded in the manifest.
	EmbeddingProvider string

	// EmbedBatch caps chunks per embedding call (default: 64).
	EmbedBatch int
}

// IndexService builds, persists and opens the GDPR vector index.
type IndexService struct {
	cfg        IndexServiceConfig
	newBuildID func() string
	now        func() time.Time

	mu       sync.Mutex
	building bool
}

// NewIndexService creates a new index service.
func NewIndexService(cfg IndexServiceConfig) *IndexService {
	if cfg.EmbedBatch <= 0 {
		cfg.EmbedBatch = defaultEmbedBatch
	}
	if cfg.PDFPath == "" {
		cfg.PDFPath = domain.DefaultPDFPath
	}
	return &IndexService{
		cfg:        cfg,
		newBuildID: uuid.NewString,
		now:        time.Now,
	}
}

// State reports whether an index is present.
func (s *IndexService) State(ctx context.Context) (domain.IndexState, error) {
	s.mu.Lock()
	building := s.building
	s.mu.Unlock()
	if building {
		return domain.IndexStateBuilding, nil
	}

	exists, err := s.cfg.Store.Exists(ctx)
	if err != nil {
		return "", fmt.Errorf("check index: %w", err)
	}
	if exists {
		return domain.IndexStateReady, nil
	}
	return domain.IndexStateMissing, nil
}

// Build resolves the rerun decision and builds when required.
// Every decision path, including skipping, returns a nil error.
func (s *IndexService) Build(ctx context.Context, opts driving.BuildOptions) (*domain.BuildReport, error) {
	logger.Section("Index Build")
	progress := progressOrNop(opts.Progress)

	exists, err := s.cfg.Store.Exists(ctx)
	if err != nil {
		return nil, fmt.Errorf("check index: %w", err)
	}

	decision := domain.DecideBuild(opts.Rerun, exists)
	logger.Debug("Build decision: %s (rerun=%t, exists=%t)", decision, opts.Rerun, exists)

	switch decision {
	case domain.BuildDecisionCleared:
		progress(msgClearing)
		if err := s.cfg.Store.Clear(ctx); err != nil {
			return nil, fmt.Errorf("clear index: %w", err)
		}
	case domain.BuildDecisionFresh:
		progress(msgNoDatabase)
	case domain.BuildDecisionSkipped:
		progress(msgAlreadyExists)
		return &domain.BuildReport{Decision: decision}, nil
	}

	report, err := s.build(ctx, progress)
	if err != nil {
		return nil, err
	}
	report.Decision = decision
	return report, nil
}

func (s *IndexService) build(ctx context.Context, progress driving.ProgressFunc) (*domain.BuildReport, error) {
	if !s.begin() {
		return nil, fmt.Errorf("build index: %w: a build is already running", domain.ErrInvalidInput)
	}
	defer s.end()

	progress(msgLoadingPages)
	done := logger.Stage("load")
	pages, err := s.cfg.Loader.Load(ctx, s.cfg.PDFPath)
	if err != nil {
		return nil, fmt.Errorf("load pdf: %w", err)
	}
	done()
	logger.Info("Loaded %d pages from %s", len(pages), s.cfg.PDFPath)

	progress(msgExtracting)
	pages = SegmentPages(pages)

	progress(msgCleaning)
	logger.Debug("Cleaning with profile %s", s.cfg.Cleaner.Name())
	pages = CleanPages(pages, s.cfg.Cleaner)

	progress(msgPreparing)
	summaries, err := s.cfg.Summaries.Summaries()
	if err != nil {
		return nil, fmt.Errorf("load summaries: %w", err)
	}
	docs, err := AssembleArticles(pages, summaries)
	if err != nil {
		return nil, err
	}
	if dropped := DroppedPages(pages); dropped > 0 {
		logger.Debug("Dropped %d pages outside articles %d-%d", dropped, domain.FirstArticle, domain.LastArticle)
	}

	progress(msgSplitting)
	done = logger.Stage("chunk")
	chunks, err := s.cfg.Pipeline.ProcessAll(ctx, docs)
	if err != nil {
		return nil, fmt.Errorf("chunk articles: %w", err)
	}
	done()
	if len(chunks) == 0 {
		return nil, fmt.Errorf("chunk articles: %w: no text found in %s", domain.ErrInvalidInput, s.cfg.PDFPath)
	}
	logger.Info("Produced %d chunks from %d articles", len(chunks), len(docs))

	progress(msgRetrievingEmbed)
	logger.Info("Embedding model: %s", s.cfg.Embedder.ModelName())

	progress(msgPreparingVectors)
	done = logger.Stage("embed")
	entries, err := s.embedChunks(ctx, chunks)
	if err != nil {
		return nil, fmt.Errorf("embed chunks: %w", err)
	}
	done()

	manifest := domain.IndexManifest{
		BuildID:           s.newBuildID(),
		EmbeddingProvider: s.cfg.EmbeddingProvider,
		EmbeddingModel:    s.cfg.Embedder.ModelName(),
		Dimensions:        len(entries[0].Vector),
		ChunkCount:        len(entries),
		SourcePath:        s.cfg.PDFPath,
		CreatedAt:         s.now().UTC(),
	}

	progress(fmt.Sprintf(msgSavingFormat, s.cfg.Store.Dir()))
	done = logger.Stage("save")
	if err := s.cfg.Store.Save(ctx, manifest, entries); err != nil {
		return nil, fmt.Errorf("save index: %w", err)
	}
	done()

	return &domain.BuildReport{
		Pages:    len(pages),
		Articles: len(docs),
		Chunks:   len(chunks),
		Manifest: &manifest,
	}, nil
}

func (s *IndexService) embedChunks(ctx context.Context, chunks []domain.Chunk) ([]domain.IndexEntry, error) {
	entries := make([]domain.IndexEntry, 0, len(chunks))
	dims := 0

	for start := 0; start < len(chunks); start += s.cfg.EmbedBatch {
		end := min(start+s.cfg.EmbedBatch, len(chunks))
		texts := make([]string, 0, end-start)
		for _, c := range chunks[start:end] {
			texts = append(texts, c.Content)
		}

		vectors, err := s.cfg.Embedder.EmbedBatch(ctx, texts)
		if err != nil {
			return nil, err
		}
		if len(vectors) != len(texts) {
			return nil, fmt.Errorf("got %d vectors for %d chunks", len(vectors), len(texts))
		}

		for i, v := range vectors {
			if dims == 0 {
				dims = len(v)
			}
			if len(v) == 0 || len(v) != dims {
				return nil, fmt.Errorf("chunk %s: %w: got %d, want %d",
					chunks[start+i].ID, domain.ErrDimensionMismatch, len(v), dims)
			}
			entries = append(entries, domain.IndexEntry{Chunk: chunks[start+i], Vector: v})
		}
		logger.Debug("Embedded %d/%d chunks", end, len(chunks))
	}
	return entries, nil
}

// Open loads the persisted index into memory. When none exists it is
// built first, which is the only recovery path for a missing index.
func (s *IndexService) Open(ctx context.Context, progress driving.ProgressFunc) (driven.VectorIndex, *domain.IndexManifest, error) {
	progress = progressOrNop(progress)

	manifest, entries, err := s.cfg.Store.Load(ctx)
	if errors.Is(err, domain.ErrIndexNotFound) {
		progress(msgNeedDatabase)
		if _, err := s.Build(ctx, driving.BuildOptions{Progress: progress}); err != nil {
			return nil, nil, err
		}
		manifest, entries, err = s.cfg.Store.Load(ctx)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("load index: %w", err)
	}

	if err := s.checkCompatible(manifest); err != nil {
		return nil, nil, err
	}

	idx := s.cfg.NewIndex()
	for _, e := range entries {
		if err := idx.Add(ctx, e); err != nil {
			return nil, nil, fmt.Errorf("load index: %w", err)
		}
	}
	logger.Info("Loaded index %s: %d chunks, %d dims", manifest.BuildID, idx.Len(), idx.Dimensions())
	return idx, manifest, nil
}

// checkCompatible refuses an index whose vectors cannot be compared with
// the configured embedding model's output.
func (s *IndexService) checkCompatible(m *domain.IndexManifest) error {
	if dims := s.cfg.Embedder.Dimensions(); dims > 0 && dims != m.Dimensions {
		return fmt.Errorf("index built with %s (%d dims), configured %s (%d dims): %w; rebuild with --rerun",
			m.EmbeddingModel, m.Dimensions, s.cfg.Embedder.ModelName(), dims, domain.ErrDimensionMismatch)
	}
	if model := s.cfg.Embedder.ModelName(); model != m.EmbeddingModel {
		logger.Warn("Index was built with %s but %s is configured; results may be poor", m.EmbeddingModel, model)
	}
	return nil
}

// Watch rebuilds the index each time the source PDF changes. A failed
// rebuild is reported and watching continues.
func (s *IndexService) Watch(ctx context.Context, progress driving.ProgressFunc) error {
	if s.cfg.Watcher == nil {
		return fmt.Errorf("watch: %w: no file watcher configured", domain.ErrInvalidInput)
	}
	progress = progressOrNop(progress)

	progress(fmt.Sprintf(msgWatchingFormat, s.cfg.PDFPath))
	err := s.cfg.Watcher.Watch(ctx, s.cfg.PDFPath, func() {
		progress(fmt.Sprintf(msgChangedFormat, s.cfg.PDFPath))
		if _, err := s.Build(ctx, driving.BuildOptions{Rerun: true, Progress: progress}); err != nil {
			progress(fmt.Sprintf(msgRebuildFailed, err))
		}
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("watch %s: %w", s.cfg.PDFPath, err)
	}
	return nil
}

func (s *IndexService) begin() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.building {
		return false
	}
	s.building = true
	return true
}

func (s *IndexService) end() {
	s.mu.Lock()
	s.building = false
	s.mu.Unlock()
}

func progressOrNop(p driving.ProgressFunc) driving.ProgressFunc {
	if p == nil {
		return func(string) {}
	}
	return p
}
