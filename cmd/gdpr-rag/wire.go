package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/custodia-labs/gdpr-rag/internal/adapters/driven/ai"
	"github.com/custodia-labs/gdpr-rag/internal/adapters/driven/config/file"
	"github.com/custodia-labs/gdpr-rag/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/gdpr-rag/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/gdpr-rag/internal/adapters/driven/watch"
	"github.com/custodia-labs/gdpr-rag/internal/adapters/driving/cli"
	"github.com/custodia-labs/gdpr-rag/internal/core/ports/driven"
	"github.com/custodia-labs/gdpr-rag/internal/core/services"
	"github.com/custodia-labs/gdpr-rag/internal/logger"
	"github.com/custodia-labs/gdpr-rag/internal/normalisers/boilerplate"
	"github.com/custodia-labs/gdpr-rag/internal/normalisers/pdf"
	"github.com/custodia-labs/gdpr-rag/internal/postprocessors"
)

// wire builds the services from the stored settings. Provider failures
// leave settings and articles usable and are reported as PipelineErr.
func wire(opts cli.Options) (*cli.Services, error) {
	store, err := file.NewConfigStore(opts.ConfigDir)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	settingsService := services.NewSettingsService(store, ai.NewConfigValidator())

	settings, err := settingsService.Get()
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	logger.Debug("Settings: embedding=%s/%s llm=%s/%s index=%s",
		settings.Embedding.Provider, settings.Embedding.Model,
		settings.LLM.Provider, settings.LLM.Model, settings.Paths.IndexDir)

	summaries := file.NewSummaryTable(settings.Paths.Summaries)
	svcs := &cli.Services{
		Settings: settingsService,
		Articles: services.NewArticleService(summaries),
	}

	ctx := context.Background()
	embedder, err := ai.CreateEmbeddingService(ctx, &settings.Embedding)
	if err != nil {
		svcs.PipelineErr = err
		return svcs, nil
	}

	pipeline, err := postprocessors.DefaultRegistry().BuildPipeline(settings.Pipeline)
	if err != nil {
		return nil, fmt.Errorf("build pipeline: %w", err)
	}

	promptDir := ""
	if opts.ConfigDir != "" {
		promptDir = filepath.Join(opts.ConfigDir, "prompts")
	}
	prompts, err := file.NewPromptStore(promptDir)
	if err != nil {
		return nil, fmt.Errorf("open prompts: %w", err)
	}

	indexService := services.NewIndexService(services.IndexServiceConfig{
		Loader:            pdf.New(),
		Cleaner:           boilerplate.New(boilerplate.GDPRText()),
		Summaries:         summaries,
		Pipeline:          pipeline,
		Embedder:          embedder,
		Store:             sqlite.NewIndexStore(settings.Paths.IndexDir),
		Watcher:           watch.New(watch.DefaultDebounce),
		NewIndex:          func() driven.VectorIndex { return memory.NewVectorIndex() },
		PDFPath:           settings.Paths.PDF,
		EmbeddingProvider: settings.Embedding.Provider.String(),
	})

	// A missing LLM still allows building and retrieval.
	llm, err := ai.CreateLLMService(ctx, &settings.LLM)
	if err != nil {
		svcs.PipelineErr = err
	}

	svcs.Index = indexService
	svcs.Query = services.NewQueryService(services.QueryServiceConfig{
		Index:    indexService,
		Embedder: embedder,
		LLM:      llm,
		Prompts:  prompts,
		TopK:     settings.Retrieval.TopK,
		Progress: opts.Progress,
	})
	return svcs, nil
}
