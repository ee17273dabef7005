package postprocessors

import (
	"fmt"
	"maps"
	"slices"

	"github.com/custodia-labs/gdpr-rag/internal/core/domain"
	"github.com/custodia-labs/gdpr-rag/internal/core/ports/driven"
	"github.com/custodia-labs/gdpr-rag/internal/postprocessors/chunker"
)

// BuilderFunc creates a processor from its [pipeline.<name>] table.
type BuilderFunc func(cfg map[string]any) (driven.PostProcessor, error)

// Registry resolves the processor names listed in a PipelineConfig.
type Registry map[string]BuilderFunc

// NewRegistry returns an empty registry.
func NewRegistry() Registry {
	return Registry{}
}

// DefaultRegistry returns a registry holding the built-in processors.
func DefaultRegistry() Registry {
	return Registry{"chunker": buildChunker}
}

// Register adds or replaces the builder for name.
func (r Registry) Register(name string, builder BuilderFunc) {
	r[name] = builder
}

// Has reports whether name is registered.
func (r Registry) Has(name string) bool {
	_, ok := r[name]
	return ok
}

// Names returns the registered names in sorted order.
func (r Registry) Names() []string {
	return slices.Sorted(maps.Keys(r))
}

// Build creates the processor registered as name.
func (r Registry) Build(name string, cfg map[string]any) (driven.PostProcessor, error) {
	builder, ok := r[name]
	if !ok {
		return nil, fmt.Errorf("unknown processor: %s", name)
	}
	return builder(cfg)
}

// BuildPipeline builds cfg.Processors in order, each from its own table.
func (r Registry) BuildPipeline(cfg domain.PipelineConfig) (*Pipeline, error) {
	if len(cfg.Processors) == 0 {
		return nil, fmt.Errorf("pipeline has no processors: %w", domain.ErrInvalidInput)
	}

	procs := make([]driven.PostProcessor, 0, len(cfg.Processors))
	for _, name := range cfg.Processors {
		proc, err := r.Build(name, cfg.GetProcessorConfig(name))
		if err != nil {
			return nil, fmt.Errorf("build pipeline: %w", err)
		}
		procs = append(procs, proc)
	}
	return NewPipeline(procs...), nil
}

// buildChunker reads chunk_size, overlap and separators. Absent or
// mistyped keys keep the chunker defaults; an explicit overlap of 0 is
// honoured.
func buildChunker(cfg map[string]any) (driven.PostProcessor, error) {
	var opts []chunker.Option
	if size := configInt(cfg, "chunk_size"); size > 0 {
		opts = append(opts, chunker.WithChunkSize(size))
	}
	if _, ok := cfg["overlap"]; ok {
		opts = append(opts, chunker.WithOverlap(configInt(cfg, "overlap")))
	}
	if seps := configStrings(cfg, "separators"); len(seps) > 0 {
		opts = append(opts, chunker.WithSeparators(seps...))
	}
	return chunker.New(opts...), nil
}

// configInt accepts the int64 and float64 that TOML and JSON decode to.
func configInt(cfg map[string]any, key string) int {
	switch v := cfg[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	}
	return 0
}

// configStrings accepts TOML's []any as well as []string.
func configStrings(cfg map[string]any, key string) []string {
	switch v := cfg[key].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}
