package domain

import "time"

// IndexState is the lifecycle state of the persisted vector index.
type IndexState string

// Index lifecycle states.
const (
	// IndexStateMissing means no index exists on disk.
	IndexStateMissing IndexState = "missing"

	// IndexStateBuilding means a build is writing the index.
	IndexStateBuilding IndexState = "building"

	// IndexStateReady means a complete index is on disk.
	IndexStateReady IndexState = "ready"
)

// BuildDecision is what a build request resolved to.
type BuildDecision string

// Build decisions, one per combination of rerun flag and index presence.
const (
	// BuildDecisionCleared means an existing index was removed and rebuilt.
	BuildDecisionCleared BuildDecision = "cleared"

	// BuildDecisionFresh means a rerun was requested but no index existed.
	BuildDecisionFresh BuildDecision = "fresh"

	// BuildDecisionSkipped means an index exists and no rerun was requested.
	BuildDecisionSkipped BuildDecision = "skipped"

	// BuildDecisionInitial means no index existed and none was requested to rerun.
	BuildDecisionInitial BuildDecision = "initial"
)

// DecideBuild resolves the build decision.
func DecideBuild(rerun, exists bool) BuildDecision {
	switch {
	case rerun && exists:
		return BuildDecisionCleared
	case rerun:
		return BuildDecisionFresh
	case exists:
		return BuildDecisionSkipped
	default:
		return BuildDecisionInitial
	}
}

// Builds reports whether the decision leads to a new index.
func (d BuildDecision) Builds() bool {
	return d != BuildDecisionSkipped
}

// IndexManifest describes a persisted index.
type IndexManifest struct {
	// BuildID uniquely identifies the build that wrote the index.
	BuildID string

	// EmbeddingProvider is the provider used for the stored vectors.
	EmbeddingProvider string

	// EmbeddingModel is the model used for the stored vectors.
	EmbeddingModel string

	// Dimensions is the stored vector length.
	Dimensions int

	// ChunkCount is the number of stored entries.
	ChunkCount int

	// SourcePath is the PDF the index was built from.
	SourcePath string

	// CreatedAt is when the build finished.
	CreatedAt time.Time
}

// IndexEntry is one stored vector with its chunk.
type IndexEntry struct {
	Chunk  Chunk
	Vector []float32
}

// BuildReport summarises a completed build request.
type BuildReport struct {
	Decision BuildDecision
	Pages    int
	Articles int
	Chunks   int
	Manifest *IndexManifest
}
