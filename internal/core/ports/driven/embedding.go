package driven

import "context"

// EmbeddingService turns chunk text and questions into vectors. The same
// model must embed both, so the index records which model built it.
type EmbeddingService interface {
	// Embed returns the vector for one text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch returns one vector per text, in input order.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)

	// Dimensions is the vector length, or 0 until the first response
	// when the model is not in the known table.
	Dimensions() int

	ModelName() string

	// Ping makes the cheapest request the provider offers.
	Ping(ctx context.Context) error

	Close() error
}
