package domain

import "strings"

// RetrievedChunk is a single nearest-neighbour hit.
type RetrievedChunk struct {
	// Chunk is the stored chunk with its metadata.
	Chunk Chunk

	// Score is the cosine similarity to the query, higher is closer.
	Score float64
}

// Answer is the result of a grounded question.
type Answer struct {
	// Question is the user's query text.
	Question string

	// Prompt is the exact prompt sent to the language model.
	Prompt string

	// Text is the model's response.
	Text string

	// Sources are the retrieved chunk ids in rank order.
	Sources []string

	// Model is the generating model's name.
	Model string
}

// SourceIDs returns the chunk ids of hits in order.
func SourceIDs(hits []RetrievedChunk) []string {
	ids := make([]string, len(hits))
	for i, h := range hits {
		ids[i] = h.Chunk.ID
	}
	return ids
}

// FormatSources renders ids as a bracketed list of quoted strings,
// e.g. ['5:0', '5:1'].
func FormatSources(ids []string) string {
	quoted := make([]string, len(ids))
	for i, id := range ids {
		quoted[i] = "'" + id + "'"
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}
