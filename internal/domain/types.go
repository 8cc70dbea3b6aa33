package domain

import "context"

// Document is a single note file loaded from the notes directory.
type Document struct {
	ID      string
	Path    string
	Content string
}

// Chunk is a contiguous token window cut from a document for indexing.
type Chunk struct {
	DocumentID string
	ChunkID    string
	Source     string
	Text       string
	Index      int
}

// SearchResult is a retrieved chunk with its distance to the query vector.
// Smaller distance means a closer match.
type SearchResult struct {
	Chunk    Chunk
	Distance float32
}

// Chunker splits documents into chunks suitable for retrieval indexing.
type Chunker interface {
	Chunk(document Document) ([]Chunk, error)
}

// Embedder converts free text into a fixed-dimension vector through a
// pretrained model. Dimension and Model identify the live configuration so
// the index can reject a build/query mismatch.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	Dimension() int
	Model() string
}

// LLM synthesizes an answer from a system prompt and a user prompt.
type LLM interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// Index stores chunk vectors and supports nearest-neighbor search.
type Index interface {
	Add(chunks []Chunk, vectors [][]float32) error
	Search(vector []float32, k int) ([]SearchResult, error)
	Len() int
	Dimension() int
	Model() string
}
