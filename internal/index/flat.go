package index

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"sync"

	"notechat/internal/domain"
)

// Flat is an exhaustive in-memory nearest-neighbor index over Euclidean
// distance. It records the embedding dimension and model identifier it was
// built with so queries from a different configuration fail loudly.
type Flat struct {
	mu        sync.RWMutex
	dimension int
	model     string
	vectors   [][]float32
	chunks    []domain.Chunk
}

// New creates an empty flat index for vectors of the given dimension
// produced by the given model.
func New(dimension int, model string) (*Flat, error) {
	if dimension <= 0 {
		return nil, fmt.Errorf("invalid dimension %d", dimension)
	}
	return &Flat{dimension: dimension, model: model}, nil
}

// Dimension returns the vector width the index was built for.
func (f *Flat) Dimension() int { return f.dimension }

// Model returns the embedding model identifier the index was built with.
func (f *Flat) Model() string { return f.model }

// Len returns the number of indexed chunks.
func (f *Flat) Len() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.chunks)
}

// Add appends a batch of (chunk, vector) pairs. Every vector must match the
// index dimension.
func (f *Flat) Add(chunks []domain.Chunk, vectors [][]float32) error {
	if len(chunks) != len(vectors) {
		return errors.New("chunks and vectors length mismatch")
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, v := range vectors {
		if len(v) != f.dimension {
			return fmt.Errorf("vector for chunk %s has dimension %d, index expects %d",
				chunks[i].ChunkID, len(v), f.dimension)
		}
	}
	f.chunks = append(f.chunks, chunks...)
	f.vectors = append(f.vectors, vectors...)
	return nil
}

// Search returns the k chunks nearest to vector, ordered by non-decreasing
// Euclidean distance. k is capped at the index size.
func (f *Flat) Search(vector []float32, k int) ([]domain.SearchResult, error) {
	if len(vector) != f.dimension {
		return nil, fmt.Errorf("query vector has dimension %d, index expects %d",
			len(vector), f.dimension)
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	if k <= 0 {
		k = 5
	}
	results := make([]domain.SearchResult, len(f.chunks))
	for i := range f.vectors {
		results[i] = domain.SearchResult{
			Chunk:    f.chunks[i],
			Distance: l2(f.vectors[i], vector),
		}
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Distance < results[j].Distance
	})
	if k > len(results) {
		k = len(results)
	}
	return results[:k], nil
}

func l2(a, b []float32) float32 {
	var sum float64
	for i := range a {
		d := float64(a[i]) - float64(b[i])
		sum += d * d
	}
	return float32(math.Sqrt(sum))
}
