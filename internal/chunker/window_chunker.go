package chunker

import (
	"strconv"
	"strings"

	"notechat/internal/domain"
)

// WindowChunker splits text into overlapping fixed-size token windows.
// Tokens are whitespace-delimited words; adjacent windows share exactly
// overlap tokens.
type WindowChunker struct {
	chunkSize int
	overlap   int
}

// NewWindowChunker creates a chunker with the given window size and overlap.
// Non-positive or inconsistent values fall back to the 1024/128 defaults.
func NewWindowChunker(chunkSize, overlap int) *WindowChunker {
	if chunkSize <= 0 {
		chunkSize = 1024
	}
	if overlap < 0 || overlap >= chunkSize {
		overlap = 128
		if overlap >= chunkSize {
			overlap = chunkSize / 8
		}
	}
	return &WindowChunker{chunkSize: chunkSize, overlap: overlap}
}

func (c *WindowChunker) Chunk(document domain.Document) ([]domain.Chunk, error) {
	tokens := strings.Fields(document.Content)
	if len(tokens) == 0 {
		return nil, nil
	}
	step := c.chunkSize - c.overlap
	var chunks []domain.Chunk
	idx := 0
	for start := 0; ; start += step {
		end := start + c.chunkSize
		if end > len(tokens) {
			end = len(tokens)
		}
		chunks = append(chunks, domain.Chunk{
			DocumentID: document.ID,
			ChunkID:    document.ID + ":" + strconv.Itoa(idx),
			Source:     document.Path,
			Text:       strings.Join(tokens[start:end], " "),
			Index:      idx,
		})
		if end == len(tokens) {
			break
		}
		idx++
	}
	return chunks, nil
}
