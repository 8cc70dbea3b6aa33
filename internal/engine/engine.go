package engine

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"notechat/internal/domain"
	"notechat/internal/index"
)

var (
	// ErrNotBuilt is returned by Ask before a successful Build.
	ErrNotBuilt = errors.New("index not built: call Build first")
	// ErrNoDocuments is returned by Build when the notes directory yields
	// nothing to index.
	ErrNoDocuments = errors.New("no documents to index: check the notes directory")
)

// DocumentLoader produces the documents to index.
type DocumentLoader interface {
	Load(dir string) ([]domain.Document, error)
}

const (
	systemPrompt = "You are a helpful study assistant. Answer the question using only the " +
		"provided course-note excerpts. If the excerpts do not contain the answer, say so."

	// rough character budget for the context portion of one prompt
	contextCharBudget = 12000
)

// Engine is the retrieval-augmented question-answering pipeline. It has an
// explicit two-phase lifecycle: Build loads, chunks, embeds and indexes the
// notes; Ask answers questions against the built index.
type Engine struct {
	loader   DocumentLoader
	chunker  domain.Chunker
	embedder domain.Embedder
	llm      domain.LLM
	notesDir string
	topK     int
	idx      domain.Index
}

// New assembles an engine from its components. topK <= 0 falls back to 5.
func New(loader DocumentLoader, chunker domain.Chunker, embedder domain.Embedder, llm domain.LLM, notesDir string, topK int) *Engine {
	if topK <= 0 {
		topK = 5
	}
	return &Engine{
		loader:   loader,
		chunker:  chunker,
		embedder: embedder,
		llm:      llm,
		notesDir: notesDir,
		topK:     topK,
	}
}

// Build loads the notes directory, chunks and embeds every document, and
// constructs the in-memory index. The index records the embedder's dimension
// and model so a mismatched query-time configuration is caught in Ask.
func (e *Engine) Build(ctx context.Context) error {
	log.Printf("loading notes from %s", e.notesDir)
	docs, err := e.loader.Load(e.notesDir)
	if err != nil {
		return err
	}
	if len(docs) == 0 {
		return ErrNoDocuments
	}
	log.Printf("loaded %d documents", len(docs))

	var chunks []domain.Chunk
	for _, d := range docs {
		cs, err := e.chunker.Chunk(d)
		if err != nil {
			return fmt.Errorf("chunking %s: %w", d.Path, err)
		}
		chunks = append(chunks, cs...)
	}
	if len(chunks) == 0 {
		return ErrNoDocuments
	}
	log.Printf("embedding %d chunks with %s", len(chunks), e.embedder.Model())

	vectors := make([][]float32, len(chunks))
	for i, ch := range chunks {
		vec, err := e.embedder.Embed(ctx, ch.Text)
		if err != nil {
			return fmt.Errorf("embedding chunk %s: %w", ch.ChunkID, err)
		}
		vectors[i] = vec
	}

	idx, err := index.New(e.embedder.Dimension(), e.embedder.Model())
	if err != nil {
		return err
	}
	if err := idx.Add(chunks, vectors); err != nil {
		return err
	}
	e.idx = idx
	log.Printf("index built: %d chunks, dimension %d", idx.Len(), idx.Dimension())
	return nil
}

// Ask embeds the question, retrieves the top-K nearest chunks, and asks the
// hosted model to synthesize an answer from them. LLM and network failures
// propagate to the caller.
func (e *Engine) Ask(ctx context.Context, question string) (string, error) {
	if e.idx == nil {
		return "", ErrNotBuilt
	}
	if e.embedder.Dimension() != e.idx.Dimension() || e.embedder.Model() != e.idx.Model() {
		return "", fmt.Errorf("embedder %s (dim %d) does not match index built with %s (dim %d)",
			e.embedder.Model(), e.embedder.Dimension(), e.idx.Model(), e.idx.Dimension())
	}
	vec, err := e.embedder.Embed(ctx, question)
	if err != nil {
		return "", fmt.Errorf("embedding question: %w", err)
	}
	results, err := e.idx.Search(vec, e.topK)
	if err != nil {
		return "", err
	}
	passages := make([]string, len(results))
	for i, r := range results {
		passages[i] = r.Chunk.Text
	}
	return e.synthesize(ctx, question, passages)
}

// synthesize combines retrieved passages into one answer. Passages are
// grouped under a context budget; each group yields a partial answer and the
// partials are combined recursively until one remains (tree summarization).
func (e *Engine) synthesize(ctx context.Context, question string, passages []string) (string, error) {
	for {
		groups := groupByBudget(passages, contextCharBudget)
		if len(groups) <= 1 {
			var ctxText []string
			if len(groups) == 1 {
				ctxText = groups[0]
			}
			return e.llm.Complete(ctx, systemPrompt, buildPrompt(question, ctxText))
		}
		partials := make([]string, 0, len(groups))
		for _, g := range groups {
			ans, err := e.llm.Complete(ctx, systemPrompt, buildPrompt(question, g))
			if err != nil {
				return "", err
			}
			partials = append(partials, ans)
		}
		passages = partials
	}
}

func buildPrompt(question string, passages []string) string {
	var b strings.Builder
	b.WriteString("Context:\n")
	for i, p := range passages {
		fmt.Fprintf(&b, "\n[%d] %s\n", i+1, p)
	}
	b.WriteString("\nQuestion: ")
	b.WriteString(question)
	b.WriteString("\nAnswer:")
	return b.String()
}

func groupByBudget(passages []string, budget int) [][]string {
	var groups [][]string
	var cur []string
	size := 0
	for _, p := range passages {
		if len(cur) > 0 && size+len(p) > budget {
			groups = append(groups, cur)
			cur = nil
			size = 0
		}
		cur = append(cur, p)
		size += len(p)
	}
	if len(cur) > 0 {
		groups = append(groups, cur)
	}
	return groups
}
