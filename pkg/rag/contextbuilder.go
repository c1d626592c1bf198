package rag

import (
	"fmt"
	"strings"

	"ai-bookchat-be/pkg/rag/index"
)

// blockDelimiter separates chunk blocks inside the assembled context.
const blockDelimiter = "\n\n"

// Context is the text actually handed to the synthesizer plus the chunks
// that contributed to it, in inclusion order. It never contains a chunk
// whose score failed the threshold and never exceeds the budget it was
// built with.
type Context struct {
	Text   string
	Chunks []index.Chunk
}

// Empty reports whether no chunk fit the budget.
func (c *Context) Empty() bool {
	return len(c.Chunks) == 0
}

// ChunkIds returns the identifiers of the included chunks in order.
func (c *Context) ChunkIds() []string {
	ids := make([]string, len(c.Chunks))
	for i, chunk := range c.Chunks {
		ids[i] = chunk.Id.String()
	}
	return ids
}

// BuildContext assembles a bounded context block from the retrieval
// result. Chunks are walked in relevance order; near-duplicate texts are
// dropped first, keeping the highest-scored instance; then blocks are
// appended greedily until the next block would exceed the character
// budget. A chunk is atomic: included whole or not at all. Zero chunks
// fitting is a valid result the grounding policy converts to a refusal.
func BuildContext(retrieval *RetrievalResult, budget int) Context {
	deduped := dedupeChunks(retrieval.Chunks)

	var sb strings.Builder
	var included []index.Chunk

	for _, sc := range deduped {
		block := renderBlock(len(included)+1, sc.Chunk)

		size := len(block)
		if sb.Len() > 0 {
			size += len(blockDelimiter)
		}
		if sb.Len()+size > budget {
			break
		}

		if sb.Len() > 0 {
			sb.WriteString(blockDelimiter)
		}
		sb.WriteString(block)
		included = append(included, sc.Chunk)
	}

	return Context{Text: sb.String(), Chunks: included}
}

// renderBlock labels each chunk with its citation so the synthesizer can
// reference sources as [1], [2], ...
func renderBlock(number int, chunk index.Chunk) string {
	citation := Citation{Chapter: chunk.Chapter, Section: chunk.Section, Page: chunk.Page}
	return fmt.Sprintf("[%d] %s\n%s", number, citation.String(), chunk.Text)
}

// dedupeChunks drops chunks whose normalized text already appeared. The
// input is in descending score order (ties stable), so keeping the first
// occurrence keeps the highest-scored instance.
func dedupeChunks(chunks []index.ScoredChunk) []index.ScoredChunk {
	seen := make(map[string]bool, len(chunks))
	out := make([]index.ScoredChunk, 0, len(chunks))
	for _, sc := range chunks {
		key := normalizeText(sc.Chunk.Text)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, sc)
	}
	return out
}

func normalizeText(text string) string {
	return strings.Join(strings.Fields(strings.ToLower(text)), " ")
}
