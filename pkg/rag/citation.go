package rag

import (
	"fmt"
	"strings"

	"ai-bookchat-be/pkg/rag/index"
)

// Citation is one rendered source reference. Numbering is 1-based and
// follows the order chunks were included in the context, which is the
// retrieval relevance order.
type Citation struct {
	Number  int
	Chapter string
	Section string
	Page    int
}

// String renders the citation from the metadata fields that are present,
// chapter first, then section, then page. Absent fields are omitted
// rather than rendered as placeholders.
func (c Citation) String() string {
	var parts []string
	if c.Chapter != "" {
		parts = append(parts, fmt.Sprintf("Chapter: %s", c.Chapter))
	}
	if c.Section != "" {
		parts = append(parts, fmt.Sprintf("Section: %s", c.Section))
	}
	if c.Page > 0 {
		parts = append(parts, fmt.Sprintf("Page %d", c.Page))
	}
	if len(parts) == 0 {
		return "Source: Book"
	}
	return strings.Join(parts, " | ")
}

// AssembleCitations maps the chunks actually included in the context to
// their rendered citations, preserving inclusion order.
func AssembleCitations(chunks []index.Chunk) []Citation {
	citations := make([]Citation, len(chunks))
	for i, c := range chunks {
		citations[i] = Citation{
			Number:  i + 1,
			Chapter: c.Chapter,
			Section: c.Section,
			Page:    c.Page,
		}
	}
	return citations
}

// FormatCitationList renders the numbered reference list appended to an
// answered reply.
func FormatCitationList(citations []Citation) string {
	if len(citations) == 0 {
		return ""
	}
	lines := make([]string, len(citations))
	for i, c := range citations {
		lines[i] = fmt.Sprintf("[%d] %s", c.Number, c.String())
	}
	return strings.Join(lines, "\n")
}
