package rag

import (
	"testing"

	"ai-bookchat-be/pkg/rag/index"

	"github.com/google/uuid"
)

func TestCitationString(t *testing.T) {
	tests := []struct {
		name     string
		citation Citation
		want     string
	}{
		{"all fields", Citation{Chapter: "Fueling", Section: "Protein", Page: 42}, "Chapter: Fueling | Section: Protein | Page 42"},
		{"chapter only", Citation{Chapter: "Fueling"}, "Chapter: Fueling"},
		{"section and page", Citation{Section: "Protein", Page: 42}, "Section: Protein | Page 42"},
		{"page only", Citation{Page: 7}, "Page 7"},
		{"no metadata falls back", Citation{}, "Source: Book"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.citation.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAssembleCitationsOrderAndNumbering(t *testing.T) {
	chunks := []index.Chunk{
		{Id: uuid.New(), Chapter: "Second chapter in the book", Page: 90},
		{Id: uuid.New(), Chapter: "First chapter in the book", Page: 10},
	}

	citations := AssembleCitations(chunks)
	if len(citations) != 2 {
		t.Fatalf("got %d citations, want 2", len(citations))
	}
	// Order follows context inclusion (relevance), not page or chapter order.
	if citations[0].Chapter != "Second chapter in the book" {
		t.Errorf("citation order does not follow inclusion order")
	}
	for i, c := range citations {
		if c.Number != i+1 {
			t.Errorf("citation %d numbered %d, want %d", i, c.Number, i+1)
		}
	}
}

func TestFormatCitationList(t *testing.T) {
	citations := []Citation{
		{Number: 1, Chapter: "Fueling", Page: 42},
		{Number: 2, Section: "Recovery"},
	}
	want := "[1] Chapter: Fueling | Page 42\n[2] Section: Recovery"
	if got := FormatCitationList(citations); got != want {
		t.Errorf("FormatCitationList() = %q, want %q", got, want)
	}

	if got := FormatCitationList(nil); got != "" {
		t.Errorf("empty list should render empty string, got %q", got)
	}
}
