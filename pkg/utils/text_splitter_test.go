package utils

import (
	"strings"
	"testing"
)

func TestSplitTextShortInput(t *testing.T) {
	chunks := SplitText("short text", 100, 20)
	if len(chunks) != 1 || chunks[0] != "short text" {
		t.Fatalf("expected single unmodified chunk, got %v", chunks)
	}
}

func TestSplitTextChunkSizes(t *testing.T) {
	text := strings.Repeat("word ", 400) // 2000 chars
	chunks := SplitText(text, 500, 100)

	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}
	for i, c := range chunks {
		if len([]rune(c)) > 500 {
			t.Errorf("chunk %d exceeds size: %d runes", i, len([]rune(c)))
		}
	}
}

func TestSplitTextWordBoundary(t *testing.T) {
	text := strings.Repeat("alpha beta gamma delta ", 100)
	chunks := SplitText(text, 200, 40)

	for i, c := range chunks[:len(chunks)-1] {
		if strings.HasSuffix(c, "alph") || strings.HasSuffix(c, "gam") {
			t.Errorf("chunk %d cut mid-word: %q", i, c[len(c)-10:])
		}
	}
}

func TestSplitTextOverlapGreaterThanSize(t *testing.T) {
	text := strings.Repeat("x", 1000)
	// overlap >= chunkSize must not loop forever
	chunks := SplitText(text, 100, 100)
	if len(chunks) == 0 {
		t.Fatal("expected chunks despite degenerate overlap")
	}
}
