package rag

import (
	"testing"

	"ai-bookchat-be/pkg/rag/index"

	"github.com/google/uuid"
)

func testContext(texts ...string) Context {
	chunks := make([]index.Chunk, len(texts))
	for i, text := range texts {
		chunks[i] = index.Chunk{Id: uuid.New(), Text: text, Chapter: "Ch"}
	}
	return Context{Text: "ctx", Chunks: chunks}
}

func TestVerify(t *testing.T) {
	v := NewVerifier(DefaultRefusalPhrases)
	ctx := testContext("a", "b")

	tests := []struct {
		name       string
		answer     string
		wantStatus Status
	}{
		{"plain answer accepted", "Eat plenty of protein after training [1].", StatusAnswered},
		{"canonical refusal downgraded", CanonicalRefusal, StatusRefused},
		{"refusal phrase mid-sentence", "Unfortunately the context doesn't contain that detail.", StatusRefused},
		{"case-insensitive match", "I CANNOT ANSWER this based on the book", StatusRefused},
		{"empty answer downgraded", "", StatusRefused},
		{"whitespace answer downgraded", "  \n\t ", StatusRefused},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outcome := v.Verify(tt.answer, &ctx)
			if outcome.Status != tt.wantStatus {
				t.Fatalf("status = %s, want %s", outcome.Status, tt.wantStatus)
			}
			switch tt.wantStatus {
			case StatusAnswered:
				if len(outcome.ChunksUsed) != 2 {
					t.Errorf("chunks_used = %d, want 2", len(outcome.ChunksUsed))
				}
				if len(outcome.Citations) != 2 {
					t.Errorf("citations = %d, want 2", len(outcome.Citations))
				}
				for i, id := range outcome.ChunksUsed {
					if id != ctx.Chunks[i].Id {
						t.Errorf("chunks_used[%d] does not match context inclusion order", i)
					}
				}
			case StatusRefused:
				if outcome.Reason != ReasonUnsupportedByContext {
					t.Errorf("reason = %q, want %q", outcome.Reason, ReasonUnsupportedByContext)
				}
				if len(outcome.ChunksUsed) != 0 || len(outcome.Citations) != 0 {
					t.Errorf("refusal must carry no chunks or citations")
				}
			}
		})
	}
}

func TestVerifyCustomPhrases(t *testing.T) {
	v := NewVerifier([]string{"daar kan ik geen antwoord"})

	if out := v.Verify("Daar kan ik geen antwoord op geven.", &Context{}); out.Status != StatusRefused {
		t.Errorf("custom phrase not detected")
	}
	// The defaults are replaced, not appended.
	ctx := testContext("a")
	if out := v.Verify(CanonicalRefusal, &ctx); out.Status != StatusAnswered {
		t.Errorf("default phrase should not match with a custom set")
	}
}
