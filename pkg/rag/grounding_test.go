package rag

import (
	"testing"

	"ai-bookchat-be/pkg/rag/index"
)

func TestDecide(t *testing.T) {
	populated := scoredChunk("some passage", 0.9)

	tests := []struct {
		name       string
		retrieval  *RetrievalResult
		context    Context
		wantDec    Decision
		wantReason string
	}{
		{
			name:       "empty retrieval refuses",
			retrieval:  &RetrievalResult{Chunks: nil, RawCount: 0},
			context:    Context{},
			wantDec:    DecisionRefuse,
			wantReason: ReasonNoRelevantContent,
		},
		{
			name:       "all below threshold refuses",
			retrieval:  &RetrievalResult{Chunks: nil, RawCount: 4},
			context:    Context{},
			wantDec:    DecisionRefuse,
			wantReason: ReasonNoRelevantContent,
		},
		{
			name:       "empty context under budget refuses",
			retrieval:  &RetrievalResult{Chunks: []index.ScoredChunk{populated}, RawCount: 1},
			context:    Context{},
			wantDec:    DecisionRefuse,
			wantReason: ReasonBudgetUnusable,
		},
		{
			name:      "usable context answers",
			retrieval: &RetrievalResult{Chunks: []index.ScoredChunk{populated}, RawCount: 1},
			context:   Context{Text: "some passage", Chunks: []index.Chunk{populated.Chunk}},
			wantDec:   DecisionAnswer,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dec, reason := Decide(tt.retrieval, &tt.context)
			if dec != tt.wantDec {
				t.Errorf("decision = %v, want %v", dec, tt.wantDec)
			}
			if reason != tt.wantReason {
				t.Errorf("reason = %q, want %q", reason, tt.wantReason)
			}
		})
	}
}
