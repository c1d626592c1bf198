package rag

import (
	"strings"

	"github.com/google/uuid"
)

// DefaultRefusalPhrases matches the refusal wording the synthesizer is
// instructed to emit (see prompt.go) plus common paraphrases. The set is
// configurable so a non-English corpus can supply its own.
var DefaultRefusalPhrases = []string{
	"cannot answer",
	"don't have information",
	"not mentioned in the book",
	"not covered in the book",
	"context doesn't contain",
}

// Verifier runs the post-generation check on synthesizer output. It is a
// local, deterministic check: it can only downgrade an accepted answer to
// a refusal, never upgrade.
type Verifier struct {
	phrases []string
}

// NewVerifier builds a verifier over the given refusal-phrase set.
// Matching is case-insensitive substring containment.
func NewVerifier(phrases []string) *Verifier {
	lowered := make([]string, 0, len(phrases))
	for _, p := range phrases {
		p = strings.TrimSpace(strings.ToLower(p))
		if p != "" {
			lowered = append(lowered, p)
		}
	}
	return &Verifier{phrases: lowered}
}

// Verify inspects the raw synthesizer output. A self-declared refusal or
// an empty answer downgrades to Refused; otherwise the answer is accepted
// with chunks_used set to exactly the chunks included in the context.
// Attribution is at context-inclusion granularity: the engine does not
// attempt per-sentence attribution.
func (v *Verifier) Verify(rawAnswer string, context *Context) Outcome {
	if v.isRefusal(rawAnswer) {
		return Refused(ReasonUnsupportedByContext)
	}
	if strings.TrimSpace(rawAnswer) == "" {
		return Refused(ReasonUnsupportedByContext)
	}

	chunksUsed := make([]uuid.UUID, len(context.Chunks))
	for i, c := range context.Chunks {
		chunksUsed[i] = c.Id
	}

	return Answered(rawAnswer, chunksUsed, AssembleCitations(context.Chunks))
}

func (v *Verifier) isRefusal(answer string) bool {
	lowered := strings.ToLower(answer)
	for _, phrase := range v.phrases {
		if strings.Contains(lowered, phrase) {
			return true
		}
	}
	return false
}
