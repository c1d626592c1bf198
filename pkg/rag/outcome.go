package rag

import "github.com/google/uuid"

// Status is the terminal classification of one query.
type Status string

const (
	StatusAnswered Status = "answered"
	StatusRefused  Status = "refused"
	StatusError    Status = "error"
)

// Refusal reasons. The pre-generation grounding filter and the
// post-generation verifier keep distinct reasons so downstream logging can
// tell them apart.
const (
	ReasonNoRelevantContent    = "no relevant content"
	ReasonBudgetUnusable       = "content present but unusable under budget"
	ReasonUnsupportedByContext = "answer not supported by the provided context"
)

// Outcome is the tagged result of one query. Exactly one of the three
// variants applies: Answered carries text, chunks and citations; Refused
// carries a reason; Error carries the originating cause. No variant is
// inferred from absent fields.
type Outcome struct {
	Status     Status
	Answer     string
	Reason     string
	Cause      error
	ChunksUsed []uuid.UUID
	Citations  []Citation
}

// Answered builds the success variant.
func Answered(text string, chunksUsed []uuid.UUID, citations []Citation) Outcome {
	return Outcome{
		Status:     StatusAnswered,
		Answer:     text,
		ChunksUsed: chunksUsed,
		Citations:  citations,
	}
}

// Refused builds the refusal variant. A refusal is a normal outcome, not
// an error: it states the corpus does not sufficiently cover the question.
func Refused(reason string) Outcome {
	return Outcome{
		Status:     StatusRefused,
		Reason:     reason,
		ChunksUsed: []uuid.UUID{},
		Citations:  []Citation{},
	}
}

// Errored builds the infrastructure-failure variant. The cause is
// preserved for the caller's own retry policy; the engine never retries.
func Errored(cause error) Outcome {
	return Outcome{
		Status:     StatusError,
		Cause:      cause,
		ChunksUsed: []uuid.UUID{},
		Citations:  []Citation{},
	}
}
