package rag

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"ai-bookchat-be/pkg/rag/index"
)

// ErrTimeout marks an external call that exceeded the per-call deadline.
// A timeout is an infrastructure fault, never a refusal, so the caller
// can apply its own retry policy.
var ErrTimeout = errors.New("timeout")

// Synthesizer produces the natural-language answer from the question and
// the assembled context, constrained by the system instruction. It is an
// external capability; the engine only invokes it after the grounding
// policy selected ANSWER.
type Synthesizer interface {
	Synthesize(ctx context.Context, question, contextText, systemConstraints string) (string, error)
}

// Config is the immutable engine configuration. All values are supplied
// at construction and hold for the lifetime of a loaded index.
type Config struct {
	TopK           int
	MinScore       float64
	ContextBudget  int
	CallTimeout    time.Duration
	RefusalPhrases []string
	BookTitle      string
}

// Validate checks the configuration ranges.
func (c Config) Validate() error {
	if c.TopK < 1 {
		return fmt.Errorf("top k must be >= 1, got %d", c.TopK)
	}
	if c.MinScore < -1 || c.MinScore > 1 {
		return fmt.Errorf("min score must be within [-1, 1], got %f", c.MinScore)
	}
	if c.ContextBudget <= 0 {
		return fmt.Errorf("context budget must be positive, got %d", c.ContextBudget)
	}
	if c.CallTimeout <= 0 {
		return fmt.Errorf("call timeout must be positive, got %s", c.CallTimeout)
	}
	return nil
}

// Engine runs one question through retrieval, grounding, synthesis and
// verification, resolving to exactly one Outcome variant. It holds no
// cross-query mutable state: the index snapshot is read-only and shared,
// so concurrent queries need no coordination.
type Engine struct {
	cfg       Config
	retriever *Retriever
	synth     Synthesizer
	verifier  *Verifier
	logger    *log.Logger
}

// NewEngine wires the engine. The refusal-phrase set defaults to
// DefaultRefusalPhrases when the config leaves it empty.
func NewEngine(cfg Config, idx *index.Index, embedder Embedder, synth Synthesizer, logger *log.Logger) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid engine config: %w", err)
	}

	phrases := cfg.RefusalPhrases
	if len(phrases) == 0 {
		phrases = DefaultRefusalPhrases
	}

	return &Engine{
		cfg:       cfg,
		retriever: NewRetriever(idx, embedder, logger),
		synth:     synth,
		verifier:  NewVerifier(phrases),
		logger:    logger,
	}, nil
}

// Answer processes one question. Every path resolves to exactly one
// variant: Answered, Refused or Error. The engine performs no retries and
// propagates caller cancellation into the two external calls.
func (e *Engine) Answer(ctx context.Context, question string) Outcome {
	retrieval, err := e.retrieveWithTimeout(ctx, question)
	if err != nil {
		e.logger.Printf("[ERROR] Retrieval failed: %v", err)
		return Errored(err)
	}

	built := BuildContext(retrieval, e.cfg.ContextBudget)

	decision, reason := Decide(retrieval, &built)
	if decision == DecisionRefuse {
		e.logger.Printf("[INFO] Grounding policy refused: %s (raw=%d, kept=%d)",
			reason, retrieval.RawCount, len(retrieval.Chunks))
		return Refused(reason)
	}

	raw, err := e.synthesizeWithTimeout(ctx, question, built.Text)
	if err != nil {
		e.logger.Printf("[ERROR] Synthesis failed: %v", err)
		return Errored(err)
	}

	outcome := e.verifier.Verify(raw, &built)
	if outcome.Status == StatusRefused {
		e.logger.Printf("[INFO] Verifier downgraded answer to refusal")
	}
	return outcome
}

func (e *Engine) retrieveWithTimeout(ctx context.Context, question string) (*RetrievalResult, error) {
	callCtx, cancel := context.WithTimeout(ctx, e.cfg.CallTimeout)
	defer cancel()

	retrieval, err := e.retriever.Retrieve(callCtx, question, e.cfg.TopK, e.cfg.MinScore)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: embedding call exceeded %s", ErrTimeout, e.cfg.CallTimeout)
		}
		return nil, err
	}
	return retrieval, nil
}

func (e *Engine) synthesizeWithTimeout(ctx context.Context, question, contextText string) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, e.cfg.CallTimeout)
	defer cancel()

	constraints := BuildSystemConstraints(e.cfg.BookTitle)
	raw, err := e.synth.Synthesize(callCtx, question, contextText, constraints)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", fmt.Errorf("%w: synthesis call exceeded %s", ErrTimeout, e.cfg.CallTimeout)
		}
		return "", &SynthesisError{Err: err}
	}
	return raw, nil
}
