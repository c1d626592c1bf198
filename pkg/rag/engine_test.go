package rag

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

type fakeSynthesizer struct {
	reply       string
	err         error
	calls       int
	lastContext string
	delay       time.Duration
}

func (f *fakeSynthesizer) Synthesize(ctx context.Context, question, contextText, constraints string) (string, error) {
	f.calls++
	f.lastContext = contextText
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func testConfig() Config {
	return Config{
		TopK:          5,
		MinScore:      0.7,
		ContextBudget: 4000,
		CallTimeout:   2 * time.Second,
		BookTitle:     "Eat Like an Athlete",
	}
}

func newTestEngine(t *testing.T, scores []float64, embedder *fakeEmbedder, synth *fakeSynthesizer, cfg Config) *Engine {
	t.Helper()
	e, err := NewEngine(cfg, buildTestIndex(t, scores), embedder, synth, testLogger())
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	return e
}

func TestAnswerHappyPath(t *testing.T) {
	embedder := &fakeEmbedder{vector: []float32{1, 0}}
	synth := &fakeSynthesizer{reply: "Protein aids recovery [1]."}
	e := newTestEngine(t, []float64{0.91, 0.85, 0.40}, embedder, synth, testConfig())

	outcome := e.Answer(context.Background(), "how does protein help?")
	if outcome.Status != StatusAnswered {
		t.Fatalf("status = %s, want answered (reason=%q cause=%v)", outcome.Status, outcome.Reason, outcome.Cause)
	}
	if synth.calls != 1 {
		t.Errorf("synthesizer called %d times, want 1", synth.calls)
	}
	// Only the two above-threshold chunks reach the context.
	if len(outcome.ChunksUsed) != 2 {
		t.Errorf("chunks_used = %d, want 2", len(outcome.ChunksUsed))
	}
	if len(outcome.Citations) != 2 {
		t.Errorf("citations = %d, want 2", len(outcome.Citations))
	}
	if !strings.Contains(synth.lastContext, "chunk 0") || !strings.Contains(synth.lastContext, "chunk 1") {
		t.Errorf("context missing surviving chunks: %q", synth.lastContext)
	}
	if strings.Contains(synth.lastContext, "chunk 2") {
		t.Errorf("below-threshold chunk leaked into context")
	}
}

func TestAnswerEmptyIndexRefusesWithoutExternalCalls(t *testing.T) {
	embedder := &fakeEmbedder{vector: []float32{1, 0}}
	synth := &fakeSynthesizer{reply: "unused"}
	e := newTestEngine(t, nil, embedder, synth, testConfig())

	outcome := e.Answer(context.Background(), "anything at all")
	if outcome.Status != StatusRefused || outcome.Reason != ReasonNoRelevantContent {
		t.Fatalf("got %s/%q, want refused/%q", outcome.Status, outcome.Reason, ReasonNoRelevantContent)
	}
	if embedder.calls != 0 {
		t.Errorf("embedder called %d times for empty corpus, want 0", embedder.calls)
	}
	if synth.calls != 0 {
		t.Errorf("synthesizer called %d times, want 0", synth.calls)
	}
}

func TestAnswerAllBelowThresholdRefuses(t *testing.T) {
	embedder := &fakeEmbedder{vector: []float32{1, 0}}
	synth := &fakeSynthesizer{reply: "unused"}
	e := newTestEngine(t, []float64{0.3, 0.2}, embedder, synth, testConfig())

	outcome := e.Answer(context.Background(), "off-topic question")
	if outcome.Status != StatusRefused || outcome.Reason != ReasonNoRelevantContent {
		t.Fatalf("got %s/%q, want refused/%q", outcome.Status, outcome.Reason, ReasonNoRelevantContent)
	}
	if synth.calls != 0 {
		t.Errorf("synthesizer must not run on a certain refusal")
	}
}

func TestAnswerBudgetTooSmallRefuses(t *testing.T) {
	cfg := testConfig()
	cfg.ContextBudget = 5
	embedder := &fakeEmbedder{vector: []float32{1, 0}}
	synth := &fakeSynthesizer{reply: "unused"}
	e := newTestEngine(t, []float64{0.91}, embedder, synth, cfg)

	outcome := e.Answer(context.Background(), "question")
	if outcome.Status != StatusRefused || outcome.Reason != ReasonBudgetUnusable {
		t.Fatalf("got %s/%q, want refused/%q", outcome.Status, outcome.Reason, ReasonBudgetUnusable)
	}
	if synth.calls != 0 {
		t.Errorf("synthesizer must not run when nothing fits the budget")
	}
}

func TestAnswerVerifierDowngrade(t *testing.T) {
	embedder := &fakeEmbedder{vector: []float32{1, 0}}
	synth := &fakeSynthesizer{reply: CanonicalRefusal}
	e := newTestEngine(t, []float64{0.91, 0.85}, embedder, synth, testConfig())

	outcome := e.Answer(context.Background(), "question")
	if outcome.Status != StatusRefused || outcome.Reason != ReasonUnsupportedByContext {
		t.Fatalf("got %s/%q, want refused/%q", outcome.Status, outcome.Reason, ReasonUnsupportedByContext)
	}
	if len(outcome.ChunksUsed) != 0 || len(outcome.Citations) != 0 {
		t.Errorf("downgraded refusal must carry no chunks or citations")
	}
}

func TestAnswerEmbeddingFailureIsError(t *testing.T) {
	embedder := &fakeEmbedder{err: errors.New("provider unreachable")}
	synth := &fakeSynthesizer{reply: "unused"}
	e := newTestEngine(t, []float64{0.91}, embedder, synth, testConfig())

	outcome := e.Answer(context.Background(), "question")
	if outcome.Status != StatusError {
		t.Fatalf("status = %s, want error", outcome.Status)
	}
	var embErr *EmbeddingError
	if !errors.As(outcome.Cause, &embErr) {
		t.Errorf("cause = %v, want EmbeddingError", outcome.Cause)
	}
	if synth.calls != 0 {
		t.Errorf("synthesizer must not run after an embedding fault")
	}
}

func TestAnswerSynthesisFailureIsError(t *testing.T) {
	embedder := &fakeEmbedder{vector: []float32{1, 0}}
	synth := &fakeSynthesizer{err: errors.New("provider unreachable")}
	e := newTestEngine(t, []float64{0.91}, embedder, synth, testConfig())

	outcome := e.Answer(context.Background(), "question")
	if outcome.Status != StatusError {
		t.Fatalf("status = %s, want error", outcome.Status)
	}
	var synthErr *SynthesisError
	if !errors.As(outcome.Cause, &synthErr) {
		t.Errorf("cause = %v, want SynthesisError", outcome.Cause)
	}
}

func TestAnswerSynthesisTimeoutIsError(t *testing.T) {
	cfg := testConfig()
	cfg.CallTimeout = 20 * time.Millisecond
	embedder := &fakeEmbedder{vector: []float32{1, 0}}
	synth := &fakeSynthesizer{reply: "late", delay: 500 * time.Millisecond}
	e := newTestEngine(t, []float64{0.91}, embedder, synth, cfg)

	outcome := e.Answer(context.Background(), "question")
	if outcome.Status != StatusError {
		t.Fatalf("status = %s, want error", outcome.Status)
	}
	if !errors.Is(outcome.Cause, ErrTimeout) {
		t.Errorf("cause = %v, want ErrTimeout", outcome.Cause)
	}
}

func TestAnswerCancellationPropagates(t *testing.T) {
	embedder := &fakeEmbedder{vector: []float32{1, 0}}
	synth := &fakeSynthesizer{reply: "late", delay: time.Second}
	e := newTestEngine(t, []float64{0.91}, embedder, synth, testConfig())

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	outcome := e.Answer(ctx, "question")
	if outcome.Status != StatusError {
		t.Fatalf("status = %s, want error after caller cancellation", outcome.Status)
	}
}

func TestAnswerDeterministicGrounding(t *testing.T) {
	embedder := &fakeEmbedder{vector: []float32{1, 0}}
	synth := &fakeSynthesizer{reply: "Answer text [1]."}
	e := newTestEngine(t, []float64{0.91, 0.85, 0.40}, embedder, synth, testConfig())

	first := e.Answer(context.Background(), "same question")
	for run := 0; run < 3; run++ {
		again := e.Answer(context.Background(), "same question")
		if again.Status != first.Status {
			t.Fatalf("variant changed between identical runs")
		}
		if len(again.ChunksUsed) != len(first.ChunksUsed) {
			t.Fatalf("citation set size changed between identical runs")
		}
		for i := range again.ChunksUsed {
			if again.ChunksUsed[i] != first.ChunksUsed[i] {
				t.Errorf("chunks_used[%d] changed between identical runs", i)
			}
		}
	}
}

func TestAnswerRoundTrip(t *testing.T) {
	embedder := &fakeEmbedder{vector: []float32{1, 0}}
	synth := &fakeSynthesizer{reply: "Answer [1]."}
	e := newTestEngine(t, []float64{0.95, 0.8, 0.2}, embedder, synth, testConfig())

	outcome := e.Answer(context.Background(), "question")
	if outcome.Status != StatusAnswered {
		t.Fatalf("status = %s, want answered", outcome.Status)
	}
	// Every chunk_used passed the threshold and its text is inside the
	// context handed to the synthesizer.
	if len(outcome.ChunksUsed) != 2 {
		t.Fatalf("chunks_used = %d, want the 2 above-threshold chunks", len(outcome.ChunksUsed))
	}
	for _, text := range []string{"chunk 0", "chunk 1"} {
		if !strings.Contains(synth.lastContext, text) {
			t.Errorf("chunk text %q not present in assembled context", text)
		}
	}
}

func TestNewEngineValidatesConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero k", func(c *Config) { c.TopK = 0 }},
		{"score out of range", func(c *Config) { c.MinScore = 2 }},
		{"zero budget", func(c *Config) { c.ContextBudget = 0 }},
		{"zero timeout", func(c *Config) { c.CallTimeout = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			tt.mutate(&cfg)
			_, err := NewEngine(cfg, buildTestIndex(t, nil), &fakeEmbedder{}, &fakeSynthesizer{}, testLogger())
			if err == nil {
				t.Errorf("expected config validation error")
			}
		})
	}
}
