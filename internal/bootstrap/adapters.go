package bootstrap

import (
	"context"
	"fmt"

	"ai-bookchat-be/pkg/embedding"
	"ai-bookchat-be/pkg/llm"
	"ai-bookchat-be/pkg/rag"
)

// embedderAdapter narrows an EmbeddingProvider to the single-vector query
// embedding the engine needs.
type embedderAdapter struct {
	provider embedding.EmbeddingProvider
}

func NewEngineEmbedder(provider embedding.EmbeddingProvider) rag.Embedder {
	return &embedderAdapter{provider: provider}
}

func (a *embedderAdapter) Embed(ctx context.Context, text string) ([]float32, error) {
	res, err := a.provider.Generate(ctx, text, embedding.TaskRetrievalQuery)
	if err != nil {
		return nil, err
	}
	if len(res.Embedding.Values) == 0 {
		return nil, fmt.Errorf("embedding provider returned an empty vector")
	}
	return res.Embedding.Values, nil
}

// synthesizerAdapter drives an LLMProvider as the engine's constrained
// answer generator.
type synthesizerAdapter struct {
	provider    llm.LLMProvider
	temperature float64
	maxTokens   int
}

func NewEngineSynthesizer(provider llm.LLMProvider, maxTokens int) rag.Synthesizer {
	return &synthesizerAdapter{
		provider:    provider,
		temperature: 0.2,
		maxTokens:   maxTokens,
	}
}

func (a *synthesizerAdapter) Synthesize(ctx context.Context, question, contextText, systemConstraints string) (string, error) {
	history := []llm.Message{
		{Role: "system", Content: systemConstraints},
		{Role: "user", Content: rag.BuildUserPrompt(question, contextText)},
	}
	return a.provider.Chat(ctx, history,
		llm.WithTemperature(a.temperature),
		llm.WithMaxTokens(a.maxTokens),
	)
}
