package services

import (
	"context"

	"github.com/mapleline/policyscan/internal/core/ports/driven"
)

// stubEmbedder returns canned vectors keyed by input text, falling
// back to a default vector for unknown inputs.
type stubEmbedder struct {
	vectors  map[string][]float32
	fallback []float32
	err      error
	calls    int
}

func (s *stubEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	if vec, ok := s.vectors[text]; ok {
		return vec, nil
	}
	return s.fallback, nil
}

func (s *stubEmbedder) Dimensions() int              { return len(s.fallback) }
func (s *stubEmbedder) ModelName() string            { return "stub-embedding-001" }
func (s *stubEmbedder) Ping(_ context.Context) error { return nil }
func (s *stubEmbedder) Close() error                 { return nil }

var _ driven.EmbeddingService = (*stubEmbedder)(nil)

// stubLLM echoes a fixed answer and records what it was asked.
type stubLLM struct {
	answer       string
	err          error
	lastSystem   string
	lastMessages []driven.ChatMessage
}

func (s *stubLLM) Chat(_ context.Context, system string, messages []driven.ChatMessage, _ driven.ChatOptions) (string, error) {
	s.lastSystem = system
	s.lastMessages = messages
	if s.err != nil {
		return "", s.err
	}
	return s.answer, nil
}

func (s *stubLLM) ModelName() string            { return "stub-llm-001" }
func (s *stubLLM) Ping(_ context.Context) error { return nil }
func (s *stubLLM) Close() error                 { return nil }

var _ driven.LLMService = (*stubLLM)(nil)

// stubPrompts returns a fixed system prompt.
type stubPrompts struct {
	prompt string
}

func (s *stubPrompts) SystemPrompt() string { return s.prompt }

var _ driven.PromptStore = (*stubPrompts)(nil)
