package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/mapleline/policyscan/internal/core/domain"
	"github.com/mapleline/policyscan/internal/core/ports/driven"
	"github.com/mapleline/policyscan/internal/core/ports/driving"
	"github.com/mapleline/policyscan/internal/logger"
)

// Ensure ChatService implements the interface.
var _ driving.ChatService = (*ChatService)(nil)

// DefaultSystemPrompt constrains the assistant to the retrieved context.
// A PromptStore may override it.
const DefaultSystemPrompt = `You are a Canadian politics expert who analyzes Liberal and Conservative party policies.
Answer questions about the policies and positions of these two parties based ONLY on the
information provided with each question. If the provided information does not answer the
question, or a party has not stated a position, clearly say you don't have that information.
Always cite the source each piece of information came from. Never make up or infer policy
positions that are not explicitly supported by the provided content. When comparing parties,
be objective and present each party's position fairly.`

// maxHistoryMessages bounds the conversation window sent to the model.
const maxHistoryMessages = 20

// ChatService answers questions by retrieving policy context and
// forwarding it, with citations, to the language model. It keeps the
// running conversation so follow-up questions have history.
type ChatService struct {
	retrieval driving.RetrievalService
	llm       driven.LLMService
	prompts   driven.PromptStore

	sessionID string
	history   []driven.ChatMessage
}

// NewChatService creates a chat service. The prompt store is optional.
func NewChatService(
	retrieval driving.RetrievalService,
	llm driven.LLMService,
	prompts driven.PromptStore,
) *ChatService {
	return &ChatService{
		retrieval: retrieval,
		llm:       llm,
		prompts:   prompts,
		sessionID: uuid.New().String(),
	}
}

// Ask answers one question from retrieved context.
func (s *ChatService) Ask(ctx context.Context, question string, opts domain.ChatOptions) (string, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return "", domain.ErrInvalidInput
	}
	if s.llm == nil {
		return "", domain.ErrLLMUnavailable
	}

	logger.Section("Chat")
	logger.Debug("Session %s: %q", s.sessionID, question)

	searchOpts := domain.SearchOptions{
		Limit:         opts.Limit,
		MinSimilarity: opts.MinSimilarity,
	}
	if len(opts.Parties) > 0 {
		ids, err := s.retrieval.ResolveParties(ctx, opts.Parties)
		if err != nil {
			return "", err
		}
		searchOpts.PartyIDs = ids
	}

	policyContext, err := s.retrieval.Context(ctx, question, searchOpts)
	if err != nil {
		return "", fmt.Errorf("retrieve context: %w", err)
	}

	prompt := s.buildPrompt(question, policyContext, opts)

	messages := append(s.windowedHistory(), driven.ChatMessage{Role: "user", Content: prompt})
	answer, err := s.llm.Chat(ctx, s.systemPrompt(), messages, driven.ChatOptions{})
	if err != nil {
		return "", fmt.Errorf("chat: %w", err)
	}

	s.history = append(s.history,
		driven.ChatMessage{Role: "user", Content: prompt},
		driven.ChatMessage{Role: "model", Content: answer},
	)

	return answer, nil
}

// buildPrompt assembles the per-question prompt around the retrieved
// context block.
func (s *ChatService) buildPrompt(question, policyContext string, opts domain.ChatOptions) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Based on the following information, please answer this question: %q\n\n", question)
	b.WriteString(policyContext)
	b.WriteString("\n\n")
	if opts.CompareParties {
		b.WriteString("Please compare the positions of the parties on this issue. ")
		b.WriteString("If a party's position is not mentioned in the provided information, clearly state that.")
	}
	return b.String()
}

func (s *ChatService) systemPrompt() string {
	if s.prompts != nil {
		if p := s.prompts.SystemPrompt(); p != "" {
			return p
		}
	}
	return DefaultSystemPrompt
}

func (s *ChatService) windowedHistory() []driven.ChatMessage {
	if len(s.history) <= maxHistoryMessages {
		return s.history
	}
	return s.history[len(s.history)-maxHistoryMessages:]
}

// HintsFromQuestion derives chat options from the question text the
// way the interactive chat does: compare mode when the question asks
// for a comparison, and party restriction when a party is named.
func HintsFromQuestion(question string) domain.ChatOptions {
	lower := strings.ToLower(question)

	opts := domain.ChatOptions{
		CompareParties: strings.Contains(lower, "compare") ||
			strings.Contains(lower, "differ") ||
			strings.Contains(lower, "versus") ||
			strings.Contains(lower, " vs ") ||
			strings.Contains(lower, " vs. "),
	}

	if strings.Contains(lower, "liberal") {
		opts.Parties = append(opts.Parties, "Liberal Party of Canada")
	}
	if strings.Contains(lower, "conservative") {
		opts.Parties = append(opts.Parties, "Conservative Party of Canada")
	}

	return opts
}
