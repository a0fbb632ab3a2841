package driving

import (
	"context"

	"github.com/mapleline/policyscan/internal/core/domain"
)

// ChatService is the conversational front onto retrieval: it gathers
// relevant policy context for a question and has the language model
// answer from that context alone.
type ChatService interface {
	// Ask answers one question. Retrieval and LLM failures come back as
	// errors; the caller's loop prints them and keeps the conversation
	// alive.
	Ask(ctx context.Context, question string, opts domain.ChatOptions) (string, error)
}
