package driven

import (
	"context"

	"github.com/docqa-labs/docqa-cli/internal/core/domain"
)

// Turn is one entry of a conversation history.
type Turn struct {
	// Role is "user" or "assistant".
	Role string

	// Text is the message content.
	Text string
}

// AnswerGenerator produces an answer from a query, the conversation history
// and the retrieved context documents. The retrieval core treats it as an
// external collaborator behind this narrow interface; it owes the generator
// nothing beyond well-formed documents.
type AnswerGenerator interface {
	// Generate returns the answer text for the query.
	Generate(ctx context.Context, query string, history []Turn, docs []domain.Document) (string, error)
}
