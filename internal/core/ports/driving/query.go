package driving

import (
	"context"

	"github.com/docqa-labs/docqa-cli/internal/core/domain"
	"github.com/docqa-labs/docqa-cli/internal/core/ports/driven"
)

// Conversation is the explicit per-session context object.
// It replaces ambient session storage: one Conversation per active session,
// owned by the caller and passed to every query.
type Conversation struct {
	// History holds prior turns, oldest first.
	History []driven.Turn
}

// Answer is the result of one query.
type Answer struct {
	// Text is the generated answer.
	Text string

	// Context holds the documents retrieved for the query, best first.
	Context []domain.Document

	// Records holds employee records extracted from the roster when the
	// query names a department; empty otherwise. Field names are stable so
	// a table renderer can map them to columns deterministically.
	Records []domain.EmployeeRecord
}

// QueryService answers questions over the indexed corpus.
type QueryService interface {
	// Ask retrieves context for the query, generates an answer, and appends
	// the exchange to conv. On error conv is left unmodified so the next
	// query starts from a clean state.
	Ask(ctx context.Context, conv *Conversation, query string) (*Answer, error)
}
