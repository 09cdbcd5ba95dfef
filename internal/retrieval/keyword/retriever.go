// Package keyword provides the retrieval fallback used when no embedding
// backend is available. Scoring is plain substring counting with source
// bonuses, so it works with zero external services and never fails.
package keyword

import (
	"context"
	"sort"
	"strings"

	"github.com/docqa-labs/docqa-cli/internal/core/domain"
	"github.com/docqa-labs/docqa-cli/internal/core/ports/driven"
)

// Ensure Retriever implements the interface.
var _ driven.Retriever = (*Retriever)(nil)

// Scoring weights. Source-name hits outrank content hits; intent bonuses
// outrank both so the roster answers people questions even when the query
// words barely appear in it.
const (
	sourceMatchWeight = 10
	intentBonus       = 50
)

// Default intent vocabularies. A query containing one of these signals what
// kind of document the user is after.
var (
	DefaultDepartmentTerms = []string{
		"department", "departments", "employee", "employees", "staff",
		"headcount", "roster", "team", "member", "members",
		"sales", "engineering", "marketing", "finance", "hr", "support",
	}
	DefaultMeetingTerms = []string{
		"meeting", "meetings", "conference", "room", "rooms",
		"booking", "book", "reserve", "reservation",
	}
)

// Default source markers for the intent bonuses.
const (
	DefaultRosterMarker = "roster"
	DefaultRulesMarker  = "rules"
)

// Retriever scores the unsplit corpus against query tokens.
type Retriever struct {
	docs            []domain.Document
	departmentTerms []string
	meetingTerms    []string
	rosterMarker    string
	rulesMarker     string
}

// Option configures the retriever.
type Option func(*Retriever)

// WithDepartmentTerms overrides the department intent vocabulary.
func WithDepartmentTerms(terms []string) Option {
	return func(r *Retriever) {
		r.departmentTerms = terms
	}
}

// WithMeetingTerms overrides the meeting intent vocabulary.
func WithMeetingTerms(terms []string) Option {
	return func(r *Retriever) {
		r.meetingTerms = terms
	}
}

// WithMarkers overrides the source substrings that receive intent bonuses.
func WithMarkers(roster, rules string) Option {
	return func(r *Retriever) {
		r.rosterMarker = roster
		r.rulesMarker = rules
	}
}

// New creates a keyword retriever over the given documents.
func New(docs []domain.Document, opts ...Option) *Retriever {
	r := &Retriever{
		docs:            docs,
		departmentTerms: DefaultDepartmentTerms,
		meetingTerms:    DefaultMeetingTerms,
		rosterMarker:    DefaultRosterMarker,
		rulesMarker:     DefaultRulesMarker,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Retrieve scores every document against the query and returns the top k.
// Zero-score documents are excluded; ties keep corpus order.
func (r *Retriever) Retrieve(_ context.Context, query string, k int) ([]domain.Document, error) {
	if k <= 0 {
		return nil, nil
	}

	tokens := strings.Fields(strings.ToLower(query))
	if len(tokens) == 0 {
		return nil, nil
	}

	deptQuery := r.hasIntent(tokens, r.departmentTerms)
	meetingQuery := r.hasIntent(tokens, r.meetingTerms)

	type scored struct {
		doc   domain.Document
		score int
	}
	var results []scored
	for _, doc := range r.docs {
		content := strings.ToLower(doc.Content)
		source := strings.ToLower(doc.Source())

		score := 0
		for _, token := range tokens {
			score += strings.Count(content, token)
			if strings.Contains(source, token) {
				score += sourceMatchWeight
			}
		}
		if deptQuery && strings.Contains(source, r.rosterMarker) {
			score += intentBonus
		}
		if meetingQuery && strings.Contains(source, r.rulesMarker) {
			score += intentBonus
		}

		if score > 0 {
			results = append(results, scored{doc: doc, score: score})
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].score > results[j].score
	})

	if k > len(results) {
		k = len(results)
	}
	docs := make([]domain.Document, k)
	for i := range docs {
		docs[i] = results[i].doc
	}
	return docs, nil
}

// Len returns the number of documents in the corpus.
func (r *Retriever) Len() int {
	return len(r.docs)
}

func (r *Retriever) hasIntent(tokens, vocabulary []string) bool {
	for _, token := range tokens {
		for _, term := range vocabulary {
			if token == term {
				return true
			}
		}
	}
	return false
}
