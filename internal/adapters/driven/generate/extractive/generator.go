// Package extractive provides an answer generator that needs no external
// API. It quotes the most relevant retrieved passages, and renders roster
// questions as a markdown employee table. Used when no OpenAI key is
// configured or the API budget has run out.
package extractive

import (
	"context"
	"fmt"
	"strings"

	"github.com/docqa-labs/docqa-cli/internal/core/domain"
	"github.com/docqa-labs/docqa-cli/internal/core/ports/driven"
	"github.com/docqa-labs/docqa-cli/internal/core/services"
)

// Ensure Generator implements the interface.
var _ driven.AnswerGenerator = (*Generator)(nil)

// DefaultMaxPassages is how many context passages are quoted per answer.
const DefaultMaxPassages = 3

// snippetLimit caps each quoted passage, in runes.
const snippetLimit = 400

// Generator builds answers directly from the retrieved text.
type Generator struct {
	maxPassages int
}

// Option configures the generator.
type Option func(*Generator)

// WithMaxPassages overrides how many passages are quoted.
func WithMaxPassages(n int) Option {
	return func(g *Generator) {
		if n > 0 {
			g.maxPassages = n
		}
	}
}

// New creates an extractive generator.
func New(opts ...Option) *Generator {
	g := &Generator{maxPassages: DefaultMaxPassages}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate renders an answer from the retrieved documents. The conversation
// history is ignored; without a language model there is nothing useful to do
// with it.
func (g *Generator) Generate(_ context.Context, query string, _ []driven.Turn, docs []domain.Document) (string, error) {
	if len(docs) == 0 {
		return "No relevant documents were found for this question.", nil
	}

	if records := services.ExtractRecords(docs, query); len(records) > 0 {
		return renderEmployeeTable(records), nil
	}

	var b strings.Builder
	b.WriteString("The most relevant passages found:\n")
	limit := g.maxPassages
	if limit > len(docs) {
		limit = len(docs)
	}
	for _, doc := range docs[:limit] {
		fmt.Fprintf(&b, "\n--- %s ---\n%s\n", doc.Source(), snippet(doc.Content))
	}
	return strings.TrimSpace(b.String()), nil
}

// renderEmployeeTable formats records as a markdown table with a count line.
func renderEmployeeTable(records []domain.EmployeeRecord) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d matching employee(s) found in the %s department:\n\n",
		len(records), records[0].Department)

	b.WriteString("| ID | Name | Title | Category | Hire Date | Age | Email |\n")
	b.WriteString("|----|------|-------|----------|-----------|-----|-------|\n")
	for _, r := range records {
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s | %s |\n",
			cellOrDash(r.ID), cellOrDash(r.Name), cellOrDash(r.Title),
			cellOrDash(r.Category), cellOrDash(r.HireDate),
			cellOrDash(r.Age), cellOrDash(r.Email))
	}
	return strings.TrimSpace(b.String())
}

func cellOrDash(v string) string {
	if v == "" {
		return "-"
	}
	return strings.ReplaceAll(v, "|", "\\|")
}

func snippet(content string) string {
	runes := []rune(strings.TrimSpace(content))
	if len(runes) <= snippetLimit {
		return string(runes)
	}
	return string(runes[:snippetLimit]) + "..."
}
