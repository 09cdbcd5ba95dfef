// Package web fetches configured intranet pages and converts them into
// plain-text documents for indexing.
package web

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/docqa-labs/docqa-cli/internal/core/domain"
	"github.com/docqa-labs/docqa-cli/internal/logger"
)

var blankLines = regexp.MustCompile(`\n{3,}`)

// Connector downloads each configured URL once per ingest. Requests are
// rate limited so a long URL list does not hammer the intranet server.
type Connector struct {
	urls    []string
	client  *http.Client
	limiter *rate.Limiter
}

// Option configures the connector.
type Option func(*Connector)

// WithClient overrides the HTTP client. Useful for testing.
func WithClient(client *http.Client) Option {
	return func(c *Connector) {
		c.client = client
	}
}

// WithRateLimit overrides the request rate (requests per second).
func WithRateLimit(rps float64) Option {
	return func(c *Connector) {
		c.limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}
}

// New creates a web connector for the given URLs.
func New(urls []string, opts ...Option) *Connector {
	c := &Connector{
		urls:    urls,
		client:  &http.Client{Timeout: 30 * time.Second},
		limiter: rate.NewLimiter(rate.Limit(2), 1),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Type returns the connector type identifier.
func (c *Connector) Type() string {
	return "web"
}

// Documents fetches every configured URL. A URL that fails to fetch or
// parse is logged and skipped.
func (c *Connector) Documents(ctx context.Context) ([]domain.Document, error) {
	var docs []domain.Document
	for _, url := range c.urls {
		if err := c.limiter.Wait(ctx); err != nil {
			return docs, err
		}

		doc, err := c.fetch(ctx, url)
		if err != nil {
			logger.Error("failed to fetch %s: %v", url, err)
			continue
		}
		docs = append(docs, doc)
		logger.Debug("fetched %s (%d chars)", url, len(doc.Content))
	}

	logger.Info("web connector loaded %d documents from %d urls", len(docs), len(c.urls))
	return docs, nil
}

func (c *Connector) fetch(ctx context.Context, url string) (domain.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return domain.Document{}, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return domain.Document{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.Document{}, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	page, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return domain.Document{}, fmt.Errorf("failed to parse html: %w", err)
	}

	page.Find("script, style, noscript").Remove()

	title := strings.TrimSpace(page.Find("title").First().Text())
	body := page.Find("body")
	if body.Length() == 0 {
		body = page.Selection
	}

	text := normaliseWhitespace(body.Text())
	if text == "" {
		return domain.Document{}, fmt.Errorf("page has no text content")
	}
	if title != "" {
		text = title + "\n\n" + text
	}

	return domain.Document{
		ID:      uuid.NewString(),
		Content: text,
		Metadata: map[string]any{
			domain.MetadataSourceKey: url,
			"file_type":              "web",
			"title":                  title,
		},
	}, nil
}

// normaliseWhitespace collapses the ragged whitespace left behind by tag
// stripping into readable lines.
func normaliseWhitespace(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.Join(strings.Fields(line), " ")
	}
	joined := strings.Join(lines, "\n")
	joined = blankLines.ReplaceAllString(joined, "\n\n")
	return strings.TrimSpace(joined)
}
