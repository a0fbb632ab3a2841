// Package webpage fetches party webpages and extracts their main text
// for ingestion.
package webpage

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/mapleline/policyscan/internal/core/domain"
	"github.com/mapleline/policyscan/internal/logger"
)

const (
	defaultTimeout = 30 * time.Second
	userAgent      = "policyscan/1.0"

	// maxBodyBytes caps page downloads. Platform pages are text heavy
	// but nowhere near this size.
	maxBodyBytes = 10 << 20
)

// Page describes one page to fetch.
type Page struct {
	URL     string
	Title   string            // optional override, extracted when empty
	Kind    domain.SourceKind // webpage or article, defaults to webpage
	PartyID int64

	// Selector is an optional CSS selector for the content container.
	Selector string
}

// Connector fetches webpages over HTTP and extracts their main text.
type Connector struct {
	client *http.Client
}

// NewConnector creates a webpage connector. A nil client gets a default
// with a 30s timeout.
func NewConnector(client *http.Client) *Connector {
	if client == nil {
		client = &http.Client{Timeout: defaultTimeout}
	}
	return &Connector{client: client}
}

// Fetch downloads one page and extracts its content.
func (c *Connector) Fetch(ctx context.Context, page Page) (*domain.DocumentInput, error) {
	html, err := c.download(ctx, page.URL)
	if err != nil {
		return nil, err
	}

	extractor := &Extractor{Selector: page.Selector}
	text, err := extractor.Extract(html)
	if err != nil {
		return nil, fmt.Errorf("extract %s: %w", page.URL, err)
	}

	title := page.Title
	if title == "" {
		title = extractor.Title(html)
	}
	if title == "" {
		return nil, fmt.Errorf("webpage: no title for %s: %w", page.URL, domain.ErrInvalidInput)
	}

	kind := page.Kind
	if kind == "" {
		kind = domain.SourceKindWebpage
	}

	logger.Debug("Fetched %s (%d chars)", page.URL, len(text))
	return &domain.DocumentInput{
		URL:     page.URL,
		Title:   title,
		Kind:    kind,
		PartyID: page.PartyID,
		Text:    text,
	}, nil
}

// FetchArticle fetches one page as an article source. The news
// connector uses this for feed items.
func (c *Connector) FetchArticle(ctx context.Context, url, title, selector string, partyID int64) (*domain.DocumentInput, error) {
	return c.Fetch(ctx, Page{
		URL:      url,
		Title:    title,
		Kind:     domain.SourceKindArticle,
		PartyID:  partyID,
		Selector: selector,
	})
}

// FetchAll downloads a batch of pages. Per-page failures are logged and
// skipped.
func (c *Connector) FetchAll(ctx context.Context, pages []Page) ([]*domain.DocumentInput, error) {
	docs := make([]*domain.DocumentInput, 0, len(pages))
	for _, page := range pages {
		if err := ctx.Err(); err != nil {
			return docs, err
		}
		doc, err := c.Fetch(ctx, page)
		if err != nil {
			logger.Warn("Skipping page %s: %v", page.URL, err)
			continue
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

func (c *Connector) download(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", fmt.Errorf("fetch %s: %w", url, domain.ErrNotFound)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch %s: unexpected status %d", url, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", fmt.Errorf("read %s: %w", url, err)
	}
	return string(body), nil
}
