// Package news ingests party press releases and news articles from
// RSS/Atom feeds, fetching each item's page for the full text.
package news

import (
	"context"
	"fmt"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/mapleline/policyscan/internal/core/domain"
	"github.com/mapleline/policyscan/internal/logger"
)

// Feed describes one feed to sweep.
type Feed struct {
	URL     string
	PartyID int64

	// Selector is an optional CSS selector passed through to the page
	// fetcher for sites with known markup.
	Selector string
}

// PageFetcher downloads one article page. Satisfied by webpage.Connector.
type PageFetcher interface {
	FetchArticle(ctx context.Context, url, title, selector string, partyID int64) (*domain.DocumentInput, error)
}

// Connector lists feed items and resolves each into a document.
type Connector struct {
	parser *gofeed.Parser
	pages  PageFetcher

	// CutoffDate skips items published before this YYYY-MM-DD date
	// when non-empty.
	CutoffDate string
}

// NewConnector creates a news connector using the given page fetcher
// for article bodies.
func NewConnector(pages PageFetcher) *Connector {
	return &Connector{
		parser: gofeed.NewParser(),
		pages:  pages,
	}
}

// Item is one feed entry before its page is fetched.
type Item struct {
	URL           string
	Title         string
	DatePublished string
}

// List parses the feed and returns its items, newest first as feeds
// usually order them. Items before the cutoff date are dropped.
func (c *Connector) List(ctx context.Context, feedURL string) ([]Item, error) {
	feed, err := c.parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("parse feed %s: %w", feedURL, err)
	}

	items := make([]Item, 0, len(feed.Items))
	for _, entry := range feed.Items {
		if entry.Link == "" {
			continue
		}
		item := Item{
			URL:           entry.Link,
			Title:         entry.Title,
			DatePublished: publishedDate(entry),
		}
		if c.CutoffDate != "" && item.DatePublished != "" && item.DatePublished < c.CutoffDate {
			continue
		}
		items = append(items, item)
	}
	return items, nil
}

// Fetch sweeps one feed: lists its items and fetches each article.
// Per-article failures are logged and skipped.
func (c *Connector) Fetch(ctx context.Context, feed Feed) ([]*domain.DocumentInput, error) {
	items, err := c.List(ctx, feed.URL)
	if err != nil {
		return nil, err
	}
	logger.Debug("Feed %s: %d items after cutoff", feed.URL, len(items))

	docs := make([]*domain.DocumentInput, 0, len(items))
	for _, item := range items {
		if err := ctx.Err(); err != nil {
			return docs, err
		}
		doc, err := c.pages.FetchArticle(ctx, item.URL, item.Title, feed.Selector, feed.PartyID)
		if err != nil {
			logger.Warn("Skipping article %s: %v", item.URL, err)
			continue
		}
		doc.DatePublished = item.DatePublished
		docs = append(docs, doc)
	}
	return docs, nil
}

// publishedDate reduces a feed entry's publication time to YYYY-MM-DD.
func publishedDate(entry *gofeed.Item) string {
	when := entry.PublishedParsed
	if when == nil {
		when = entry.UpdatedParsed
	}
	if when == nil {
		return ""
	}
	return when.UTC().Format(time.DateOnly)
}
