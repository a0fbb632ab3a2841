package webpage

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"
)

// contentSelectors are tried in order when no explicit selector is
// configured. Party platform pages tend to put body copy in one of
// these containers.
var contentSelectors = []string{
	"main",
	"article",
	"[role='main']",
	".content",
	".entry-content",
	"#content",
}

// Extractor pulls the main text out of an HTML page. An explicit CSS
// selector wins; otherwise common content containers are tried, then
// readability extraction, then the stripped body as a last resort.
type Extractor struct {
	// Selector is an optional CSS selector for the content container.
	Selector string
}

// Extract returns the page's main text with collapsed whitespace.
func (e *Extractor) Extract(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("parse html: %w", err)
	}

	if e.Selector != "" {
		if text := selectionText(doc, e.Selector); text != "" {
			return text, nil
		}
		return "", fmt.Errorf("webpage: selector %q matched no text", e.Selector)
	}

	for _, sel := range contentSelectors {
		if text := selectionText(doc, sel); text != "" {
			return text, nil
		}
	}

	if article, err := readability.FromReader(strings.NewReader(html), nil); err == nil {
		if text := collapse(article.TextContent); text != "" {
			return text, nil
		}
	}

	// Last resort: the whole body minus script and style.
	body := doc.Find("body").Clone()
	body.Find("script, style, nav, header, footer").Remove()
	if text := collapse(body.Text()); text != "" {
		return text, nil
	}

	return "", fmt.Errorf("webpage: no extractable text")
}

// Title returns the page title, preferring og:title over <title>.
func (e *Extractor) Title(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}
	if title, ok := doc.Find("meta[property='og:title']").Attr("content"); ok {
		if t := strings.TrimSpace(title); t != "" {
			return t
		}
	}
	if t := strings.TrimSpace(doc.Find("title").First().Text()); t != "" {
		return t
	}
	return strings.TrimSpace(doc.Find("h1").First().Text())
}

// selectionText extracts the text of the first matching node, with
// script and style content removed.
func selectionText(doc *goquery.Document, selector string) string {
	sel := doc.Find(selector).First()
	if sel.Length() == 0 {
		return ""
	}
	sel = sel.Clone()
	sel.Find("script, style").Remove()
	return collapse(sel.Text())
}

// collapse normalises runs of whitespace to single spaces.
func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
