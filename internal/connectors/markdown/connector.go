// Package markdown ingests hand-collected documents from a local
// drop directory, either in one scan or by watching for new files.
package markdown

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/mapleline/policyscan/internal/core/domain"
	"github.com/mapleline/policyscan/internal/logger"
)

// Document is one parsed markdown file.
type Document struct {
	Path  string
	Title string
	Text  string
}

// Parse reads a markdown file. The title comes from the first level-one
// heading, falling back to the file name without extension.
func Parse(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	text := strings.TrimSpace(string(data))
	if text == "" {
		return nil, fmt.Errorf("markdown: empty file %s: %w", path, domain.ErrInvalidInput)
	}

	title := ""
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if after, ok := strings.CutPrefix(line, "# "); ok {
			title = strings.TrimSpace(after)
			break
		}
	}
	if title == "" {
		title = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	return &Document{Path: path, Title: title, Text: text}, nil
}

// isMarkdown reports whether the path looks like a markdown file.
func isMarkdown(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		return true
	}
	return false
}

// ScanDir parses every markdown file directly inside dir, sorted by
// name. Unparseable files are logged and skipped.
func ScanDir(dir string) ([]*Document, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dir %s: %w", dir, err)
	}

	docs := make([]*Document, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !isMarkdown(entry.Name()) {
			continue
		}
		doc, err := Parse(filepath.Join(dir, entry.Name()))
		if err != nil {
			logger.Warn("Skipping %s: %v", entry.Name(), err)
			continue
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// Input converts a parsed document into an ingestable one. The file
// path becomes a file:// URL so the ledger can key on it.
func (d *Document) Input(partyID int64) *domain.DocumentInput {
	return &domain.DocumentInput{
		URL:     "file://" + d.Path,
		Title:   d.Title,
		Kind:    domain.SourceKindWebpage,
		PartyID: partyID,
		Text:    d.Text,
	}
}

// Watch parses markdown files as they appear in dir and hands them to
// handle. It blocks until ctx is cancelled. Files are parsed on write
// completion events; editors that write via rename trigger a create.
func Watch(ctx context.Context, dir string, handle func(*Document)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	logger.Info("Watching %s for markdown files", dir)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
				continue
			}
			if !isMarkdown(event.Name) {
				continue
			}
			doc, err := Parse(event.Name)
			if err != nil {
				logger.Warn("Skipping %s: %v", event.Name, err)
				continue
			}
			handle(doc)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watcher error: %v", err)
		}
	}
}
