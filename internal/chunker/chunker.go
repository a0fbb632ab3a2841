// Package chunker splits document text into overlapping,
// boundary-aware chunks for embedding.
package chunker

import "strings"

// DefaultChunkSize is the default number of characters per chunk.
const DefaultChunkSize = 1000

// DefaultChunkOverlap is the default number of overlapping characters.
const DefaultChunkOverlap = 200

// boundaryWindow is how far around the naive cutoff Split searches for
// a sentence ending.
const boundaryWindow = 50

// Chunker splits text into chunks of up to a fixed size, preferring to
// cut at sentence endings, then word boundaries, then mid-word as a
// last resort. Consecutive chunks overlap by a fixed number of
// characters. Split is a pure function of its input.
type Chunker struct {
	size    int
	overlap int
}

// Option configures the chunker.
type Option func(*Chunker)

// WithChunkSize sets the chunk size in characters.
func WithChunkSize(size int) Option {
	return func(c *Chunker) {
		c.size = size
	}
}

// WithOverlap sets the overlap between chunks in characters.
func WithOverlap(overlap int) Option {
	return func(c *Chunker) {
		c.overlap = overlap
	}
}

// New creates a chunker with the given options. An overlap that is
// negative or not smaller than the chunk size is a configuration error:
// the window would never advance, so New fails fast instead of letting
// Split loop forever.
func New(opts ...Option) (*Chunker, error) {
	c := &Chunker{
		size:    DefaultChunkSize,
		overlap: DefaultChunkOverlap,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.size <= 0 {
		return nil, &ConfigError{Size: c.size, Overlap: c.overlap}
	}
	if c.overlap < 0 || c.overlap >= c.size {
		return nil, &ConfigError{Size: c.size, Overlap: c.overlap}
	}

	return c, nil
}

// Size returns the configured chunk size.
func (c *Chunker) Size() int { return c.size }

// Overlap returns the configured overlap.
func (c *Chunker) Overlap() int { return c.overlap }

// Split breaks text into overlapping chunks. Text that already fits in
// one chunk is returned as a single-element slice, even when empty.
func (c *Chunker) Split(text string) []string {
	if len(text) <= c.size {
		return []string{text}
	}

	chunks := make([]string, 0, len(text)/(c.size-c.overlap)+1)
	start := 0

	for start < len(text) {
		end := start + c.size

		if end < len(text) {
			end = c.adjustEnd(text, start, end)
		}

		stop := end
		if stop > len(text) {
			stop = len(text)
		}
		chunks = append(chunks, text[start:stop])

		if stop == len(text) {
			break
		}
		start = end - c.overlap
	}

	return chunks
}

// adjustEnd moves a non-final cutoff onto a friendlier boundary.
// Every adjusted end must leave the next start (end - overlap) past the
// current one; candidates that would stall the window are discarded.
func (c *Chunker) adjustEnd(text string, start, end int) int {
	minEnd := start + c.overlap + 1

	// Prefer a sentence ending near the cutoff.
	lo := end - boundaryWindow
	if lo <= start {
		lo = start + 1
	}
	hi := end + boundaryWindow
	if hi > len(text) {
		hi = len(text)
	}
	for i := lo; i+1 < hi; i++ {
		if isSentenceEnd(text[i]) && isSpace(text[i+1]) {
			// Cut right after the punctuation and space.
			if cut := i + 2; cut >= minEnd {
				return cut
			}
		}
	}

	// Fall back to the nearest word boundary at or before the cutoff.
	if space := strings.LastIndexByte(text[:end+1], ' '); space+1 >= minEnd {
		return space + 1
	}

	// Last resort: cut exactly at the naive boundary, mid-word.
	return end
}

func isSentenceEnd(b byte) bool {
	return b == '.' || b == '!' || b == '?'
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

// ConfigError reports an unusable size/overlap combination.
type ConfigError struct {
	Size    int
	Overlap int
}

func (e *ConfigError) Error() string {
	return "chunker: overlap must be non-negative and smaller than chunk size"
}
