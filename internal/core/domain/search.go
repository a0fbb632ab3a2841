package domain

// Default retrieval parameters. The similarity floor and result limit
// mirror what worked for the corpus sizes this system targets.
const (
	DefaultSearchLimit   = 15
	DefaultMinSimilarity = 0.7
)

// SearchOptions configures a retrieval query.
type SearchOptions struct {
	// Limit is the maximum number of results (default DefaultSearchLimit).
	Limit int

	// MinSimilarity drops candidates scoring below this cosine similarity
	// (default DefaultMinSimilarity).
	MinSimilarity float64

	// PartyIDs restricts candidates to these parties when non-empty.
	PartyIDs []int64

	// SourceKinds restricts candidates to these kinds when non-empty.
	SourceKinds []SourceKind

	// DateFrom and DateTo bound the publication date (YYYY-MM-DD,
	// inclusive) when non-empty.
	DateFrom string
	DateTo   string
}

// Normalised returns a copy with defaults applied.
func (o SearchOptions) Normalised() SearchOptions {
	if o.Limit <= 0 {
		o.Limit = DefaultSearchLimit
	}
	if o.MinSimilarity == 0 {
		o.MinSimilarity = DefaultMinSimilarity
	}
	return o
}

// SearchResult is one scored chunk with the denormalised display fields
// needed to cite it.
type SearchResult struct {
	ChunkID       int64
	ContentID     int64
	ChunkText     string
	Similarity    float64
	Title         string
	URL           string
	SourceKind    SourceKind
	PartyName     string
	DatePublished string
}
