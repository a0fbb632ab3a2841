package domain

// ChatOptions carries the filter hints a chat consumer supplies
// alongside a question.
type ChatOptions struct {
	// CompareParties asks the assistant to contrast party positions.
	CompareParties bool

	// Parties restricts retrieval to parties matching these hints
	// (name substrings or abbreviations, case-insensitive).
	Parties []string

	// Limit and MinSimilarity override the retrieval defaults when set.
	Limit         int
	MinSimilarity float64
}
