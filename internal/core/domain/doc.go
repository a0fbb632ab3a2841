// Package domain defines the core business entities for policyscan.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Party: A political party that sources are attributed to
//   - Source: One ingested document (video, article, or webpage)
//   - Content: The extracted full text body of a source
//   - Chunk: An embedded slice of a content's text
//   - ProcessingRecord: Idempotency ledger entry for ingestion
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
