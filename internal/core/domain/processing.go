package domain

import "time"

// ProcessingStatus is the outcome recorded for one ingestion attempt.
type ProcessingStatus string

// Processing statuses.
const (
	ProcessingPending ProcessingStatus = "pending"
	ProcessingSuccess ProcessingStatus = "success"
	ProcessingError   ProcessingStatus = "error"
)

// ProcessingRecord is the idempotency ledger entry keyed by URL.
// A URL already marked success is skipped on subsequent runs, which
// makes ingestion safely re-runnable.
type ProcessingRecord struct {
	// ID is the database identifier.
	ID int64

	// SourceKind tags the kind of ingestion that produced the record.
	SourceKind SourceKind

	// ExternalID is the platform-specific identifier, or the URL itself
	// when the source has no separate identifier.
	ExternalID string

	// URL is the ledger key.
	URL string

	// Status is pending, success, or error.
	Status ProcessingStatus

	// Message holds the failure reason for error records.
	Message string

	// ProcessedAt is when the record was last written. Records are only
	// rewritten when the status actually changes, so the timestamp stays
	// meaningful.
	ProcessedAt time.Time
}
