package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/mapleline/policyscan/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/mapleline/policyscan/internal/core/domain"
	"github.com/mapleline/policyscan/internal/core/ports/driven"
	"github.com/mapleline/policyscan/internal/vector"
)

// Store is a unified SQLite-based storage that provides access to
// all storage port interfaces through wrapper types.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.policyscan/data/policyscan.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".policyscan", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "policyscan.db")

	// WAL mode for better concurrency between readers and the ingest writer.
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// PartyStore returns a PartyStore interface backed by this store.
func (s *Store) PartyStore() driven.PartyStore {
	return &partyStore{store: s}
}

// SourceStore returns a SourceStore interface backed by this store.
func (s *Store) SourceStore() driven.SourceStore {
	return &sourceStore{store: s}
}

// ChunkStore returns a ChunkStore interface backed by this store.
func (s *Store) ChunkStore() driven.ChunkStore {
	return &chunkStore{store: s}
}

// DocumentWriter returns a DocumentWriter interface backed by this store.
func (s *Store) DocumentWriter() driven.DocumentWriter {
	return &documentWriter{store: s}
}

// ProcessingLogStore returns a ProcessingLogStore interface backed by this store.
func (s *Store) ProcessingLogStore() driven.ProcessingLogStore {
	return &processingLogStore{store: s}
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_initial.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}

		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}

		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// isUniqueViolation reports whether the error is a SQLite UNIQUE
// constraint failure.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// ==================== Party Store ====================

// partyStore implements driven.PartyStore.
type partyStore struct {
	store *Store
}

var _ driven.PartyStore = (*partyStore)(nil)

const partyColumns = "id, name, abbreviation, created_at"

// List returns all parties ordered by name.
func (s *partyStore) List(ctx context.Context) ([]domain.Party, error) {
	rows, err := s.store.db.QueryContext(ctx,
		"SELECT "+partyColumns+" FROM parties ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("querying parties: %w", err)
	}
	defer rows.Close()

	var parties []domain.Party //nolint:prealloc // size unknown from query
	for rows.Next() {
		party, err := scanParty(rows)
		if err != nil {
			return nil, err
		}
		parties = append(parties, *party)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating parties: %w", err)
	}

	return parties, nil
}

// GetByName retrieves a party by exact name.
func (s *partyStore) GetByName(ctx context.Context, name string) (*domain.Party, error) {
	row := s.store.db.QueryRowContext(ctx,
		"SELECT "+partyColumns+" FROM parties WHERE name = ?", name)
	return scanParty(row)
}

// GetByAbbreviation retrieves a party by exact abbreviation.
func (s *partyStore) GetByAbbreviation(ctx context.Context, abbreviation string) (*domain.Party, error) {
	row := s.store.db.QueryRowContext(ctx,
		"SELECT "+partyColumns+" FROM parties WHERE abbreviation = ? COLLATE NOCASE", abbreviation)
	return scanParty(row)
}

// GetByID retrieves a party by database identifier.
func (s *partyStore) GetByID(ctx context.Context, id int64) (*domain.Party, error) {
	row := s.store.db.QueryRowContext(ctx,
		"SELECT "+partyColumns+" FROM parties WHERE id = ?", id)
	return scanParty(row)
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanParty(row scanner) (*domain.Party, error) {
	var party domain.Party
	var createdAt sql.NullTime
	if err := row.Scan(&party.ID, &party.Name, &party.Abbreviation, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning party: %w", err)
	}
	if createdAt.Valid {
		party.CreatedAt = createdAt.Time
	}
	return &party, nil
}

// ==================== Source Store ====================

// sourceStore implements driven.SourceStore.
type sourceStore struct {
	store *Store
}

var _ driven.SourceStore = (*sourceStore)(nil)

const sourceColumns = "id, party_id, title, kind, url, external_id, date_published, language, created_at"

// ExistsByURL reports whether a source with the given URL exists.
func (s *sourceStore) ExistsByURL(ctx context.Context, url string) (bool, error) {
	var count int
	err := s.store.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM sources WHERE url = ?", url).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("checking source url: %w", err)
	}
	return count > 0, nil
}

// GetByURL retrieves a source by URL.
func (s *sourceStore) GetByURL(ctx context.Context, url string) (*domain.Source, error) {
	row := s.store.db.QueryRowContext(ctx,
		"SELECT "+sourceColumns+" FROM sources WHERE url = ?", url)
	return scanSource(row)
}

// ListByParty returns a party's sources, newest publication first.
func (s *sourceStore) ListByParty(ctx context.Context, partyID int64) ([]domain.Source, error) {
	rows, err := s.store.db.QueryContext(ctx,
		"SELECT "+sourceColumns+" FROM sources WHERE party_id = ? ORDER BY date_published DESC, id DESC",
		partyID)
	if err != nil {
		return nil, fmt.Errorf("querying sources: %w", err)
	}
	defer rows.Close()

	var sources []domain.Source //nolint:prealloc // size unknown from query
	for rows.Next() {
		source, err := scanSource(rows)
		if err != nil {
			return nil, err
		}
		sources = append(sources, *source)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sources: %w", err)
	}

	return sources, nil
}

func scanSource(row scanner) (*domain.Source, error) {
	var source domain.Source
	var partyID sql.NullInt64
	var externalID, datePublished sql.NullString
	var createdAt sql.NullTime
	if err := row.Scan(&source.ID, &partyID, &source.Title, &source.Kind, &source.URL,
		&externalID, &datePublished, &source.Language, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning source: %w", err)
	}
	source.PartyID = partyID.Int64
	source.ExternalID = externalID.String
	source.DatePublished = datePublished.String
	if createdAt.Valid {
		source.CreatedAt = createdAt.Time
	}
	return &source, nil
}

// ==================== Chunk Store ====================

// chunkStore implements driven.ChunkStore.
type chunkStore struct {
	store *Store
}

var _ driven.ChunkStore = (*chunkStore)(nil)

// Candidates returns stored chunks matching the filters, with the
// display fields joined in. Rows come back in chunk ID order so
// ranking ties stay deterministic.
func (s *chunkStore) Candidates(ctx context.Context, filters driven.ChunkFilters) ([]driven.CandidateChunk, error) {
	query := `
		SELECT c.id, c.content_id, c.text, c.embedding,
			s.title, s.url, s.kind,
			COALESCE(p.name, ''), COALESCE(s.date_published, '')
		FROM chunks c
		JOIN content ct ON ct.id = c.content_id
		JOIN sources s ON s.id = ct.source_id
		LEFT JOIN parties p ON p.id = s.party_id
	`

	where, args := buildCandidateFilters(filters)
	if where != "" {
		query += " WHERE " + where
	}
	query += " ORDER BY c.id"

	rows, err := s.store.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying candidates: %w", err)
	}
	defer rows.Close()

	var candidates []driven.CandidateChunk //nolint:prealloc // size unknown from query
	for rows.Next() {
		var c driven.CandidateChunk
		if err := rows.Scan(&c.ChunkID, &c.ContentID, &c.Text, &c.Embedding,
			&c.Title, &c.URL, &c.SourceKind, &c.PartyName, &c.DatePublished); err != nil {
			return nil, fmt.Errorf("scanning candidate: %w", err)
		}
		candidates = append(candidates, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating candidates: %w", err)
	}

	return candidates, nil
}

// buildCandidateFilters renders non-zero filters as a WHERE clause.
func buildCandidateFilters(filters driven.ChunkFilters) (string, []any) {
	var clauses []string
	var args []any

	if len(filters.PartyIDs) > 0 {
		placeholders := make([]string, len(filters.PartyIDs))
		for i, id := range filters.PartyIDs {
			placeholders[i] = "?"
			args = append(args, id)
		}
		clauses = append(clauses, "s.party_id IN ("+strings.Join(placeholders, ", ")+")")
	}

	if len(filters.SourceKinds) > 0 {
		placeholders := make([]string, len(filters.SourceKinds))
		for i, kind := range filters.SourceKinds {
			placeholders[i] = "?"
			args = append(args, string(kind))
		}
		clauses = append(clauses, "s.kind IN ("+strings.Join(placeholders, ", ")+")")
	}

	// YYYY-MM-DD compares correctly as text.
	if filters.DateFrom != "" {
		clauses = append(clauses, "s.date_published >= ?")
		args = append(args, filters.DateFrom)
	}
	if filters.DateTo != "" {
		clauses = append(clauses, "s.date_published <= ?")
		args = append(args, filters.DateTo)
	}

	return strings.Join(clauses, " AND "), args
}

// ListByContent returns a content's chunks ordered by index.
// Embeddings are not hydrated.
func (s *chunkStore) ListByContent(ctx context.Context, contentID int64) ([]domain.Chunk, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, content_id, chunk_index, text, embedding_model
		FROM chunks WHERE content_id = ?
		ORDER BY chunk_index
	`, contentID)
	if err != nil {
		return nil, fmt.Errorf("querying chunks: %w", err)
	}
	defer rows.Close()

	var chunks []domain.Chunk //nolint:prealloc // size unknown from query
	for rows.Next() {
		var chunk domain.Chunk
		if err := rows.Scan(&chunk.ID, &chunk.ContentID, &chunk.Index,
			&chunk.Text, &chunk.EmbeddingModel); err != nil {
			return nil, fmt.Errorf("scanning chunk: %w", err)
		}
		chunks = append(chunks, chunk)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating chunks: %w", err)
	}

	return chunks, nil
}

// ==================== Document Writer ====================

// documentWriter implements driven.DocumentWriter.
type documentWriter struct {
	store *Store
}

var _ driven.DocumentWriter = (*documentWriter)(nil)

// SaveDocument stores the source, content, and chunks in a single
// transaction. A crash mid-batch leaves nothing behind.
func (s *documentWriter) SaveDocument(
	ctx context.Context, source domain.Source, content domain.Content, chunks []domain.Chunk,
) (int64, error) {
	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if source.CreatedAt.IsZero() {
		source.CreatedAt = time.Now().UTC()
	}

	res, err := tx.ExecContext(ctx, `
		INSERT INTO sources (party_id, title, kind, url, external_id, date_published, language, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, nullInt64(source.PartyID), source.Title, string(source.Kind), source.URL,
		nullString(source.ExternalID), nullString(source.DatePublished),
		defaultString(source.Language, "en"), source.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, domain.ErrAlreadyExists
		}
		return 0, fmt.Errorf("inserting source: %w", err)
	}

	sourceID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("source id: %w", err)
	}

	res, err = tx.ExecContext(ctx, `
		INSERT INTO content (source_id, text, metadata)
		VALUES (?, ?, ?)
	`, sourceID, content.Text, nullString(content.Metadata))
	if err != nil {
		return 0, fmt.Errorf("inserting content: %w", err)
	}

	contentID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("content id: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO chunks (content_id, chunk_index, text, embedding_model, embedding)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("preparing chunk insert: %w", err)
	}
	defer stmt.Close()

	for _, chunk := range chunks {
		if _, err := stmt.ExecContext(ctx, contentID, chunk.Index, chunk.Text,
			chunk.EmbeddingModel, vector.Encode(chunk.Embedding)); err != nil {
			return 0, fmt.Errorf("inserting chunk %d: %w", chunk.Index, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing document: %w", err)
	}

	return sourceID, nil
}

// ==================== Processing Log Store ====================

// processingLogStore implements driven.ProcessingLogStore.
type processingLogStore struct {
	store *Store
}

var _ driven.ProcessingLogStore = (*processingLogStore)(nil)

// Record upserts a processing record keyed by URL. An existing record
// keeps its ID; the row is only rewritten when the status changes.
func (s *processingLogStore) Record(ctx context.Context, rec domain.ProcessingRecord) (int64, error) {
	if rec.URL == "" {
		return 0, domain.ErrInvalidInput
	}

	var id int64
	var status string
	err := s.store.db.QueryRowContext(ctx,
		"SELECT id, status FROM processing_log WHERE url = ?", rec.URL).Scan(&id, &status)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		res, err := s.store.db.ExecContext(ctx, `
			INSERT INTO processing_log (source_kind, external_id, url, status, message)
			VALUES (?, ?, ?, ?, ?)
		`, string(rec.SourceKind), nullString(rec.ExternalID), rec.URL,
			string(rec.Status), nullString(rec.Message))
		if err != nil {
			if isUniqueViolation(err) {
				// Lost a race; fall back to the winner's row.
				return s.Record(ctx, rec)
			}
			return 0, fmt.Errorf("inserting processing record: %w", err)
		}
		return res.LastInsertId()

	case err != nil:
		return 0, fmt.Errorf("looking up processing record: %w", err)
	}

	if status == string(rec.Status) {
		return id, nil
	}

	_, err = s.store.db.ExecContext(ctx, `
		UPDATE processing_log
		SET source_kind = ?, external_id = ?, status = ?, message = ?, processed_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, string(rec.SourceKind), nullString(rec.ExternalID), string(rec.Status),
		nullString(rec.Message), id)
	if err != nil {
		return 0, fmt.Errorf("updating processing record: %w", err)
	}

	return id, nil
}

// Get retrieves the record for a URL.
func (s *processingLogStore) Get(ctx context.Context, url string) (*domain.ProcessingRecord, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, source_kind, external_id, url, status, message, processed_at
		FROM processing_log WHERE url = ?
	`, url)

	var rec domain.ProcessingRecord
	var sourceKind, status string
	var externalID, message sql.NullString
	var processedAt sql.NullTime
	if err := row.Scan(&rec.ID, &sourceKind, &externalID, &rec.URL,
		&status, &message, &processedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning processing record: %w", err)
	}

	rec.SourceKind = domain.SourceKind(sourceKind)
	rec.Status = domain.ProcessingStatus(status)
	rec.ExternalID = externalID.String
	rec.Message = message.String
	if processedAt.Valid {
		rec.ProcessedAt = processedAt.Time
	}

	return &rec, nil
}

// HasSucceeded reports whether the URL is marked success.
func (s *processingLogStore) HasSucceeded(ctx context.Context, url string) (bool, error) {
	var count int
	err := s.store.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM processing_log WHERE url = ? AND status = 'success'", url).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("checking processing log: %w", err)
	}
	return count > 0, nil
}

// ==================== Helper Functions ====================

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullInt64(n int64) sql.NullInt64 {
	return sql.NullInt64{Int64: n, Valid: n != 0}
}

func defaultString(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
