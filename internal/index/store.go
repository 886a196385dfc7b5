// Package index persists the document catalog of the most recent build in
// a SQLite database so `docsmith search` can answer queries without
// re-scanning the content tree.
package index

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaSQL string

// searchLimit caps Search results so a broad term cannot dump the whole index.
const searchLimit = 50

// Document is one indexed document row.
type Document struct {
	ID          string
	SourcePath  string
	Slug        string
	Title       string
	Description string
	Position    *float64
	BuildID     string
}

// Build is one recorded build.
type Build struct {
	ID            string
	CreatedAt     time.Time
	DocumentCount int
	ContentDir    string
}

// Store manages the SQLite document index.
type Store struct {
	db     *sql.DB
	dbPath string
}

// NewStore opens the index database at dbPath, creating the file and its
// parent directory if needed, and initializes the schema.
func NewStore(dbPath string) (*Store, error) {
	if dbPath == ":memory:" {
		return openAndInitStore(dbPath)
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create index directory: %w", err)
	}

	return openAndInitStore(dbPath)
}

// openAndInitStore opens the database connection and initializes the schema.
func openAndInitStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open index database: %w", err)
	}

	// busy_timeout must come first so the remaining pragmas wait on locks
	// instead of failing when another process is opening the same file.
	pragmas := []string{
		"PRAGMA busy_timeout=5000",
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
	}

	for _, pragma := range pragmas {
		if err := execWithRetry(db, pragma, 5, 10*time.Millisecond); err != nil {
			db.Close()
			return nil, fmt.Errorf("set %s: %w", pragma, err)
		}
	}

	store := &Store{
		db:     db,
		dbPath: dbPath,
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return store, nil
}

// execWithRetry executes a SQL statement with exponential backoff retry on
// "database is locked" errors, which occur when two processes initialize the
// same index file at once.
func execWithRetry(db *sql.DB, stmt string, maxRetries int, baseDelay time.Duration) error {
	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		_, err := db.Exec(stmt)
		if err == nil {
			return nil
		}

		if !strings.Contains(err.Error(), "database is locked") {
			return err
		}

		lastErr = err
		delay := baseDelay * time.Duration(1<<attempt)
		time.Sleep(delay)
	}
	return lastErr
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Path returns the database file path the store was opened with.
func (s *Store) Path() string {
	return s.dbPath
}

// tableExists checks if a table exists in the database.
func (s *Store) tableExists(tableName string) (bool, error) {
	var count int
	query := `SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?`
	err := s.db.QueryRow(query, tableName).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("check table existence: %w", err)
	}
	return count > 0, nil
}

// indexExists checks if an index exists in the database.
func (s *Store) indexExists(indexName string) (bool, error) {
	var count int
	query := `SELECT COUNT(*) FROM sqlite_master WHERE type='index' AND name=?`
	err := s.db.QueryRow(query, indexName).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("check index existence: %w", err)
	}
	return count > 0, nil
}

// ReplaceDocuments records a build and swaps the document table over to the
// build's documents in a single transaction. The documents table always
// describes exactly one build: the most recent one.
func (s *Store) ReplaceDocuments(ctx context.Context, buildID, contentDir string, docs []Document) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	buildQuery := `INSERT INTO builds (id, document_count, content_dir)
		VALUES (?, ?, ?)`
	if _, err := tx.ExecContext(ctx, buildQuery, buildID, len(docs), contentDir); err != nil {
		return fmt.Errorf("insert build: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM documents`); err != nil {
		return fmt.Errorf("clear documents: %w", err)
	}

	if len(docs) > 0 {
		stmt, err := tx.PrepareContext(ctx, `INSERT INTO documents
			(id, source_path, slug, title, description, position, build_id)
			VALUES (?, ?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return fmt.Errorf("prepare document statement: %w", err)
		}
		defer stmt.Close()

		for _, doc := range docs {
			var position sql.NullFloat64
			if doc.Position != nil {
				position = sql.NullFloat64{Float64: *doc.Position, Valid: true}
			}

			_, err := stmt.ExecContext(ctx, doc.ID, doc.SourcePath, doc.Slug,
				doc.Title, doc.Description, position, buildID)
			if err != nil {
				return fmt.Errorf("insert document %s: %w", doc.ID, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}

// Search returns documents whose ID, title, or description contains term,
// ordered by ID. SQLite LIKE matching is case-insensitive for ASCII.
// Results are capped at searchLimit.
func (s *Store) Search(ctx context.Context, term string) ([]Document, error) {
	pattern := "%" + term + "%"
	query := `SELECT id, source_path, slug, title, description, position, build_id
		FROM documents
		WHERE id LIKE ? OR title LIKE ? OR description LIKE ?
		ORDER BY id
		LIMIT ?`

	rows, err := s.db.QueryContext(ctx, query, pattern, pattern, pattern, searchLimit)
	if err != nil {
		return nil, fmt.Errorf("query documents: %w", err)
	}
	defer rows.Close()

	var docs []Document
	for rows.Next() {
		var doc Document
		var description sql.NullString
		var position sql.NullFloat64
		err := rows.Scan(
			&doc.ID,
			&doc.SourcePath,
			&doc.Slug,
			&doc.Title,
			&description,
			&position,
			&doc.BuildID,
		)
		if err != nil {
			return nil, fmt.Errorf("scan document row: %w", err)
		}

		if description.Valid {
			doc.Description = description.String
		}
		if position.Valid {
			p := position.Float64
			doc.Position = &p
		}

		docs = append(docs, doc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate document rows: %w", err)
	}

	return docs, nil
}

// LatestBuild returns the most recently recorded build.
// Returns (nil, nil) if no build has ever been recorded.
func (s *Store) LatestBuild(ctx context.Context) (*Build, error) {
	query := `SELECT id, created_at, document_count, content_dir
		FROM builds
		ORDER BY created_at DESC, rowid DESC
		LIMIT 1`

	row := s.db.QueryRowContext(ctx, query)

	build := &Build{}
	var contentDir sql.NullString
	err := row.Scan(&build.ID, &build.CreatedAt, &build.DocumentCount, &contentDir)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("query latest build: %w", err)
	}

	if contentDir.Valid {
		build.ContentDir = contentDir.String
	}

	return build, nil
}

// PruneBuilds removes build history beyond the keep most recent rows.
// keep <= 0 means keep everything. Returns the number of deleted rows.
func (s *Store) PruneBuilds(ctx context.Context, keep int) (int64, error) {
	if keep <= 0 {
		return 0, nil
	}

	query := `DELETE FROM builds WHERE id NOT IN (
		SELECT id FROM builds ORDER BY created_at DESC, rowid DESC LIMIT ?
	)`
	result, err := s.db.ExecContext(ctx, query, keep)
	if err != nil {
		return 0, fmt.Errorf("prune builds: %w", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("get rows affected: %w", err)
	}

	return deleted, nil
}

// BuildCount returns the number of builds currently recorded in the history.
func (s *Store) BuildCount(ctx context.Context) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM builds`
	err := s.db.QueryRowContext(ctx, query).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("query build count: %w", err)
	}
	return count, nil
}
