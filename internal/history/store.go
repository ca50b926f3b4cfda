// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history persists a ledger of fetch outcomes in SQLite so batch
// runs can be audited after the fact.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"go.yaml.in/yaml/v3"

	"github.com/macromol/getpdb/pkg/types"
)

const dbFile = "history.db"

// Store manages the fetch history SQLite database.
type Store struct {
	db         *sql.DB
	maxResults int
}

// NewStore opens or creates the history database at
// cfg.HistoryDir/history.db, creating the schema if it does not exist.
func NewStore(cfg types.HistoryConfig) (*Store, error) {
	if err := os.MkdirAll(cfg.HistoryDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}

	dbPath := filepath.Join(cfg.HistoryDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 20
	}

	s := &Store{db: db, maxResults: maxResults}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS fetches (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			identifier TEXT NOT NULL,
			file_type TEXT NOT NULL,
			host TEXT,
			output_path TEXT,
			lines INTEGER,
			status TEXT NOT NULL,
			error TEXT,
			timestamp TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_fetches_identifier ON fetches(identifier)`,
		`CREATE INDEX IF NOT EXISTS idx_fetches_status ON fetches(status)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Append records one fetch outcome.
func (s *Store) Append(ctx context.Context, rec *types.FetchRecord) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO fetches (identifier, file_type, host, output_path, lines, status, error, timestamp)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.Identifier, rec.FileType, rec.Host, rec.OutputPath,
		rec.Lines, string(rec.Status), rec.Error,
		rec.Timestamp.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("inserting fetch record: %w", err)
	}
	return nil
}

// QueryOptions filters history queries. Zero values mean no filter.
type QueryOptions struct {
	Identifier string
	Host       string
	Status     string
	Limit      int
}

// Query returns fetch records matching opts, newest first.
func (s *Store) Query(ctx context.Context, opts QueryOptions) ([]types.FetchRecord, error) {
	var conditions []string
	var args []any

	if opts.Identifier != "" {
		conditions = append(conditions, "identifier = ?")
		args = append(args, opts.Identifier)
	}
	if opts.Host != "" {
		conditions = append(conditions, "host = ?")
		args = append(args, opts.Host)
	}
	if opts.Status != "" {
		conditions = append(conditions, "status = ?")
		args = append(args, opts.Status)
	}

	query := `SELECT identifier, file_type, host, output_path, lines, status, error, timestamp FROM fetches`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY rowid DESC"

	limit := opts.Limit
	if limit <= 0 {
		limit = s.maxResults
	}
	query += " LIMIT ?"
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	var records []types.FetchRecord
	for rows.Next() {
		var rec types.FetchRecord
		var status, timestamp string
		if err := rows.Scan(&rec.Identifier, &rec.FileType, &rec.Host,
			&rec.OutputPath, &rec.Lines, &status, &rec.Error, &timestamp); err != nil {
			return nil, fmt.Errorf("scanning fetch record: %w", err)
		}
		rec.Status = types.FetchStatus(status)
		if t, parseErr := time.Parse(time.RFC3339Nano, timestamp); parseErr == nil {
			rec.Timestamp = t
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// ExportYAML writes records matching opts to a YAML file at path.
func (s *Store) ExportYAML(ctx context.Context, path string, opts QueryOptions) error {
	records, err := s.Query(ctx, opts)
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(records)
	if err != nil {
		return fmt.Errorf("marshaling history: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
