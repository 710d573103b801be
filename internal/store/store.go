package store

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// Store is the SQLite data access layer for built datasets and prediction
// reports.
type Store struct {
	db *sql.DB
}

// NewStore opens a SQLite database at dbPath with WAL mode enabled.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=30000")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying *sql.DB for use in transactions.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Migrate creates all tables and indexes. Idempotent.
func (s *Store) Migrate() error {
	_, err := s.db.Exec(schemaDDL)
	if err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

const schemaDDL = `
CREATE TABLE IF NOT EXISTS datasets (
  id                  INTEGER PRIMARY KEY,
  partition           TEXT NOT NULL UNIQUE,
  mode                TEXT NOT NULL,
  sentence_count      INTEGER NOT NULL,
  corrected_sentences INTEGER NOT NULL DEFAULT 0,
  created_at          TIMESTAMP
);

CREATE TABLE IF NOT EXISTS feature_rows (
  id              INTEGER PRIMARY KEY,
  dataset_id      INTEGER NOT NULL REFERENCES datasets(id),
  ordinal         INTEGER NOT NULL,
  det_embedding   REAL NOT NULL,
  noun_embedding  REAL NOT NULL,
  distance        REAL NOT NULL,
  histogram       TEXT NOT NULL,
  label           INTEGER
);

CREATE TABLE IF NOT EXISTS predictions (
  id              INTEGER PRIMARY KEY,
  dataset_id      INTEGER NOT NULL REFERENCES datasets(id),
  sentence_index  INTEGER NOT NULL,
  site_index      INTEGER NOT NULL,
  class           INTEGER NOT NULL,
  confidence      REAL NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_feature_rows_dataset ON feature_rows(dataset_id, ordinal);
CREATE INDEX IF NOT EXISTS idx_predictions_dataset ON predictions(dataset_id, sentence_index, site_index);
`

// DeletePartition transactionally removes a partition's dataset record,
// feature rows, labels, and predictions. A missing partition is not an
// error.
func (s *Store) DeletePartition(partition string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := deletePartitionTx(tx, partition); err != nil {
		return err
	}
	return tx.Commit()
}

func deletePartitionTx(tx *sql.Tx, partition string) error {
	var id int64
	err := tx.QueryRow("SELECT id FROM datasets WHERE partition = ?", partition).Scan(&id)
	if err == sql.ErrNoRows {
		return nil
	}
	if err != nil {
		return fmt.Errorf("lookup dataset: %w", err)
	}

	for _, q := range []string{
		"DELETE FROM predictions WHERE dataset_id = ?",
		"DELETE FROM feature_rows WHERE dataset_id = ?",
		"DELETE FROM datasets WHERE id = ?",
	} {
		if _, err := tx.Exec(q, id); err != nil {
			return fmt.Errorf("delete partition data: %w", err)
		}
	}
	return nil
}
