package report

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// driverName is the pure Go SQLite driver registered by modernc.org/sqlite.
const driverName = "sqlite"

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id          TEXT PRIMARY KEY,
	started_at  TEXT NOT NULL,
	finished_at TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS documents (
	run_id      TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
	seq         INTEGER NOT NULL,
	filename    TEXT NOT NULL,
	path        TEXT NOT NULL,
	fingerprint TEXT NOT NULL,
	status      TEXT NOT NULL,
	warnings    TEXT NOT NULL,
	passed      INTEGER NOT NULL,
	PRIMARY KEY (run_id, seq)
);
`

// Store persists validation runs to a SQLite database.
type Store struct {
	db *sql.DB
}

// OpenStore opens (creating if needed) the run database at path.
func OpenStore(path string) (*Store, error) {
	db, err := sql.Open(driverName, path)
	if err != nil {
		return nil, fmt.Errorf("open run database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create run schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save writes the run and all its document reports in one transaction.
func (s *Store) Save(run *Run) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO runs (id, started_at, finished_at) VALUES (?, ?, ?)`,
		run.ID,
		run.StartedAt.Format(time.RFC3339Nano),
		run.FinishedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert run %s: %w", run.ID, err)
	}

	for i, doc := range run.Documents {
		status, err := json.Marshal(doc.Status)
		if err != nil {
			return fmt.Errorf("encode status for %s: %w", doc.Filename, err)
		}
		warnings, err := json.Marshal(doc.Warnings)
		if err != nil {
			return fmt.Errorf("encode warnings for %s: %w", doc.Filename, err)
		}
		passed := 0
		if doc.Passed {
			passed = 1
		}
		_, err = tx.Exec(
			`INSERT INTO documents (run_id, seq, filename, path, fingerprint, status, warnings, passed)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			run.ID, i, doc.Filename, doc.Path, doc.Fingerprint, string(status), string(warnings), passed,
		)
		if err != nil {
			return fmt.Errorf("insert document %s: %w", doc.Filename, err)
		}
	}

	return tx.Commit()
}

// Load reads a run and its documents back by ID.
func (s *Store) Load(id string) (*Run, error) {
	run := &Run{ID: id}

	var started, finished string
	err := s.db.QueryRow(
		`SELECT started_at, finished_at FROM runs WHERE id = ?`, id,
	).Scan(&started, &finished)
	if err != nil {
		return nil, fmt.Errorf("load run %s: %w", id, err)
	}
	if run.StartedAt, err = time.Parse(time.RFC3339Nano, started); err != nil {
		return nil, fmt.Errorf("parse started_at for %s: %w", id, err)
	}
	if run.FinishedAt, err = time.Parse(time.RFC3339Nano, finished); err != nil {
		return nil, fmt.Errorf("parse finished_at for %s: %w", id, err)
	}

	rows, err := s.db.Query(
		`SELECT filename, path, fingerprint, status, warnings, passed
		 FROM documents WHERE run_id = ? ORDER BY seq`, id,
	)
	if err != nil {
		return nil, fmt.Errorf("load documents for %s: %w", id, err)
	}
	defer rows.Close()

	for rows.Next() {
		var doc DocumentReport
		var status, warnings string
		var passed int
		if err := rows.Scan(&doc.Filename, &doc.Path, &doc.Fingerprint, &status, &warnings, &passed); err != nil {
			return nil, fmt.Errorf("scan document for %s: %w", id, err)
		}
		if err := json.Unmarshal([]byte(status), &doc.Status); err != nil {
			return nil, fmt.Errorf("decode status for %s: %w", doc.Filename, err)
		}
		if err := json.Unmarshal([]byte(warnings), &doc.Warnings); err != nil {
			return nil, fmt.Errorf("decode warnings for %s: %w", doc.Filename, err)
		}
		doc.Passed = passed != 0
		run.Documents = append(run.Documents, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate documents for %s: %w", id, err)
	}

	return run, nil
}

// ListRuns returns the IDs of all stored runs, oldest first.
func (s *Store) ListRuns() ([]string, error) {
	rows, err := s.db.Query(`SELECT id FROM runs ORDER BY started_at`)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan run id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
