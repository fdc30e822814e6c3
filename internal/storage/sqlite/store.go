package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"livechess/internal/ports"
)

const schema = `
CREATE TABLE IF NOT EXISTS board_snapshots (
    id INTEGER PRIMARY KEY CHECK (id = 1),
    state BLOB NOT NULL,
    checksum INTEGER NOT NULL,
    saved_at INTEGER NOT NULL
);
`

// Store implements ports.SnapshotStore over a single SQLite file. One row
// holds the latest serialized board; every save replaces it.
type Store struct {
	sqlDB *sql.DB
}

// Open opens (or creates) the snapshot database and applies the schema.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	dsn := filepath.Clean(path) + "?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	if _, err := sqlDB.Exec(schema); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &Store{sqlDB: sqlDB}, nil
}

// Close releases the underlying database.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Load returns the stored snapshot blob, with ok=false when none exists.
func (s *Store) Load(ctx context.Context) ([]byte, bool, error) {
	var blob []byte
	err := s.sqlDB.QueryRowContext(ctx, `SELECT state FROM board_snapshots WHERE id = 1`).Scan(&blob)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("load snapshot: %w", err)
	}
	return blob, true, nil
}

// Save upserts the snapshot row with the blob and its checksum.
func (s *Store) Save(ctx context.Context, blob []byte, checksum uint32) error {
	_, err := s.sqlDB.ExecContext(ctx, `
INSERT INTO board_snapshots (id, state, checksum, saved_at)
VALUES (1, ?, ?, ?)
ON CONFLICT (id) DO UPDATE SET state = excluded.state,
    checksum = excluded.checksum, saved_at = excluded.saved_at
`, blob, int64(checksum), time.Now().UTC().UnixMilli())
	if err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

var _ ports.SnapshotStore = (*Store)(nil)
