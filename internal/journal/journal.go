package journal

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/lquispe/exam-renamer/constants"
)

// Entry is one recorded rename decision. The journal is an audit of
// what the tool did, not extraction state: analysis itself never reads
// from it.
type Entry struct {
	ID             uuid.UUID
	OriginalPath   string
	SuggestedName  string
	AppliedName    string
	IdentityNumber string
	Status         constants.JobStatus
	Notes          string
	CreatedAt      time.Time
}

// Store is a sqlite-backed journal of rename decisions.
type Store struct {
	db     *sql.DB
	logger *slog.Logger
}

const schema = `
CREATE TABLE IF NOT EXISTS rename_journal (
	id              TEXT PRIMARY KEY,
	original_path   TEXT NOT NULL,
	suggested_name  TEXT NOT NULL DEFAULT '',
	applied_name    TEXT NOT NULL DEFAULT '',
	identity_number TEXT NOT NULL DEFAULT '',
	status          TEXT NOT NULL,
	notes           TEXT NOT NULL DEFAULT '',
	created_at      TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_rename_journal_created_at ON rename_journal(created_at);
`

// Open opens (creating if needed) the journal database at path.
func Open(path string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init journal schema: %w", err)
	}
	return &Store{db: db, logger: logger}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Record inserts a new journal entry. A zero ID or CreatedAt is filled in.
func (s *Store) Record(ctx context.Context, e Entry) (Entry, error) {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO rename_journal
		 (id, original_path, suggested_name, applied_name, identity_number, status, notes, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID.String(), e.OriginalPath, e.SuggestedName, e.AppliedName,
		e.IdentityNumber, string(e.Status), e.Notes, e.CreatedAt,
	)
	if err != nil {
		return Entry{}, fmt.Errorf("record journal entry: %w", err)
	}
	return e, nil
}

// MarkRenamed records that the suggestion was applied on disk as appliedName.
func (s *Store) MarkRenamed(ctx context.Context, id uuid.UUID, appliedName string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE rename_journal SET status = ?, applied_name = ? WHERE id = ?`,
		string(constants.JobStatusRenamed), appliedName, id.String(),
	)
	if err != nil {
		return fmt.Errorf("mark renamed: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("mark renamed: entry %s not found", id)
	}
	return nil
}

// List returns the most recent entries, newest first.
func (s *Store) List(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, original_path, suggested_name, applied_name, identity_number, status, notes, created_at
		 FROM rename_journal ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list journal: %w", err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			s.logger.Warn("journal rows close failed", "error", cerr)
		}
	}()

	var out []Entry
	for rows.Next() {
		var e Entry
		var id, status string
		if err := rows.Scan(&id, &e.OriginalPath, &e.SuggestedName, &e.AppliedName,
			&e.IdentityNumber, &status, &e.Notes, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan journal entry: %w", err)
		}
		parsed, err := uuid.Parse(id)
		if err != nil {
			return nil, fmt.Errorf("parse journal id: %w", err)
		}
		e.ID = parsed
		e.Status = constants.JobStatus(status)
		out = append(out, e)
	}
	return out, rows.Err()
}
