// Package store persists user records and conversation turns in SQLite.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"

	"emobots/core/logger"
	"emobots/emocheck/profile"
)

// Records stores one JSON document per user. Reads lazily create the
// default record; writes overwrite the whole document.
type Records struct {
	db *sqlx.DB
}

// NewRecords wraps the shared database handle.
func NewRecords(db *sqlx.DB) *Records {
	return &Records{db: db}
}

// Load returns the user's record, creating (but not persisting) a default
// one when the user is unknown.
func (s *Records) Load(ctx context.Context, userID int64) (*profile.Record, error) {
	var raw []byte
	err := s.db.GetContext(ctx, &raw,
		`SELECT record FROM user_records WHERE user_id = ?`, userID)
	if errors.Is(err, sql.ErrNoRows) {
		logger.Debug(ctx, "store", "record.create",
			slog.Int64("user_id", userID),
		)
		return profile.NewRecord(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("load record %d: %w", userID, err)
	}

	var rec profile.Record
	if err := json.Unmarshal(raw, &rec); err != nil {
		// A corrupt document should not lock the user out forever.
		logger.Error(ctx, "store", "record.corrupt",
			slog.Int64("user_id", userID),
			slog.String("err", err.Error()),
		)
		return profile.NewRecord(), nil
	}
	rec.Session = rec.Session.Normalize()
	return &rec, nil
}

// Save overwrites the user's record document.
func (s *Records) Save(ctx context.Context, userID int64, rec *profile.Record) error {
	raw, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal record %d: %w", userID, err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO user_records (user_id, record, updated_at)
		 VALUES (?, ?, ?)
		 ON CONFLICT(user_id) DO UPDATE SET record = excluded.record, updated_at = excluded.updated_at`,
		userID, raw, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("save record %d: %w", userID, err)
	}
	return nil
}

// Reset deletes the user's record so the next load starts fresh.
func (s *Records) Reset(ctx context.Context, userID int64) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM user_records WHERE user_id = ?`, userID)
	if err != nil {
		return fmt.Errorf("reset record %d: %w", userID, err)
	}
	return nil
}

// Count returns the number of known users.
func (s *Records) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM user_records`); err != nil {
		return 0, fmt.Errorf("count records: %w", err)
	}
	return n, nil
}

// EntryCount returns the total number of journal entries across all users,
// summed over the stored documents with the JSON1 extension.
func (s *Records) EntryCount(ctx context.Context) (int, error) {
	var n int
	err := s.db.GetContext(ctx, &n,
		`SELECT COALESCE(SUM(json_array_length(record, '$.history')), 0) FROM user_records`)
	if err != nil {
		return 0, fmt.Errorf("count entries: %w", err)
	}
	return n, nil
}
