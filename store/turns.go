package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// Turn is one conversation turn of the free-text assistant, scoped per chat.
type Turn struct {
	ChatID    int64     `db:"chat_id"`
	Role      string    `db:"role"`
	Content   string    `db:"content"`
	CreatedAt time.Time `db:"created_at"`
}

// Turns is the append-only per-chat conversation log.
type Turns struct {
	db *sqlx.DB
}

// NewTurns wraps the shared database handle.
func NewTurns(db *sqlx.DB) *Turns {
	return &Turns{db: db}
}

// Append records one turn. Role is "user" or "model".
func (s *Turns) Append(ctx context.Context, chatID int64, role, content string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO chat_history (chat_id, role, content, created_at) VALUES (?, ?, ?, ?)`,
		chatID, role, content, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("append turn chat %d: %w", chatID, err)
	}
	return nil
}

// Recent returns the last n turns for the chat in chronological order.
func (s *Turns) Recent(ctx context.Context, chatID int64, n int) ([]Turn, error) {
	if n <= 0 {
		return nil, nil
	}
	var turns []Turn
	err := s.db.SelectContext(ctx, &turns,
		`SELECT chat_id, role, content, created_at
		 FROM (
		   SELECT id, chat_id, role, content, created_at
		   FROM chat_history WHERE chat_id = ?
		   ORDER BY id DESC LIMIT ?
		 ) ORDER BY id ASC`,
		chatID, n)
	if err != nil {
		return nil, fmt.Errorf("recent turns chat %d: %w", chatID, err)
	}
	return turns, nil
}

// Purge removes all turns for the chat.
func (s *Turns) Purge(ctx context.Context, chatID int64) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM chat_history WHERE chat_id = ?`, chatID)
	if err != nil {
		return fmt.Errorf("purge turns chat %d: %w", chatID, err)
	}
	return nil
}
