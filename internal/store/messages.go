package store

import (
	"context"
	"fmt"
	"time"

	"github.com/mazichukwuka/portfolio/internal/contact"
)

// StoredMessage is an inbox entry.
type StoredMessage struct {
	ID int64 `json:"id"`
	contact.Message
	Read bool `json:"read"`
}

// SaveMessage stores m and returns its id. It satisfies contact.Inbox.
func (s *Store) SaveMessage(ctx context.Context, m contact.Message) (int64, error) {
	if m.Received.IsZero() {
		m.Received = time.Now()
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO contact_messages (name, email, subject, body, received) VALUES (?, ?, ?, ?, ?)`,
		m.Name, m.Email, m.Subject, m.Body, m.Received.Unix())
	if err != nil {
		return 0, fmt.Errorf("saving message: %w", err)
	}
	return res.LastInsertId()
}

// Messages lists the inbox, newest first.
func (s *Store) Messages(ctx context.Context, limit int) ([]StoredMessage, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, email, subject, body, received, read
		FROM contact_messages
		ORDER BY received DESC, id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing messages: %w", err)
	}
	defer rows.Close()

	var out []StoredMessage
	for rows.Next() {
		var m StoredMessage
		var received int64
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Subject, &m.Body, &received, &m.Read); err != nil {
			return nil, fmt.Errorf("scanning message: %w", err)
		}
		m.Received = time.Unix(received, 0).UTC()
		out = append(out, m)
	}
	return out, rows.Err()
}

func (s *Store) MarkRead(ctx context.Context, id int64) error {
	return s.affectOne(ctx, `UPDATE contact_messages SET read = 1 WHERE id = ?`, id)
}

func (s *Store) DeleteMessage(ctx context.Context, id int64) error {
	return s.affectOne(ctx, `DELETE FROM contact_messages WHERE id = ?`, id)
}

func (s *Store) affectOne(ctx context.Context, query string, id int64) error {
	res, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("message %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("message %d: %w", id, ErrNotFound)
	}
	return nil
}
