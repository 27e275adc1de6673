package store

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

// AddMessage stores msg with its embeds. ID and CreatedAt are filled in when
// empty. The channel must exist.
func (d *DB) AddMessage(ctx context.Context, msg Message) (Message, error) {
	if msg.ChannelID == "" {
		return Message{}, &ValidationError{Field: "channel id", Reason: "must not be empty"}
	}
	if msg.ID == "" {
		msg.ID = uuid.NewString()
	}
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now()
	}
	msg.CreatedAt = msg.CreatedAt.UTC().Truncate(time.Millisecond)

	tx, err := d.conn.BeginTx(ctx, nil)
	if err != nil {
		return Message{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var exists int
	err = tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM channels WHERE id = ?`, msg.ChannelID).Scan(&exists)
	if err != nil {
		return Message{}, fmt.Errorf("failed to check channel: %w", err)
	}
	if exists == 0 {
		return Message{}, fmt.Errorf("%w: %s", ErrChannelNotFound, msg.ChannelID)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO messages (id, channel_id, author, content, created_at) VALUES (?, ?, ?, ?, ?)`,
		msg.ID, msg.ChannelID, msg.Author, msg.Content, toMillis(msg.CreatedAt),
	)
	if err != nil {
		return Message{}, fmt.Errorf("failed to insert message: %w", err)
	}
	for i, e := range msg.Embeds {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO embeds (message_id, position, url, title) VALUES (?, ?, ?, ?)`,
			msg.ID, i, e.URL, e.Title,
		)
		if err != nil {
			return Message{}, fmt.Errorf("failed to insert embed: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return Message{}, fmt.Errorf("failed to commit message: %w", err)
	}
	return msg, nil
}

// Messages returns up to limit of the channel's most recent messages in
// posting order, oldest first. A limit of zero or less returns all of them.
func (d *DB) Messages(ctx context.Context, channelID string, limit int) ([]Message, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := d.conn.QueryContext(ctx,
		`SELECT id, channel_id, author, content, created_at FROM messages
		 WHERE channel_id = ? ORDER BY created_at DESC, rowid DESC LIMIT ?`,
		channelID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []Message
	index := map[string]int{}
	for rows.Next() {
		var m Message
		var created int64
		if err := rows.Scan(&m.ID, &m.ChannelID, &m.Author, &m.Content, &created); err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		m.CreatedAt = fromMillis(created)
		index[m.ID] = len(out)
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	_ = rows.Close()

	if err := d.loadEmbeds(ctx, out, index); err != nil {
		return nil, err
	}
	slices.Reverse(out)
	return out, nil
}

func (d *DB) loadEmbeds(ctx context.Context, msgs []Message, index map[string]int) error {
	if len(msgs) == 0 {
		return nil
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(msgs)), ",")
	args := make([]any, len(msgs))
	for i, m := range msgs {
		args[i] = m.ID
	}

	//nolint:gosec // G202: placeholders are literal "?" strings, values passed as args
	rows, err := d.conn.QueryContext(ctx,
		`SELECT message_id, url, title FROM embeds WHERE message_id IN (`+placeholders+`)
		 ORDER BY message_id, position`, args...)
	if err != nil {
		return fmt.Errorf("failed to list embeds: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var id string
		var e Embed
		if err := rows.Scan(&id, &e.URL, &e.Title); err != nil {
			return fmt.Errorf("failed to scan embed: %w", err)
		}
		i := index[id]
		msgs[i].Embeds = append(msgs[i].Embeds, e)
	}
	return rows.Err()
}
