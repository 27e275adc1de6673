package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// CreateChannel inserts a channel. The name must be unique and non-blank.
func (d *DB) CreateChannel(ctx context.Context, name, topic string) (Channel, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Channel{}, &ValidationError{Field: "channel name", Reason: "must not be blank"}
	}

	ch := Channel{
		ID:        uuid.NewString(),
		Name:      name,
		Topic:     strings.TrimSpace(topic),
		CreatedAt: time.Now().UTC().Truncate(time.Millisecond),
	}
	_, err := d.conn.ExecContext(ctx,
		`INSERT INTO channels (id, name, topic, created_at) VALUES (?, ?, ?, ?)`,
		ch.ID, ch.Name, ch.Topic, toMillis(ch.CreatedAt),
	)
	if err != nil {
		return Channel{}, fmt.Errorf("failed to insert channel: %w", err)
	}
	return ch, nil
}

// Channels lists channels ordered by name.
func (d *DB) Channels(ctx context.Context) ([]Channel, error) {
	rows, err := d.conn.QueryContext(ctx,
		`SELECT id, name, topic, created_at FROM channels ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list channels: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []Channel
	for rows.Next() {
		ch, err := scanChannel(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan channel: %w", err)
		}
		out = append(out, ch)
	}
	return out, rows.Err()
}

// Channel looks a channel up by id, then by name.
func (d *DB) Channel(ctx context.Context, idOrName string) (Channel, error) {
	row := d.conn.QueryRowContext(ctx,
		`SELECT id, name, topic, created_at FROM channels WHERE id = ? OR name = ?
		 ORDER BY id = ? DESC LIMIT 1`,
		idOrName, idOrName, idOrName,
	)
	ch, err := scanChannel(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Channel{}, fmt.Errorf("%w: %s", ErrChannelNotFound, idOrName)
	}
	if err != nil {
		return Channel{}, fmt.Errorf("failed to find channel: %w", err)
	}
	return ch, nil
}

func scanChannel(scanner interface{ Scan(...any) error }) (Channel, error) {
	var ch Channel
	var created int64
	if err := scanner.Scan(&ch.ID, &ch.Name, &ch.Topic, &created); err != nil {
		return Channel{}, err
	}
	ch.CreatedAt = fromMillis(created)
	return ch, nil
}
