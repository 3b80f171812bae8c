package sqlite

import (
	"context"

	"github.com/malezi/malezi/internal/apperr"
	"github.com/malezi/malezi/internal/models"
)

// ListChannels returns every channel, oldest first.
func (g *Gateway) ListChannels(ctx context.Context) ([]models.Channel, error) {
	rows, err := g.conn.QueryContext(ctx, `
		SELECT id, name, description, color, is_public, created_by, created_at
		FROM channels
		ORDER BY created_at ASC, rowid ASC
	`)
	if err != nil {
		return nil, apperr.Gateway("list channels", err)
	}
	defer rows.Close()

	var out []models.Channel
	for rows.Next() {
		var ch models.Channel
		var createdAt int64
		if err := rows.Scan(&ch.ID, &ch.Name, &ch.Description, &ch.Color, &ch.IsPublic, &ch.CreatedBy, &createdAt); err != nil {
			return nil, apperr.Gateway("scan channel", err)
		}
		ch.CreatedAt = fromNanos(createdAt)
		out = append(out, ch)
	}
	return out, apperr.Gateway("list channels", rows.Err())
}

func (g *Gateway) InsertChannel(ctx context.Context, ch models.Channel) error {
	_, err := g.conn.ExecContext(ctx, `
		INSERT INTO channels (id, name, description, color, is_public, created_by, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, ch.ID, ch.Name, ch.Description, ch.Color, ch.IsPublic, ch.CreatedBy, nanos(ch.CreatedAt))
	return apperr.Gateway("insert channel", err)
}

// DeleteChannel removes a channel; dependent topics and posts cascade.
func (g *Gateway) DeleteChannel(ctx context.Context, id string) error {
	res, err := g.conn.ExecContext(ctx, `DELETE FROM channels WHERE id = ?`, id)
	if err != nil {
		return apperr.Gateway("delete channel", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

func (g *Gateway) CountChannels(ctx context.Context) (int, error) {
	var n int
	err := g.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM channels`).Scan(&n)
	return n, apperr.Gateway("count channels", err)
}
