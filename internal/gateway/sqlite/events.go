package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/malezi/malezi/internal/apperr"
	"github.com/malezi/malezi/internal/models"
)

const eventColumns = `id, title, description, event_type, location, start_date, end_date, max_participants, current_participants, created_by, created_at`

func scanEvent(scan func(dest ...any) error) (models.Event, error) {
	var ev models.Event
	var start, end, createdAt int64
	err := scan(&ev.ID, &ev.Title, &ev.Description, &ev.EventType, &ev.Location,
		&start, &end, &ev.MaxParticipants, &ev.CurrentParticipants, &ev.CreatedBy, &createdAt)
	if err != nil {
		return models.Event{}, err
	}
	ev.StartDate = fromNanos(start)
	ev.EndDate = fromNanos(end)
	ev.CreatedAt = fromNanos(createdAt)
	return ev, nil
}

// ListEvents returns events ordered by start date, most recent first.
func (g *Gateway) ListEvents(ctx context.Context) ([]models.Event, error) {
	rows, err := g.conn.QueryContext(ctx, `
		SELECT `+eventColumns+` FROM events ORDER BY start_date DESC, rowid DESC
	`)
	if err != nil {
		return nil, apperr.Gateway("list events", err)
	}
	defer rows.Close()

	var out []models.Event
	for rows.Next() {
		ev, err := scanEvent(rows.Scan)
		if err != nil {
			return nil, apperr.Gateway("scan event", err)
		}
		out = append(out, ev)
	}
	return out, apperr.Gateway("list events", rows.Err())
}

func (g *Gateway) GetEvent(ctx context.Context, id string) (models.Event, error) {
	row := g.conn.QueryRowContext(ctx, `SELECT `+eventColumns+` FROM events WHERE id = ?`, id)
	ev, err := scanEvent(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Event{}, apperr.ErrNotFound
	}
	return ev, apperr.Gateway("get event", err)
}

func (g *Gateway) InsertEvent(ctx context.Context, ev models.Event) error {
	_, err := g.conn.ExecContext(ctx, `
		INSERT INTO events (`+eventColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, ev.ID, ev.Title, ev.Description, ev.EventType, ev.Location,
		nanos(ev.StartDate), nanos(ev.EndDate), ev.MaxParticipants, ev.CurrentParticipants,
		ev.CreatedBy, nanos(ev.CreatedAt))
	return apperr.Gateway("insert event", err)
}

// DeleteEvent removes an event; registrations cascade.
func (g *Gateway) DeleteEvent(ctx context.Context, id string) error {
	res, err := g.conn.ExecContext(ctx, `DELETE FROM events WHERE id = ?`, id)
	if err != nil {
		return apperr.Gateway("delete event", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

func (g *Gateway) SetParticipantCount(ctx context.Context, id string, count int) error {
	res, err := g.conn.ExecContext(ctx,
		`UPDATE events SET current_participants = ? WHERE id = ?`, count, id)
	if err != nil {
		return apperr.Gateway("set participant count", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

func (g *Gateway) CountEvents(ctx context.Context) (int, error) {
	var n int
	err := g.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM events`).Scan(&n)
	return n, apperr.Gateway("count events", err)
}

func (g *Gateway) GetRegistration(ctx context.Context, eventID, userID string) (models.EventRegistration, error) {
	var reg models.EventRegistration
	var createdAt int64
	err := g.conn.QueryRowContext(ctx, `
		SELECT id, event_id, user_id, created_at
		FROM event_registrations
		WHERE event_id = ? AND user_id = ?
	`, eventID, userID).Scan(&reg.ID, &reg.EventID, &reg.UserID, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.EventRegistration{}, apperr.ErrNotFound
	}
	if err != nil {
		return models.EventRegistration{}, apperr.Gateway("get registration", err)
	}
	reg.CreatedAt = fromNanos(createdAt)
	return reg, nil
}

func (g *Gateway) InsertRegistration(ctx context.Context, reg models.EventRegistration) error {
	_, err := g.conn.ExecContext(ctx, `
		INSERT INTO event_registrations (id, event_id, user_id, created_at)
		VALUES (?, ?, ?, ?)
	`, reg.ID, reg.EventID, reg.UserID, nanos(reg.CreatedAt))
	return apperr.Gateway("insert registration", err)
}

func (g *Gateway) DeleteRegistration(ctx context.Context, eventID, userID string) error {
	res, err := g.conn.ExecContext(ctx,
		`DELETE FROM event_registrations WHERE event_id = ? AND user_id = ?`, eventID, userID)
	if err != nil {
		return apperr.Gateway("delete registration", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.ErrNotFound
	}
	return nil
}
