package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/malezi/malezi/internal/apperr"
	"github.com/malezi/malezi/internal/models"
)

const profileColumns = `user_id, email, full_name, bio, avatar_url, role, created_at`

func scanProfile(scan func(dest ...any) error) (models.Profile, error) {
	var p models.Profile
	var role string
	var createdAt int64
	if err := scan(&p.UserID, &p.Email, &p.FullName, &p.Bio, &p.AvatarURL, &role, &createdAt); err != nil {
		return models.Profile{}, err
	}
	// Normalise at the boundary: whatever the backend stored, internal
	// logic only sees the closed role set.
	p.Role = models.ParseRole(role)
	p.CreatedAt = fromNanos(createdAt)
	return p, nil
}

func (g *Gateway) GetProfile(ctx context.Context, userID string) (models.Profile, error) {
	row := g.conn.QueryRowContext(ctx, `SELECT `+profileColumns+` FROM profiles WHERE user_id = ?`, userID)
	p, err := scanProfile(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Profile{}, apperr.ErrNotFound
	}
	return p, apperr.Gateway("get profile", err)
}

// GetProfiles fetches the given user ids in a single query, keyed by user
// id. Ids with no profile row are absent from the result.
func (g *Gateway) GetProfiles(ctx context.Context, userIDs []string) (map[string]models.Profile, error) {
	out := make(map[string]models.Profile, len(userIDs))
	if len(userIDs) == 0 {
		return out, nil
	}
	args := make([]any, len(userIDs))
	for i, id := range userIDs {
		args[i] = id
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(userIDs)), ",")

	rows, err := g.conn.QueryContext(ctx,
		`SELECT `+profileColumns+` FROM profiles WHERE user_id IN (`+placeholders+`)`, args...)
	if err != nil {
		return nil, apperr.Gateway("get profiles", err)
	}
	defer rows.Close()

	for rows.Next() {
		p, err := scanProfile(rows.Scan)
		if err != nil {
			return nil, apperr.Gateway("scan profile", err)
		}
		out[p.UserID] = p
	}
	return out, apperr.Gateway("get profiles", rows.Err())
}

func (g *Gateway) InsertProfile(ctx context.Context, p models.Profile) error {
	_, err := g.conn.ExecContext(ctx, `
		INSERT INTO profiles (user_id, email, full_name, bio, avatar_url, role, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, p.UserID, p.Email, p.FullName, p.Bio, p.AvatarURL, string(p.Role), nanos(p.CreatedAt))
	return apperr.Gateway("insert profile", err)
}

func (g *Gateway) UpdateProfile(ctx context.Context, userID, fullName, bio string) error {
	res, err := g.conn.ExecContext(ctx,
		`UPDATE profiles SET full_name = ?, bio = ? WHERE user_id = ?`, fullName, bio, userID)
	if err != nil {
		return apperr.Gateway("update profile", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

func (g *Gateway) SetAvatarURL(ctx context.Context, userID, url string) error {
	res, err := g.conn.ExecContext(ctx,
		`UPDATE profiles SET avatar_url = ? WHERE user_id = ?`, url, userID)
	if err != nil {
		return apperr.Gateway("set avatar url", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

func (g *Gateway) CountProfiles(ctx context.Context) (int, error) {
	var n int
	err := g.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM profiles`).Scan(&n)
	return n, apperr.Gateway("count profiles", err)
}

// ResolveSession maps a bearer token to its user id.
func (g *Gateway) ResolveSession(ctx context.Context, token string) (string, error) {
	var userID string
	err := g.conn.QueryRowContext(ctx,
		`SELECT user_id FROM sessions WHERE token = ?`, token).Scan(&userID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", apperr.ErrNotFound
	}
	return userID, apperr.Gateway("resolve session", err)
}

func (g *Gateway) InsertSession(ctx context.Context, token, userID string) error {
	_, err := g.conn.ExecContext(ctx, `
		INSERT INTO sessions (token, user_id, created_at)
		VALUES (?, ?, ?)
		ON CONFLICT(token) DO UPDATE SET user_id = excluded.user_id
	`, token, userID, nanos(time.Now()))
	return apperr.Gateway("insert session", err)
}
