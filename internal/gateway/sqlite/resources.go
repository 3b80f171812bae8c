package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/malezi/malezi/internal/apperr"
	"github.com/malezi/malezi/internal/models"
)

const resourceColumns = `id, title, description, file_type, category, tags, file_url, is_featured, download_count, created_by, created_at`

func scanResource(scan func(dest ...any) error) (models.Resource, error) {
	var r models.Resource
	var fileType, category, tagsJSON string
	var createdAt int64
	err := scan(&r.ID, &r.Title, &r.Description, &fileType, &category, &tagsJSON,
		&r.FileURL, &r.IsFeatured, &r.DownloadCount, &r.CreatedBy, &createdAt)
	if err != nil {
		return models.Resource{}, err
	}
	r.FileType = models.FileType(fileType)
	r.Category = models.Category(category)
	r.CreatedAt = fromNanos(createdAt)
	if err := json.Unmarshal([]byte(tagsJSON), &r.Tags); err != nil {
		r.Tags = nil
	}
	if r.Tags == nil {
		r.Tags = []string{}
	}
	return r, nil
}

// ListResources returns the catalog, featured items first, newest first
// within each group.
func (g *Gateway) ListResources(ctx context.Context) ([]models.Resource, error) {
	rows, err := g.conn.QueryContext(ctx, `
		SELECT `+resourceColumns+`
		FROM resources
		ORDER BY is_featured DESC, created_at DESC, rowid DESC
	`)
	if err != nil {
		return nil, apperr.Gateway("list resources", err)
	}
	defer rows.Close()

	var out []models.Resource
	for rows.Next() {
		r, err := scanResource(rows.Scan)
		if err != nil {
			return nil, apperr.Gateway("scan resource", err)
		}
		out = append(out, r)
	}
	return out, apperr.Gateway("list resources", rows.Err())
}

func (g *Gateway) GetResource(ctx context.Context, id string) (models.Resource, error) {
	row := g.conn.QueryRowContext(ctx, `SELECT `+resourceColumns+` FROM resources WHERE id = ?`, id)
	r, err := scanResource(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Resource{}, apperr.ErrNotFound
	}
	return r, apperr.Gateway("get resource", err)
}

func (g *Gateway) InsertResource(ctx context.Context, r models.Resource) error {
	tagsJSON, _ := json.Marshal(r.Tags)
	_, err := g.conn.ExecContext(ctx, `
		INSERT INTO resources (`+resourceColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, r.ID, r.Title, r.Description, string(r.FileType), string(r.Category), string(tagsJSON),
		r.FileURL, r.IsFeatured, r.DownloadCount, r.CreatedBy, nanos(r.CreatedAt))
	return apperr.Gateway("insert resource", err)
}

func (g *Gateway) SetDownloadCount(ctx context.Context, id string, count int) error {
	res, err := g.conn.ExecContext(ctx,
		`UPDATE resources SET download_count = ? WHERE id = ?`, count, id)
	if err != nil {
		return apperr.Gateway("set download count", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

func (g *Gateway) CountResources(ctx context.Context) (int, error) {
	var n int
	err := g.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM resources`).Scan(&n)
	return n, apperr.Gateway("count resources", err)
}
