package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fibear/portal/pkg/news"
)

// NewsRepository implements news.Repository backed by PostgreSQL, seeded with
// the launch feed when empty.
type NewsRepository struct {
	pool *pgxpool.Pool
}

func NewNewsRepository(pool *pgxpool.Pool) (*NewsRepository, error) {
	r := &NewsRepository{pool: pool}
	if err := r.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	if err := r.seedIfEmpty(context.Background()); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *NewsRepository) ensureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS news_items (
	id UUID PRIMARY KEY,
	title TEXT NOT NULL,
	source TEXT NOT NULL,
	url TEXT NOT NULL,
	published_at TIMESTAMPTZ NOT NULL
);
`)
	return err
}

func (r *NewsRepository) seedIfEmpty(ctx context.Context) error {
	var count int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM news_items`).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	seed := []news.Item{
		{Title: "FiberX Expands Coverage Nationwide", Source: "TechDaily", URL: "https://techdaily.com/fiberx-expansion"},
		{Title: "New 1Gbps Plans Available Now", Source: "Global News", URL: "https://globalnews.com/1gbps"},
		{Title: "Top Tips for Maximizing Your Fiber Speed", Source: "NetExperts", URL: "https://netexperts.com/speed-tips"},
	}
	now := time.Now().UTC()
	for i, item := range seed {
		_, err := r.pool.Exec(ctx, `
INSERT INTO news_items (id, title, source, url, published_at)
VALUES ($1, $2, $3, $4, $5)
`, uuid.New(), item.Title, item.Source, item.URL, now.Add(-time.Duration(i)*time.Hour))
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *NewsRepository) List(ctx context.Context, limit int) ([]news.Item, error) {
	rows, err := r.pool.Query(ctx, `
SELECT id, title, source, url, published_at
FROM news_items
ORDER BY published_at DESC
LIMIT $1
`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []news.Item
	for rows.Next() {
		var it news.Item
		var published time.Time
		if err := rows.Scan(&it.ID, &it.Title, &it.Source, &it.URL, &published); err != nil {
			return nil, err
		}
		it.PublishedAt = published.UTC()
		res = append(res, it)
	}
	return res, rows.Err()
}
