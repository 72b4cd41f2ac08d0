package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fibear/portal/pkg/support"
)

// TicketRepository implements support.Repository backed by PostgreSQL (pgx).
type TicketRepository struct {
	pool *pgxpool.Pool
}

func NewTicketRepository(pool *pgxpool.Pool) (*TicketRepository, error) {
	r := &TicketRepository{pool: pool}
	if err := r.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *TicketRepository) ensureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS support_tickets (
	id UUID PRIMARY KEY,
	user_id TEXT NOT NULL,
	email TEXT NOT NULL,
	message TEXT NOT NULL,
	status TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_support_tickets_user ON support_tickets(user_id);
`)
	return err
}

func (r *TicketRepository) Create(ctx context.Context, t support.Ticket) error {
	_, err := r.pool.Exec(ctx, `
INSERT INTO support_tickets (id, user_id, email, message, status, created_at)
VALUES ($1, $2, $3, $4, $5, $6)
`, t.ID, t.UserID, t.Email, t.Message, string(t.Status), t.CreatedAt)
	return err
}

func (r *TicketRepository) ListForUser(ctx context.Context, userID string, limit, offset int) ([]support.Ticket, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.pool.Query(ctx, `
SELECT id, user_id, email, message, status, created_at
FROM support_tickets
WHERE user_id = $1
ORDER BY created_at DESC
LIMIT $2 OFFSET $3
`, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []support.Ticket
	for rows.Next() {
		var t support.Ticket
		var status string
		var created time.Time
		if err := rows.Scan(&t.ID, &t.UserID, &t.Email, &t.Message, &status, &created); err != nil {
			return nil, err
		}
		t.Status = support.Status(status)
		t.CreatedAt = created.UTC()
		res = append(res, t)
	}
	return res, rows.Err()
}
