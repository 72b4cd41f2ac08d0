package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fibear/portal/pkg/billing"
)

// StatementRepository implements billing.Repository backed by PostgreSQL.
// When the table is empty it seeds the demo statements the portal ships
// with, matching the figures shown by the mobile app.
type StatementRepository struct {
	pool *pgxpool.Pool
}

func NewStatementRepository(pool *pgxpool.Pool) (*StatementRepository, error) {
	r := &StatementRepository{pool: pool}
	if err := r.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	if err := r.seedIfEmpty(context.Background()); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *StatementRepository) ensureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS billing_statements (
	id UUID PRIMARY KEY,
	plan TEXT NOT NULL,
	cycle_day INT NOT NULL,
	amount_centavos BIGINT NOT NULL,
	currency TEXT NOT NULL,
	due_date DATE NOT NULL,
	status TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL
);
`)
	return err
}

func (r *StatementRepository) seedIfEmpty(ctx context.Context) error {
	var count int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM billing_statements`).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	seed := []billing.Statement{
		{Plan: "FiberX 500 Mbps", CycleDay: 15, AmountCentavos: 249900, Currency: "PHP",
			DueDate: time.Date(2025, time.March, 15, 0, 0, 0, 0, time.UTC), Status: billing.StatusDue},
		{Plan: "FiberX 500 Mbps", CycleDay: 15, AmountCentavos: 249900, Currency: "PHP",
			DueDate: time.Date(2025, time.February, 15, 0, 0, 0, 0, time.UTC), Status: billing.StatusPaid},
		{Plan: "FiberX 500 Mbps", CycleDay: 15, AmountCentavos: 249900, Currency: "PHP",
			DueDate: time.Date(2025, time.January, 15, 0, 0, 0, 0, time.UTC), Status: billing.StatusPaid},
	}
	for _, s := range seed {
		_, err := r.pool.Exec(ctx, `
INSERT INTO billing_statements (id, plan, cycle_day, amount_centavos, currency, due_date, status, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
`, uuid.New(), s.Plan, s.CycleDay, s.AmountCentavos, s.Currency, s.DueDate, string(s.Status), time.Now().UTC())
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *StatementRepository) CurrentDue(ctx context.Context) (billing.Statement, error) {
	row := r.pool.QueryRow(ctx, `
SELECT id, plan, cycle_day, amount_centavos, currency, due_date, status, created_at
FROM billing_statements
WHERE status = 'due'
ORDER BY due_date DESC
LIMIT 1
`)
	s, err := scanStatement(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return billing.Statement{}, billing.ErrNoOpenStatement
	}
	return s, err
}

func (r *StatementRepository) List(ctx context.Context, limit, offset int) ([]billing.Statement, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.pool.Query(ctx, `
SELECT id, plan, cycle_day, amount_centavos, currency, due_date, status, created_at
FROM billing_statements
ORDER BY due_date DESC
LIMIT $1 OFFSET $2
`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []billing.Statement
	for rows.Next() {
		s, err := scanStatement(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, s)
	}
	return res, rows.Err()
}

func scanStatement(row pgx.Row) (billing.Statement, error) {
	var s billing.Statement
	var status string
	var due, created time.Time
	if err := row.Scan(&s.ID, &s.Plan, &s.CycleDay, &s.AmountCentavos, &s.Currency, &due, &status, &created); err != nil {
		return billing.Statement{}, err
	}
	s.DueDate = due.UTC()
	s.CreatedAt = created.UTC()
	s.Status = billing.Status(status)
	return s, nil
}
