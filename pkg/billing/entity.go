package billing

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Statement is one billing-cycle statement for the subscriber's plan.
// Amounts are stored in centavos to avoid float arithmetic.
type Statement struct {
	ID             uuid.UUID
	Plan           string
	CycleDay       int // day of month the cycle closes
	AmountCentavos int64
	Currency       string
	DueDate        time.Time
	Status         Status
	CreatedAt      time.Time
}

type Status string

const (
	StatusDue  Status = "due"
	StatusPaid Status = "paid"
)

// ErrNoOpenStatement is returned when no unpaid statement exists.
var ErrNoOpenStatement = errors.New("billing: no open statement")

// Repository abstracts statement persistence.
type Repository interface {
	CurrentDue(ctx context.Context) (Statement, error)
	List(ctx context.Context, limit, offset int) ([]Statement, error)
}
