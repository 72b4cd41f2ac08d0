package support

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Ticket is a technical-support request submitted from the support screen.
type Ticket struct {
	ID        uuid.UUID
	UserID    string // identity provider UID of the subscriber
	Email     string
	Message   string
	Status    Status
	CreatedAt time.Time
}

type Status string

const (
	StatusOpen     Status = "open"
	StatusResolved Status = "resolved"
)

// Repository abstracts ticket persistence from the domain layer.
type Repository interface {
	Create(ctx context.Context, t Ticket) error
	ListForUser(ctx context.Context, userID string, limit, offset int) ([]Ticket, error)
}
