package news

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Item is one entry in the provider-news feed on the home screen.
type Item struct {
	ID          uuid.UUID
	Title       string
	Source      string
	URL         string
	PublishedAt time.Time
}

// Repository abstracts feed persistence.
type Repository interface {
	List(ctx context.Context, limit int) ([]Item, error)
}
