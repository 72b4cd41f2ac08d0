package news

import "context"

// UseCase serves the read-only news feed.
type UseCase interface {
	Latest(ctx context.Context, limit int) ([]Item, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) UseCase { return &service{repo: repo} }

func (s *service) Latest(ctx context.Context, limit int) ([]Item, error) {
	if limit <= 0 || limit > 50 {
		limit = 10
	}
	return s.repo.List(ctx, limit)
}
