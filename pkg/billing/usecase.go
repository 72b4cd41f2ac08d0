package billing

import "context"

// UseCase exposes the read-only billing views the portal renders. Payment
// execution and plan changes stay with the provider's back office.
type UseCase interface {
	// Current returns the latest unpaid statement.
	Current(ctx context.Context) (Statement, error)
	// History returns statements newest first.
	History(ctx context.Context, limit, offset int) ([]Statement, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) UseCase { return &service{repo: repo} }

func (s *service) Current(ctx context.Context) (Statement, error) {
	return s.repo.CurrentDue(ctx)
}

func (s *service) History(ctx context.Context, limit, offset int) ([]Statement, error) {
	return s.repo.List(ctx, limit, offset)
}
