package support

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrEmptyMessage rejects blank submissions before they reach storage.
var ErrEmptyMessage = errors.New("support: message is empty")

// UseCase encapsulates ticket submission and listing.
type UseCase interface {
	Submit(ctx context.Context, userID, email, message string) (Ticket, error)
	ListForUser(ctx context.Context, userID string, limit, offset int) ([]Ticket, error)
}

type service struct {
	repo Repository
	log  *zap.Logger
}

func NewService(repo Repository, log *zap.Logger) UseCase {
	return &service{repo: repo, log: log}
}

func (s *service) Submit(ctx context.Context, userID, email, message string) (Ticket, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return Ticket{}, ErrEmptyMessage
	}
	t := Ticket{
		ID:        uuid.New(),
		UserID:    userID,
		Email:     email,
		Message:   message,
		Status:    StatusOpen,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, t); err != nil {
		return Ticket{}, err
	}
	s.log.Info("support ticket submitted",
		zap.String("ticket_id", t.ID.String()),
		zap.String("user_id", userID))
	return t, nil
}

func (s *service) ListForUser(ctx context.Context, userID string, limit, offset int) ([]Ticket, error) {
	return s.repo.ListForUser(ctx, userID, limit, offset)
}
