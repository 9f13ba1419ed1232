// Package notificationservice manages the notification dispatcher: callers
// enqueue messages, a background worker delivers them. Delivery is
// at-least-once and strictly outside the ledger consistency domain.
package notificationservice

import (
	"context"

	"github.com/bezell-bank/ledger-core/internal/domain"
)

// Repo provides data access layer interface needed by notification service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package notificationservice
type Repo interface {
	Create(ctx context.Context, email, subject, content string) (domain.Notification, error)
	List(ctx context.Context, limit int32) ([]domain.Notification, error)
}

// Service facilitates notification service layer logic.
type Service struct {
	repo Repo
}

// New returns notification service struct to enqueue and list notifications.
func New(nr Repo) *Service {
	return &Service{
		repo: nr,
	}
}

// Enqueue persists a pending notification for asynchronous delivery.
func (s *Service) Enqueue(ctx context.Context, email, subject, content string) error {
	_, err := s.repo.Create(ctx, email, subject, content)
	return err
}

// List returns the most recent notifications.
func (s *Service) List(ctx context.Context, limit int32) ([]domain.Notification, error) {
	return s.repo.List(ctx, limit)
}
