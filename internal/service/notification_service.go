package service

import (
	"context"
	"errors"

	"github.com/Gbothemy/crypto-earning/internal/domain"
	"github.com/Gbothemy/crypto-earning/internal/repository"

	"github.com/jackc/pgx/v5/pgxpool"
)

// NotificationService exposes the per-user notification inbox.
type NotificationService struct {
	notificationRepo *repository.NotificationRepository
	activityRepo     *repository.ActivityRepository
}

func NewNotificationService(db *pgxpool.Pool) *NotificationService {
	return &NotificationService{
		notificationRepo: repository.NewNotificationRepository(db),
		activityRepo:     repository.NewActivityRepository(db),
	}
}

func (s *NotificationService) List(ctx context.Context, userID int64, unreadOnly bool) ([]domain.Notification, error) {
	return s.notificationRepo.GetByUserID(ctx, userID, unreadOnly)
}

func (s *NotificationService) MarkRead(ctx context.Context, id, userID int64) error {
	err := s.notificationRepo.MarkRead(ctx, id, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotFound
	}
	return err
}

func (s *NotificationService) Delete(ctx context.Context, id, userID int64) error {
	err := s.notificationRepo.Delete(ctx, id, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotFound
	}
	return err
}

func (s *NotificationService) UnreadCount(ctx context.Context, userID int64) (int, error) {
	return s.notificationRepo.CountForUser(ctx, userID, false)
}

// RecentActivity returns the newest audit trail entries for the user.
func (s *NotificationService) RecentActivity(ctx context.Context, userID int64, limit int) ([]domain.Activity, error) {
	return s.activityRepo.GetByUserID(ctx, userID, limit)
}
