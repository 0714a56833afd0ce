package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Gbothemy/crypto-earning/internal/domain"
	"github.com/Gbothemy/crypto-earning/internal/logger"
	"github.com/Gbothemy/crypto-earning/internal/repository"

	"github.com/jackc/pgx/v5/pgxpool"
)

// AchievementWithStatus pairs a catalog entry with the caller's unlock state.
type AchievementWithStatus struct {
	domain.Achievement
	Unlocked   bool   `json:"unlocked"`
	UnlockedAt string `json:"unlocked_at,omitempty"`
}

// AchievementService evaluates unlock conditions against user counters and
// pays out newly earned achievements.
type AchievementService struct {
	db               *pgxpool.Pool
	achievementRepo  *repository.AchievementRepository
	userRepo         *repository.UserRepository
	conversionRepo   *repository.ConversionRepository
	rewardRepo       *repository.RewardRepository
	notificationRepo *repository.NotificationRepository
	activityRepo     *repository.ActivityRepository
}

func NewAchievementService(db *pgxpool.Pool) *AchievementService {
	return &AchievementService{
		db:               db,
		achievementRepo:  repository.NewAchievementRepository(db),
		userRepo:         repository.NewUserRepository(db),
		conversionRepo:   repository.NewConversionRepository(db),
		rewardRepo:       repository.NewRewardRepository(db),
		notificationRepo: repository.NewNotificationRepository(db),
		activityRepo:     repository.NewActivityRepository(db),
	}
}

// List returns the catalog with the caller's unlock state merged in.
func (s *AchievementService) List(ctx context.Context, userID int64) ([]AchievementWithStatus, error) {
	catalog, err := s.achievementRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	unlocked, err := s.achievementRepo.GetUnlocked(ctx, userID)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]domain.UserAchievement, len(unlocked))
	for _, ua := range unlocked {
		byID[ua.AchievementID] = ua
	}

	out := make([]AchievementWithStatus, 0, len(catalog))
	for _, a := range catalog {
		item := AchievementWithStatus{Achievement: a}
		if ua, ok := byID[a.ID]; ok {
			item.Unlocked = true
			item.UnlockedAt = ua.UnlockedAt.Format("2006-01-02T15:04:05Z07:00")
		}
		out = append(out, item)
	}
	return out, nil
}

// counterFor maps an achievement category to the user counter it watches.
func (s *AchievementService) counterFor(ctx context.Context, user *domain.User, category string) (int64, error) {
	switch category {
	case "tasks":
		return int64(user.CompletedTasks), nil
	case "points":
		return user.Points, nil
	case "streak":
		return int64(user.DayStreak), nil
	case "level":
		return int64(user.VIPLevel), nil
	case "conversions":
		return s.conversionRepo.CountByUserID(ctx, user.ID)
	case "games":
		return s.rewardRepo.TotalGamePlays(ctx, user.ID)
	}
	return 0, nil
}

// CheckAndUnlock walks the catalog and unlocks every achievement whose
// requirement the user now meets. Each unlock grants its reward points once
// and creates a notification. Returns the newly unlocked achievements.
func (s *AchievementService) CheckAndUnlock(ctx context.Context, userID int64) ([]domain.Achievement, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	catalog, err := s.achievementRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	var unlocked []domain.Achievement
	for _, a := range catalog {
		counter, err := s.counterFor(ctx, user, a.Category)
		if err != nil {
			return unlocked, err
		}
		if counter < a.Requirement {
			continue
		}

		_, err = s.achievementRepo.Unlock(ctx, userID, a.ID)
		if errors.Is(err, repository.ErrAlreadyUnlocked) {
			continue
		}
		if err != nil {
			return unlocked, err
		}

		if a.RewardPoints > 0 {
			if _, err = s.userRepo.AddPoints(ctx, userID, a.RewardPoints); err != nil {
				return unlocked, err
			}
		}

		notification := &domain.Notification{
			UserID:           userID,
			NotificationType: domain.NotificationTypeAchievement,
			Title:            "Achievement unlocked",
			Message:          fmt.Sprintf("%s — %s (+%d points)", a.Name, a.Description, a.RewardPoints),
			Icon:             a.Icon,
		}
		if err := s.notificationRepo.Create(ctx, notification); err != nil {
			logger.Error("achievement notification failed", "user_id", userID, "achievement", a.ID, "error", err)
		}
		activity := &domain.Activity{
			UserID:       userID,
			ActivityType: domain.ActivityAchievement,
			Description:  "Unlocked achievement " + a.Name,
			PointsChange: a.RewardPoints,
		}
		if err := s.activityRepo.Create(ctx, activity); err != nil {
			logger.Error("achievement activity failed", "user_id", userID, "achievement", a.ID, "error", err)
		}

		logger.Info("achievement unlocked", "user_id", userID, "achievement", a.ID)
		unlocked = append(unlocked, a)
	}
	return unlocked, nil
}
