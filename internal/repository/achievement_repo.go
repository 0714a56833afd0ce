package repository

import (
	"context"
	"errors"

	"github.com/Gbothemy/crypto-earning/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AchievementRepository struct {
	db *pgxpool.Pool
}

func NewAchievementRepository(db *pgxpool.Pool) *AchievementRepository {
	return &AchievementRepository{db: db}
}

func (r *AchievementRepository) ListActive(ctx context.Context) ([]domain.Achievement, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, name, description, icon, category, reward_points, requirement, is_active
		 FROM achievements WHERE is_active = true ORDER BY category, requirement`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []domain.Achievement
	for rows.Next() {
		var a domain.Achievement
		if err := rows.Scan(&a.ID, &a.Name, &a.Description, &a.Icon, &a.Category, &a.RewardPoints, &a.Requirement, &a.IsActive); err != nil {
			return nil, err
		}
		res = append(res, a)
	}
	return res, rows.Err()
}

func (r *AchievementRepository) GetUnlocked(ctx context.Context, userID int64) ([]domain.UserAchievement, error) {
	rows, err := r.db.Query(ctx,
		`SELECT user_id, achievement_id, unlocked_at
		 FROM user_achievements WHERE user_id = $1`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []domain.UserAchievement
	for rows.Next() {
		var ua domain.UserAchievement
		if err := rows.Scan(&ua.UserID, &ua.AchievementID, &ua.UnlockedAt); err != nil {
			return nil, err
		}
		res = append(res, ua)
	}
	return res, rows.Err()
}

var ErrAlreadyUnlocked = errors.New("achievement already unlocked")

// Unlock records the unlock exactly once; a second attempt reports
// ErrAlreadyUnlocked via the conflict-free insert.
func (r *AchievementRepository) Unlock(ctx context.Context, userID int64, achievementID string) (*domain.UserAchievement, error) {
	var ua domain.UserAchievement
	err := r.db.QueryRow(ctx,
		`INSERT INTO user_achievements (user_id, achievement_id)
		 VALUES ($1, $2)
		 ON CONFLICT (user_id, achievement_id) DO NOTHING
		 RETURNING user_id, achievement_id, unlocked_at`,
		userID, achievementID,
	).Scan(&ua.UserID, &ua.AchievementID, &ua.UnlockedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrAlreadyUnlocked
	}
	if err != nil {
		return nil, err
	}
	return &ua, nil
}
