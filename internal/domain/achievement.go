package domain

import "time"

// Achievement is a static catalog entry unlocked once per user.
type Achievement struct {
	ID           string `db:"id" json:"id"`
	Name         string `db:"name" json:"name"`
	Description  string `db:"description" json:"description"`
	Icon         string `db:"icon" json:"icon"`
	Category     string `db:"category" json:"category"`
	RewardPoints int64  `db:"reward_points" json:"reward_points"`
	Requirement  int64  `db:"requirement" json:"requirement"`
	IsActive     bool   `db:"is_active" json:"is_active"`
}

// UserAchievement marks an unlocked achievement.
type UserAchievement struct {
	UserID        int64     `db:"user_id" json:"user_id"`
	AchievementID string    `db:"achievement_id" json:"achievement_id"`
	UnlockedAt    time.Time `db:"unlocked_at" json:"unlocked_at"`
}
