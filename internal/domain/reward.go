package domain

import "time"

// DailyReward records one daily claim; at most one row per user per UTC day.
type DailyReward struct {
	ID           int64     `db:"id" json:"id"`
	UserID       int64     `db:"user_id" json:"user_id"`
	ClaimDate    time.Time `db:"claim_date" json:"claim_date"`
	PointsEarned int64     `db:"points_earned" json:"points_earned"`
	StreakDay    int       `db:"streak_day" json:"streak_day"`
}

// streakRewards maps a streak day to the points granted on that day. Days
// between milestones use the highest entry at or below day 7.
var streakRewards = []struct {
	Day    int
	Points int64
}{
	{1, 100}, {2, 150}, {3, 200}, {4, 250}, {5, 300}, {6, 400}, {7, 500},
	{14, 1000}, {30, 3000}, {100, 10000},
}

// StreakRewardPoints returns the daily reward for the given streak day.
// Milestone days (7, 14, 30, 100) pay their listed bonus; other days past a
// week pay the day-7 amount.
func StreakRewardPoints(day int) int64 {
	if day < 1 {
		day = 1
	}
	for _, r := range streakRewards {
		if r.Day == day {
			return r.Points
		}
	}
	return 500
}

// GamePlay counts plays of one mini-game on one UTC day.
type GamePlay struct {
	ID         int64     `db:"id" json:"id"`
	UserID     int64     `db:"user_id" json:"user_id"`
	GameType   string    `db:"game_type" json:"game_type"`
	PlayDate   time.Time `db:"play_date" json:"play_date"`
	PlaysCount int       `db:"plays_count" json:"plays_count"`
}
