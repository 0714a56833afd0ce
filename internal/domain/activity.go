package domain

import "time"

// Activity types recorded in the append-only activity log.
const (
	ActivityConversion        = "conversion"
	ActivityWithdrawalRequest = "withdrawal_request"
	ActivityWithdrawalResolve = "withdrawal_resolve"
	ActivityTaskClaim         = "task_claim"
	ActivityAchievement       = "achievement_unlock"
	ActivityDailyClaim        = "daily_claim"
	ActivityGamePlay          = "game_play"
	ActivityAdminEdit         = "admin_edit"
)

// Activity is one audit trail entry.
type Activity struct {
	ID           int64     `db:"id" json:"id"`
	UserID       int64     `db:"user_id" json:"user_id"`
	ActivityType string    `db:"activity_type" json:"activity_type"`
	Description  string    `db:"description" json:"description"`
	PointsChange int64     `db:"points_change" json:"points_change"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}
