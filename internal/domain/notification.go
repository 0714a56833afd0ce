package domain

import "time"

// Notification types
const (
	NotificationTypeWithdrawal  = "withdrawal"
	NotificationTypeAchievement = "achievement"
	NotificationTypeReward      = "reward"
	NotificationTypeSystem      = "system"
)

type Notification struct {
	ID               int64     `db:"id" json:"id"`
	UserID           int64     `db:"user_id" json:"user_id"`
	NotificationType string    `db:"notification_type" json:"notification_type"`
	Title            string    `db:"title" json:"title"`
	Message          string    `db:"message" json:"message"`
	Icon             string    `db:"icon" json:"icon,omitempty"`
	IsRead           bool      `db:"is_read" json:"is_read"`
	CreatedAt        time.Time `db:"created_at" json:"created_at"`
}
