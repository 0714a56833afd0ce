package domain

import "time"

// TaskType scopes a task's progress to a reset period.
type TaskType string

const (
	TaskTypeDaily   TaskType = "daily"
	TaskTypeWeekly  TaskType = "weekly"
	TaskTypeMonthly TaskType = "monthly"
)

// Task is a static catalog definition.
type Task struct {
	ID            string   `db:"id" json:"id"`
	TaskType      TaskType `db:"task_type" json:"task_type"`
	TaskName      string   `db:"task_name" json:"task_name"`
	Description   string   `db:"description" json:"description"`
	RequiredCount int      `db:"required_count" json:"required_count"`
	RewardPoints  int64    `db:"reward_points" json:"reward_points"`
	IsActive      bool     `db:"is_active" json:"is_active"`
}

// UserTask is a per-user, per-period progress counter. Rows are keyed by
// ResetDate: a stale row from an earlier period is never reused.
type UserTask struct {
	ID        int64      `db:"id" json:"id"`
	UserID    int64      `db:"user_id" json:"user_id"`
	TaskID    string     `db:"task_id" json:"task_id"`
	Progress  int        `db:"progress" json:"progress"`
	IsClaimed bool       `db:"is_claimed" json:"is_claimed"`
	ClaimedAt *time.Time `db:"claimed_at" json:"claimed_at,omitempty"`
	ResetDate time.Time  `db:"reset_date" json:"reset_date"`
}

// CanClaim reports whether the task reward is claimable against the given
// catalog definition.
func (ut *UserTask) CanClaim(task *Task) bool {
	return ut.Progress >= task.RequiredCount && !ut.IsClaimed
}

// PeriodStart returns the UTC start of the current reset period. Boundaries
// are calendar-based: midnight UTC for daily, Monday for weekly, the first of
// the month for monthly.
func (t TaskType) PeriodStart(now time.Time) time.Time {
	now = now.UTC()
	switch t {
	case TaskTypeWeekly:
		weekday := int(now.Weekday())
		if weekday == 0 {
			weekday = 7
		}
		return time.Date(now.Year(), now.Month(), now.Day()-weekday+1, 0, 0, 0, 0, time.UTC)
	case TaskTypeMonthly:
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	default:
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	}
}
