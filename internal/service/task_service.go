package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Gbothemy/crypto-earning/internal/domain"
	"github.com/Gbothemy/crypto-earning/internal/logger"
	"github.com/Gbothemy/crypto-earning/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// expPerTaskClaim is the experience granted for every claimed task reward.
const expPerTaskClaim = 50

// TaskWithProgress pairs a catalog task with the caller's progress in the
// current period.
type TaskWithProgress struct {
	domain.Task
	Progress  int        `json:"progress"`
	IsClaimed bool       `json:"is_claimed"`
	ClaimedAt *time.Time `json:"claimed_at,omitempty"`
	ResetDate time.Time  `json:"reset_date"`
}

// TaskService tracks period-scoped task progress and pays out claims.
type TaskService struct {
	db           *pgxpool.Pool
	taskRepo     *repository.TaskRepository
	userRepo     *repository.UserRepository
	activityRepo *repository.ActivityRepository
}

func NewTaskService(db *pgxpool.Pool) *TaskService {
	return &TaskService{
		db:           db,
		taskRepo:     repository.NewTaskRepository(db),
		userRepo:     repository.NewUserRepository(db),
		activityRepo: repository.NewActivityRepository(db),
	}
}

// List returns active tasks merged with the user's progress for the current
// period of each task type. Tasks without a progress row show zero progress.
func (s *TaskService) List(ctx context.Context, userID int64, taskType domain.TaskType) ([]TaskWithProgress, error) {
	tasks, err := s.taskRepo.ListActive(ctx, taskType)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	resetDates := []time.Time{
		domain.TaskTypeDaily.PeriodStart(now),
		domain.TaskTypeWeekly.PeriodStart(now),
		domain.TaskTypeMonthly.PeriodStart(now),
	}
	progress, err := s.taskRepo.GetProgress(ctx, userID, resetDates)
	if err != nil {
		return nil, err
	}

	byTask := make(map[string]domain.UserTask, len(progress))
	for _, p := range progress {
		byTask[p.TaskID] = p
	}

	out := make([]TaskWithProgress, 0, len(tasks))
	for _, t := range tasks {
		item := TaskWithProgress{Task: t, ResetDate: t.TaskType.PeriodStart(now)}
		if p, ok := byTask[t.ID]; ok && p.ResetDate.Equal(item.ResetDate) {
			item.Progress = p.Progress
			item.IsClaimed = p.IsClaimed
			item.ClaimedAt = p.ClaimedAt
		}
		out = append(out, item)
	}
	return out, nil
}

// AddProgress advances the user's counter for a task by delta within the
// current period. Progress on a claimed row still accumulates but cannot be
// claimed again.
func (s *TaskService) AddProgress(ctx context.Context, userID int64, taskID string, delta int) (*domain.UserTask, error) {
	if delta <= 0 {
		return nil, ErrInvalidAmount
	}
	task, err := s.taskRepo.GetByID(ctx, taskID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	resetDate := task.TaskType.PeriodStart(time.Now())
	return s.taskRepo.IncrementProgress(ctx, userID, taskID, resetDate, delta)
}

// Claim pays out a completed task. The claim flag flip, the points credit and
// the levelling update commit together or not at all.
func (s *TaskService) Claim(ctx context.Context, userID int64, taskID string) (*domain.User, error) {
	task, err := s.taskRepo.GetByID(ctx, taskID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	resetDate := task.TaskType.PeriodStart(time.Now())

	user, err := s.userRepo.GetByID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err = s.taskRepo.ClaimTx(ctx, tx, userID, taskID, resetDate, task.RequiredCount); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// No claimable row: either never progressed far enough or
			// already claimed this period.
			row, rowErr := s.taskRepo.GetRow(ctx, userID, taskID, resetDate)
			if rowErr == nil && row.IsClaimed {
				return nil, ErrAlreadyClaimed
			}
			return nil, ErrNotCompleted
		}
		return nil, err
	}

	newPoints, err := s.userRepo.AddPointsTx(ctx, tx, userID, task.RewardPoints)
	if err != nil {
		return nil, err
	}

	user.Points = newPoints
	user.CompletedTasks++
	user.AddExp(expPerTaskClaim)
	if err = s.userRepo.UpdateProgressTx(ctx, tx, user); err != nil {
		return nil, err
	}

	activity := &domain.Activity{
		UserID:       userID,
		ActivityType: domain.ActivityTaskClaim,
		Description:  fmt.Sprintf("Claimed %d points for task %q", task.RewardPoints, task.TaskName),
		PointsChange: task.RewardPoints,
	}
	if err = s.activityRepo.CreateTx(ctx, tx, activity); err != nil {
		return nil, err
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, err
	}

	logger.Info("task claimed",
		"user_id", userID, "task_id", taskID, "reward", task.RewardPoints)
	return user, nil
}
