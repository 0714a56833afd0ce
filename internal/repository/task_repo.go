package repository

import (
	"context"
	"errors"
	"time"

	"github.com/Gbothemy/crypto-earning/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TaskRepository struct {
	db *pgxpool.Pool
}

func NewTaskRepository(db *pgxpool.Pool) *TaskRepository {
	return &TaskRepository{db: db}
}

// ListActive returns the active task catalog, optionally filtered by type.
func (r *TaskRepository) ListActive(ctx context.Context, taskType domain.TaskType) ([]domain.Task, error) {
	var (
		rows pgx.Rows
		err  error
	)
	if taskType == "" {
		rows, err = r.db.Query(ctx,
			`SELECT id, task_type, task_name, description, required_count, reward_points, is_active
			 FROM tasks WHERE is_active = true ORDER BY task_type, id`)
	} else {
		rows, err = r.db.Query(ctx,
			`SELECT id, task_type, task_name, description, required_count, reward_points, is_active
			 FROM tasks WHERE is_active = true AND task_type = $1 ORDER BY id`, taskType)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []domain.Task
	for rows.Next() {
		var t domain.Task
		if err := rows.Scan(&t.ID, &t.TaskType, &t.TaskName, &t.Description, &t.RequiredCount, &t.RewardPoints, &t.IsActive); err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (r *TaskRepository) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	var t domain.Task
	err := r.db.QueryRow(ctx,
		`SELECT id, task_type, task_name, description, required_count, reward_points, is_active
		 FROM tasks WHERE id = $1`, id,
	).Scan(&t.ID, &t.TaskType, &t.TaskName, &t.Description, &t.RequiredCount, &t.RewardPoints, &t.IsActive)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// GetProgress returns the user's progress rows for the given period starts.
// Rows from other periods are skipped; a fresh period simply has no row yet.
func (r *TaskRepository) GetProgress(ctx context.Context, userID int64, resetDates []time.Time) ([]domain.UserTask, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, task_id, progress, is_claimed, claimed_at, reset_date
		 FROM user_tasks
		 WHERE user_id = $1 AND reset_date = ANY($2)`,
		userID, resetDates)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []domain.UserTask
	for rows.Next() {
		var ut domain.UserTask
		if err := rows.Scan(&ut.ID, &ut.UserID, &ut.TaskID, &ut.Progress, &ut.IsClaimed, &ut.ClaimedAt, &ut.ResetDate); err != nil {
			return nil, err
		}
		res = append(res, ut)
	}
	return res, rows.Err()
}

// IncrementProgress bumps the period-scoped counter, creating the row on
// first touch. The upsert keys on (user_id, task_id, reset_date) so stale
// rows from past periods are left alone.
func (r *TaskRepository) IncrementProgress(ctx context.Context, userID int64, taskID string, resetDate time.Time, delta int) (*domain.UserTask, error) {
	var ut domain.UserTask
	err := r.db.QueryRow(ctx,
		`INSERT INTO user_tasks (user_id, task_id, progress, reset_date)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (user_id, task_id, reset_date)
		 DO UPDATE SET progress = user_tasks.progress + $3
		 RETURNING id, user_id, task_id, progress, is_claimed, claimed_at, reset_date`,
		userID, taskID, delta, resetDate,
	).Scan(&ut.ID, &ut.UserID, &ut.TaskID, &ut.Progress, &ut.IsClaimed, &ut.ClaimedAt, &ut.ResetDate)
	if err != nil {
		return nil, err
	}
	return &ut, nil
}

// ClaimTx flips is_claimed for the current period's row, returning
// ErrNotFound when there is nothing claimable (no row, not completed, or
// already claimed — callers distinguish via GetProgress).
func (r *TaskRepository) ClaimTx(ctx context.Context, tx pgx.Tx, userID int64, taskID string, resetDate time.Time, requiredCount int) (*domain.UserTask, error) {
	var ut domain.UserTask
	err := tx.QueryRow(ctx,
		`UPDATE user_tasks
		 SET is_claimed = true, claimed_at = $5
		 WHERE user_id = $1 AND task_id = $2 AND reset_date = $3
		   AND is_claimed = false AND progress >= $4
		 RETURNING id, user_id, task_id, progress, is_claimed, claimed_at, reset_date`,
		userID, taskID, resetDate, requiredCount, time.Now().UTC(),
	).Scan(&ut.ID, &ut.UserID, &ut.TaskID, &ut.Progress, &ut.IsClaimed, &ut.ClaimedAt, &ut.ResetDate)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &ut, nil
}

// GetRow fetches the current period's progress row.
func (r *TaskRepository) GetRow(ctx context.Context, userID int64, taskID string, resetDate time.Time) (*domain.UserTask, error) {
	var ut domain.UserTask
	err := r.db.QueryRow(ctx,
		`SELECT id, user_id, task_id, progress, is_claimed, claimed_at, reset_date
		 FROM user_tasks WHERE user_id = $1 AND task_id = $2 AND reset_date = $3`,
		userID, taskID, resetDate,
	).Scan(&ut.ID, &ut.UserID, &ut.TaskID, &ut.Progress, &ut.IsClaimed, &ut.ClaimedAt, &ut.ResetDate)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &ut, nil
}
