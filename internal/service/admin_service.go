package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Gbothemy/crypto-earning/internal/domain"
	"github.com/Gbothemy/crypto-earning/internal/logger"
	"github.com/Gbothemy/crypto-earning/internal/repository"

	"github.com/jackc/pgx/v5/pgxpool"
)

// AdminService provides operator statistics and direct user edits.
type AdminService struct {
	db             *pgxpool.Pool
	userRepo       *repository.UserRepository
	balanceRepo    *repository.BalanceRepository
	withdrawalRepo *repository.WithdrawalRepository
	activityRepo   *repository.ActivityRepository
}

func NewAdminService(db *pgxpool.Pool) *AdminService {
	return &AdminService{
		db:             db,
		userRepo:       repository.NewUserRepository(db),
		balanceRepo:    repository.NewBalanceRepository(db),
		withdrawalRepo: repository.NewWithdrawalRepository(db),
		activityRepo:   repository.NewActivityRepository(db),
	}
}

// Stats represents platform statistics for the admin dashboard.
type Stats struct {
	TotalUsers         int64   `json:"total_users"`
	ActiveUsersToday   int64   `json:"active_users_today"`
	ActiveUsersWeek    int64   `json:"active_users_week"`
	TotalPoints        int64   `json:"total_points"`
	PendingWithdrawals int     `json:"pending_withdrawals"`
	CompletedToday     int64   `json:"withdrawals_completed_today"`
	ConversionsToday   int64   `json:"conversions_today"`
	PointsConverted    int64   `json:"points_converted_total"`
	TotalSOLHeld       float64 `json:"total_sol_held"`
	TotalUSDTHeld      float64 `json:"total_usdt_held"`
}

// GetStats returns platform statistics. Individual scan failures leave the
// zero value in place rather than failing the whole dashboard.
func (s *AdminService) GetStats(ctx context.Context) (*Stats, error) {
	stats := &Stats{}
	now := time.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	weekAgo := today.AddDate(0, 0, -7)

	_ = s.db.QueryRow(ctx, `SELECT COUNT(*) FROM users WHERE is_admin = false`).Scan(&stats.TotalUsers)

	_ = s.db.QueryRow(ctx, `
		SELECT COUNT(DISTINCT user_id) FROM activity_log WHERE created_at >= $1
	`, today).Scan(&stats.ActiveUsersToday)

	_ = s.db.QueryRow(ctx, `
		SELECT COUNT(DISTINCT user_id) FROM activity_log WHERE created_at >= $1
	`, weekAgo).Scan(&stats.ActiveUsersWeek)

	_ = s.db.QueryRow(ctx, `SELECT COALESCE(SUM(points), 0) FROM users`).Scan(&stats.TotalPoints)

	_ = s.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM withdrawal_requests WHERE status = 'pending'
	`).Scan(&stats.PendingWithdrawals)

	_ = s.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM withdrawal_requests
		WHERE status = 'completed' AND processed_date >= $1
	`, today).Scan(&stats.CompletedToday)

	_ = s.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM conversion_history WHERE created_at >= $1
	`, today).Scan(&stats.ConversionsToday)

	_ = s.db.QueryRow(ctx, `
		SELECT COALESCE(SUM(points_converted), 0) FROM conversion_history
	`).Scan(&stats.PointsConverted)

	_ = s.db.QueryRow(ctx, `SELECT COALESCE(SUM(sol), 0) FROM balances`).Scan(&stats.TotalSOLHeld)
	_ = s.db.QueryRow(ctx, `SELECT COALESCE(SUM(usdt), 0) FROM balances`).Scan(&stats.TotalUSDTHeld)

	return stats, nil
}

// ListUsers returns all non-admin users, highest points first.
func (s *AdminService) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.userRepo.ListNonAdmins(ctx)
}

// GetUserDetail returns a user with their balances.
func (s *AdminService) GetUserDetail(ctx context.Context, userID int64) (*domain.User, *domain.Balance, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil, ErrUserNotFound
	}
	if err != nil {
		return nil, nil, err
	}
	balance, err := s.balanceRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	return user, balance, nil
}

// UserEdit carries the fields an operator may overwrite. Nil fields are left
// untouched.
type UserEdit struct {
	Points         *int64              `json:"points"`
	VIPLevel       *int                `json:"vip_level"`
	CompletedTasks *int                `json:"completed_tasks"`
	Balances       map[string]*float64 `json:"balances"`
}

// EditUser applies a direct overwrite of user counters and balances. Every
// edit is recorded in the activity log with the operator's name.
func (s *AdminService) EditUser(ctx context.Context, userID int64, edit UserEdit, editedBy string) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	if edit.Points != nil {
		if *edit.Points < 0 {
			return nil, ErrInvalidAmount
		}
		if _, err := s.db.Exec(ctx, `UPDATE users SET points = $1 WHERE id = $2`, *edit.Points, userID); err != nil {
			return nil, err
		}
		user.Points = *edit.Points
	}
	if edit.VIPLevel != nil {
		if _, err := s.db.Exec(ctx, `UPDATE users SET vip_level = $1 WHERE id = $2`, *edit.VIPLevel, userID); err != nil {
			return nil, err
		}
		user.VIPLevel = *edit.VIPLevel
	}
	if edit.CompletedTasks != nil {
		if _, err := s.db.Exec(ctx, `UPDATE users SET completed_tasks = $1 WHERE id = $2`, *edit.CompletedTasks, userID); err != nil {
			return nil, err
		}
		user.CompletedTasks = *edit.CompletedTasks
	}
	for code, amount := range edit.Balances {
		if amount == nil {
			continue
		}
		currency, err := domain.ParseCurrency(code)
		if err != nil {
			return nil, err
		}
		if *amount < 0 {
			return nil, ErrInvalidAmount
		}
		if err := s.balanceRepo.Set(ctx, userID, currency, *amount); err != nil {
			return nil, err
		}
	}

	activity := &domain.Activity{
		UserID:       userID,
		ActivityType: domain.ActivityAdminEdit,
		Description:  fmt.Sprintf("Account values edited by %s", editedBy),
	}
	if err := s.activityRepo.Create(ctx, activity); err != nil {
		logger.Error("admin edit audit failed", "user_id", userID, "error", err)
	}

	logger.Info("user edited by admin", "user_id", userID, "edited_by", editedBy)
	return user, nil
}
