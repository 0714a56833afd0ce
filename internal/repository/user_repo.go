package repository

import (
	"context"
	"errors"

	"github.com/Gbothemy/crypto-earning/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrInsufficientFunds = errors.New("insufficient funds")
)

const userColumns = `id, username, COALESCE(email, ''), COALESCE(avatar, ''), is_admin,
	points, vip_level, exp, max_exp, gift_points, completed_tasks, day_streak, last_claim, created_at`

type UserRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE LOWER(username) = LOWER($1)`, username)
	return scanUser(row)
}

// Create inserts the user together with a zeroed balance row.
func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	err = tx.QueryRow(ctx,
		`INSERT INTO users (username, email, avatar, is_admin, points, vip_level, exp, max_exp)
		 VALUES ($1, $2, $3, $4, 0, 1, 0, 1000)
		 RETURNING id, points, vip_level, exp, max_exp, created_at`,
		u.Username, u.Email, u.Avatar, u.IsAdmin,
	).Scan(&u.ID, &u.Points, &u.VIPLevel, &u.Exp, &u.MaxExp, &u.CreatedAt)
	if err != nil {
		return err
	}

	if _, err := tx.Exec(ctx,
		`INSERT INTO balances (user_id, sol, eth, usdt, usdc) VALUES ($1, 0, 0, 0, 0)`,
		u.ID,
	); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// AddPoints adjusts the user's points by delta. Negative deltas that would
// drive the balance below zero fail with ErrInsufficientFunds.
func (r *UserRepository) AddPoints(ctx context.Context, userID int64, delta int64) (int64, error) {
	var newPoints int64
	err := r.db.QueryRow(ctx,
		`UPDATE users SET points = points + $1 WHERE id = $2 AND points + $1 >= 0 RETURNING points`,
		delta, userID,
	).Scan(&newPoints)
	if errors.Is(err, pgx.ErrNoRows) {
		var exists bool
		_ = r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)`, userID).Scan(&exists)
		if !exists {
			return 0, ErrNotFound
		}
		return 0, ErrInsufficientFunds
	}
	return newPoints, err
}

// AddPointsTx is AddPoints inside an existing transaction.
func (r *UserRepository) AddPointsTx(ctx context.Context, tx pgx.Tx, userID int64, delta int64) (int64, error) {
	var newPoints int64
	err := tx.QueryRow(ctx,
		`UPDATE users SET points = points + $1 WHERE id = $2 AND points + $1 >= 0 RETURNING points`,
		delta, userID,
	).Scan(&newPoints)
	if errors.Is(err, pgx.ErrNoRows) {
		var exists bool
		_ = tx.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)`, userID).Scan(&exists)
		if !exists {
			return 0, ErrNotFound
		}
		return 0, ErrInsufficientFunds
	}
	return newPoints, err
}

// UpdateProfile overwrites the mutable profile fields.
func (r *UserRepository) UpdateProfile(ctx context.Context, u *domain.User) error {
	_, err := r.db.Exec(ctx,
		`UPDATE users SET username = $2, email = $3, avatar = $4 WHERE id = $1`,
		u.ID, u.Username, u.Email, u.Avatar,
	)
	return err
}

// UpdateProgress persists the levelling and streak counters after a claim.
func (r *UserRepository) UpdateProgress(ctx context.Context, u *domain.User) error {
	_, err := r.db.Exec(ctx,
		`UPDATE users
		 SET vip_level = $2, exp = $3, max_exp = $4, completed_tasks = $5, day_streak = $6, last_claim = $7
		 WHERE id = $1`,
		u.ID, u.VIPLevel, u.Exp, u.MaxExp, u.CompletedTasks, u.DayStreak, u.LastClaim,
	)
	return err
}

// UpdateProgressTx is UpdateProgress inside an existing transaction.
func (r *UserRepository) UpdateProgressTx(ctx context.Context, tx pgx.Tx, u *domain.User) error {
	_, err := tx.Exec(ctx,
		`UPDATE users
		 SET vip_level = $2, exp = $3, max_exp = $4, completed_tasks = $5, day_streak = $6, last_claim = $7
		 WHERE id = $1`,
		u.ID, u.VIPLevel, u.Exp, u.MaxExp, u.CompletedTasks, u.DayStreak, u.LastClaim,
	)
	return err
}

// ListNonAdmins returns all regular users ordered by points descending.
func (r *UserRepository) ListNonAdmins(ctx context.Context) ([]domain.User, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+userColumns+` FROM users WHERE is_admin = false ORDER BY points DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanUsers(rows)
}

// LeaderboardEntry is one row of a ranked view.
type LeaderboardEntry struct {
	Rank     int     `json:"rank"`
	UserID   int64   `json:"user_id"`
	Username string  `json:"username"`
	Avatar   string  `json:"avatar,omitempty"`
	Points   int64   `json:"points"`
	VIPLevel int     `json:"vip_level"`
	Streak   int     `json:"streak,omitempty"`
	Earnings float64 `json:"earnings,omitempty"`
}

// TopByPoints returns the points leaderboard, admins excluded.
func (r *UserRepository) TopByPoints(ctx context.Context, limit int) ([]LeaderboardEntry, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, username, COALESCE(avatar, ''), points, vip_level, day_streak
		 FROM users WHERE is_admin = false
		 ORDER BY points DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanLeaderboard(rows)
}

// TopByStreak returns the day-streak leaderboard.
func (r *UserRepository) TopByStreak(ctx context.Context, limit int) ([]LeaderboardEntry, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, username, COALESCE(avatar, ''), points, vip_level, day_streak
		 FROM users WHERE is_admin = false
		 ORDER BY day_streak DESC, points DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanLeaderboard(rows)
}

// TopByEarnings ranks users by their SOL balance.
func (r *UserRepository) TopByEarnings(ctx context.Context, limit int) ([]LeaderboardEntry, error) {
	rows, err := r.db.Query(ctx,
		`SELECT u.id, u.username, COALESCE(u.avatar, ''), u.points, u.vip_level, u.day_streak, b.sol
		 FROM users u JOIN balances b ON b.user_id = u.id
		 WHERE u.is_admin = false
		 ORDER BY b.sol DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []LeaderboardEntry
	rank := 1
	for rows.Next() {
		var e LeaderboardEntry
		if err := rows.Scan(&e.UserID, &e.Username, &e.Avatar, &e.Points, &e.VIPLevel, &e.Streak, &e.Earnings); err != nil {
			return nil, err
		}
		e.Rank = rank
		rank++
		res = append(res, e)
	}
	return res, rows.Err()
}

func scanLeaderboard(rows pgx.Rows) ([]LeaderboardEntry, error) {
	var res []LeaderboardEntry
	rank := 1
	for rows.Next() {
		var e LeaderboardEntry
		if err := rows.Scan(&e.UserID, &e.Username, &e.Avatar, &e.Points, &e.VIPLevel, &e.Streak); err != nil {
			return nil, err
		}
		e.Rank = rank
		rank++
		res = append(res, e)
	}
	return res, rows.Err()
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(
		&u.ID, &u.Username, &u.Email, &u.Avatar, &u.IsAdmin,
		&u.Points, &u.VIPLevel, &u.Exp, &u.MaxExp, &u.GiftPoints,
		&u.CompletedTasks, &u.DayStreak, &u.LastClaim, &u.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func scanUsers(rows pgx.Rows) ([]domain.User, error) {
	var users []domain.User
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(
			&u.ID, &u.Username, &u.Email, &u.Avatar, &u.IsAdmin,
			&u.Points, &u.VIPLevel, &u.Exp, &u.MaxExp, &u.GiftPoints,
			&u.CompletedTasks, &u.DayStreak, &u.LastClaim, &u.CreatedAt,
		); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}
