package repository

import (
	"context"
	"time"

	"github.com/Gbothemy/crypto-earning/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type RewardRepository struct {
	db *pgxpool.Pool
}

func NewRewardRepository(db *pgxpool.Pool) *RewardRepository {
	return &RewardRepository{db: db}
}

func (r *RewardRepository) CreateDailyRewardTx(ctx context.Context, tx pgx.Tx, dr *domain.DailyReward) error {
	return tx.QueryRow(ctx,
		`INSERT INTO daily_rewards (user_id, claim_date, points_earned, streak_day)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		dr.UserID, dr.ClaimDate, dr.PointsEarned, dr.StreakDay,
	).Scan(&dr.ID)
}

func (r *RewardRepository) GetDailyRewards(ctx context.Context, userID int64, limit int) ([]domain.DailyReward, error) {
	if limit <= 0 {
		limit = 30
	}
	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, claim_date, points_earned, streak_day
		 FROM daily_rewards WHERE user_id = $1
		 ORDER BY claim_date DESC LIMIT $2`,
		userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []domain.DailyReward
	for rows.Next() {
		var dr domain.DailyReward
		if err := rows.Scan(&dr.ID, &dr.UserID, &dr.ClaimDate, &dr.PointsEarned, &dr.StreakDay); err != nil {
			return nil, err
		}
		res = append(res, dr)
	}
	return res, rows.Err()
}

// RecordGamePlay bumps the per-day play counter for a game, creating the row
// on first play of the day.
func (r *RewardRepository) RecordGamePlay(ctx context.Context, userID int64, gameType string, day time.Time) (*domain.GamePlay, error) {
	var gp domain.GamePlay
	err := r.db.QueryRow(ctx,
		`INSERT INTO game_plays (user_id, game_type, play_date, plays_count)
		 VALUES ($1, $2, $3, 1)
		 ON CONFLICT (user_id, game_type, play_date)
		 DO UPDATE SET plays_count = game_plays.plays_count + 1
		 RETURNING id, user_id, game_type, play_date, plays_count`,
		userID, gameType, day,
	).Scan(&gp.ID, &gp.UserID, &gp.GameType, &gp.PlayDate, &gp.PlaysCount)
	if err != nil {
		return nil, err
	}
	return &gp, nil
}

func (r *RewardRepository) GamePlaysOn(ctx context.Context, userID int64, day time.Time) ([]domain.GamePlay, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, game_type, play_date, plays_count
		 FROM game_plays WHERE user_id = $1 AND play_date = $2`,
		userID, day)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []domain.GamePlay
	for rows.Next() {
		var gp domain.GamePlay
		if err := rows.Scan(&gp.ID, &gp.UserID, &gp.GameType, &gp.PlayDate, &gp.PlaysCount); err != nil {
			return nil, err
		}
		res = append(res, gp)
	}
	return res, rows.Err()
}

func (r *RewardRepository) TotalGamePlays(ctx context.Context, userID int64) (int64, error) {
	var n int64
	err := r.db.QueryRow(ctx,
		`SELECT COALESCE(SUM(plays_count), 0) FROM game_plays WHERE user_id = $1`,
		userID).Scan(&n)
	return n, err
}
