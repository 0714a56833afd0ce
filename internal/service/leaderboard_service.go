package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Gbothemy/crypto-earning/internal/logger"
	"github.com/Gbothemy/crypto-earning/internal/repository"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

const leaderboardCacheTTL = 30 * time.Second

// Leaderboard kinds.
const (
	BoardPoints   = "points"
	BoardEarnings = "earnings"
	BoardStreak   = "streak"
)

// LeaderboardService serves ranked top-N lists with a short Redis cache in
// front of the database. Without Redis every call hits Postgres directly.
type LeaderboardService struct {
	userRepo *repository.UserRepository
	rdb      *redis.Client
}

func NewLeaderboardService(db *pgxpool.Pool, rdb *redis.Client) *LeaderboardService {
	return &LeaderboardService{
		userRepo: repository.NewUserRepository(db),
		rdb:      rdb,
	}
}

// Get returns the top entries for a board. Unknown boards error.
func (s *LeaderboardService) Get(ctx context.Context, board string, limit int) ([]repository.LeaderboardEntry, error) {
	if limit <= 0 || limit > 100 {
		limit = 10
	}

	key := fmt.Sprintf("leaderboard:%s:%d", board, limit)
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, key).Result(); err == nil {
			var entries []repository.LeaderboardEntry
			if json.Unmarshal([]byte(cached), &entries) == nil {
				return entries, nil
			}
		}
	}

	var (
		entries []repository.LeaderboardEntry
		err     error
	)
	switch board {
	case BoardPoints:
		entries, err = s.userRepo.TopByPoints(ctx, limit)
	case BoardEarnings:
		entries, err = s.userRepo.TopByEarnings(ctx, limit)
	case BoardStreak:
		entries, err = s.userRepo.TopByStreak(ctx, limit)
	default:
		return nil, errors.New("unknown leaderboard: " + board)
	}
	if err != nil {
		return nil, err
	}

	if s.rdb != nil {
		if data, err := json.Marshal(entries); err == nil {
			if err := s.rdb.Set(ctx, key, data, leaderboardCacheTTL).Err(); err != nil {
				logger.Debug("leaderboard cache write failed", "key", key, "error", err)
			}
		}
	}
	return entries, nil
}
