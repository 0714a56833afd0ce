package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/Gbothemy/crypto-earning/internal/domain"
	"github.com/Gbothemy/crypto-earning/internal/game"
	"github.com/Gbothemy/crypto-earning/internal/logger"
	"github.com/Gbothemy/crypto-earning/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	airdropMinPoints = 200
	airdropMaxPoints = 700
	expPerDailyClaim = 25
)

// DailyClaimResult describes the payout of one daily airdrop claim.
type DailyClaimResult struct {
	PointsEarned int64        `json:"points_earned"`
	StreakBonus  int64        `json:"streak_bonus"`
	SolDust      float64      `json:"sol_dust"`
	StreakDay    int          `json:"streak_day"`
	User         *domain.User `json:"user"`
}

// RewardService handles the daily airdrop, streaks and game play counters.
type RewardService struct {
	db           *pgxpool.Pool
	userRepo     *repository.UserRepository
	balanceRepo  *repository.BalanceRepository
	rewardRepo   *repository.RewardRepository
	activityRepo *repository.ActivityRepository
}

func NewRewardService(db *pgxpool.Pool) *RewardService {
	return &RewardService{
		db:           db,
		userRepo:     repository.NewUserRepository(db),
		balanceRepo:  repository.NewBalanceRepository(db),
		rewardRepo:   repository.NewRewardRepository(db),
		activityRepo: repository.NewActivityRepository(db),
	}
}

// randInt63 returns a uniform value in [0, n) from the system CSPRNG.
func randInt63(n int64) int64 {
	v, err := rand.Int(rand.Reader, big.NewInt(n))
	if err != nil {
		return 0
	}
	return v.Int64()
}

// ClaimDaily pays the daily airdrop: once per UTC day, a random point amount
// plus the streak bonus for the current streak day, plus a dust amount of
// SOL. Claiming the day after the last claim extends the streak; skipping a
// full day resets it to 1.
func (s *RewardService) ClaimDaily(ctx context.Context, userID int64) (*DailyClaimResult, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	streak := 1
	if user.LastClaim != nil {
		last := user.LastClaim.UTC()
		lastDay := time.Date(last.Year(), last.Month(), last.Day(), 0, 0, 0, 0, time.UTC)
		switch {
		case lastDay.Equal(today):
			return nil, ErrAlreadyClaimed
		case lastDay.Equal(today.AddDate(0, 0, -1)):
			streak = user.DayStreak + 1
		}
	}

	base := airdropMinPoints + randInt63(airdropMaxPoints-airdropMinPoints+1)
	bonus := domain.StreakRewardPoints(streak)
	total := base + bonus
	solDust := float64(randInt63(100)+1) / 1e6 // up to 0.0001 SOL

	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	newPoints, err := s.userRepo.AddPointsTx(ctx, tx, userID, total)
	if err != nil {
		return nil, err
	}
	if _, err = s.balanceRepo.CreditTx(ctx, tx, userID, domain.CurrencySOL, solDust); err != nil {
		return nil, err
	}

	reward := &domain.DailyReward{
		UserID:       userID,
		ClaimDate:    today,
		PointsEarned: total,
		StreakDay:    streak,
	}
	if err = s.rewardRepo.CreateDailyRewardTx(ctx, tx, reward); err != nil {
		return nil, err
	}

	user.Points = newPoints
	user.DayStreak = streak
	user.LastClaim = &now
	user.AddExp(expPerDailyClaim)
	if err = s.userRepo.UpdateProgressTx(ctx, tx, user); err != nil {
		return nil, err
	}

	activity := &domain.Activity{
		UserID:       userID,
		ActivityType: domain.ActivityDailyClaim,
		Description:  fmt.Sprintf("Daily airdrop claimed on streak day %d", streak),
		PointsChange: total,
	}
	if err = s.activityRepo.CreateTx(ctx, tx, activity); err != nil {
		return nil, err
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, err
	}

	logger.Info("daily airdrop claimed",
		"user_id", userID, "points", total, "streak_day", streak)
	return &DailyClaimResult{
		PointsEarned: total,
		StreakBonus:  bonus,
		SolDust:      solDust,
		StreakDay:    streak,
		User:         user,
	}, nil
}

// WheelSpinResult is the outcome of one bonus wheel spin.
type WheelSpinResult struct {
	Segment   *game.WheelSegment `json:"segment"`
	SpinAngle float64            `json:"spin_angle"`
	NewPoints int64              `json:"new_points"`
	Plays     int                `json:"plays_today"`
}

// SpinWheel plays the bonus wheel: credits the prize, records today's play
// and logs the win.
func (s *RewardService) SpinWheel(ctx context.Context, userID int64) (*WheelSpinResult, error) {
	wheel := game.NewWheelGame()
	segment := wheel.Spin()

	newPoints, err := s.userRepo.AddPoints(ctx, userID, segment.Points)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	play, err := s.RecordGame(ctx, userID, "wheel")
	if err != nil {
		return nil, err
	}

	activity := &domain.Activity{
		UserID:       userID,
		ActivityType: domain.ActivityGamePlay,
		Description:  fmt.Sprintf("Won %d points on the bonus wheel", segment.Points),
		PointsChange: segment.Points,
	}
	if err := s.activityRepo.Create(ctx, activity); err != nil {
		logger.Error("wheel activity failed", "user_id", userID, "error", err)
	}

	return &WheelSpinResult{
		Segment:   segment,
		SpinAngle: wheel.SpinAngle,
		NewPoints: newPoints,
		Plays:     play.PlaysCount,
	}, nil
}

// RecordGame bumps today's play counter for a mini-game.
func (s *RewardService) RecordGame(ctx context.Context, userID int64, gameType string) (*domain.GamePlay, error) {
	if gameType == "" {
		return nil, errors.New("game type is required")
	}
	now := time.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return s.rewardRepo.RecordGamePlay(ctx, userID, gameType, today)
}

// History returns recent daily claims, newest first.
func (s *RewardService) History(ctx context.Context, userID int64, limit int) ([]domain.DailyReward, error) {
	return s.rewardRepo.GetDailyRewards(ctx, userID, limit)
}
