package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Gbothemy/crypto-earning/internal/domain"
	"github.com/Gbothemy/crypto-earning/internal/logger"
	"github.com/Gbothemy/crypto-earning/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ConversionService exchanges points for crypto at the caller's VIP rate.
type ConversionService struct {
	db             *pgxpool.Pool
	userRepo       *repository.UserRepository
	balanceRepo    *repository.BalanceRepository
	tierRepo       *repository.VIPTierRepository
	conversionRepo *repository.ConversionRepository
	activityRepo   *repository.ActivityRepository
}

func NewConversionService(db *pgxpool.Pool) *ConversionService {
	return &ConversionService{
		db:             db,
		userRepo:       repository.NewUserRepository(db),
		balanceRepo:    repository.NewBalanceRepository(db),
		tierRepo:       repository.NewVIPTierRepository(db),
		conversionRepo: repository.NewConversionRepository(db),
		activityRepo:   repository.NewActivityRepository(db),
	}
}

// ResolveTier returns the VIP tier covering vipLevel, falling back to the
// base tier when the catalog has no row for it.
func (s *ConversionService) ResolveTier(ctx context.Context, vipLevel int) (*domain.VIPTier, error) {
	tier, err := s.tierRepo.GetByLevel(ctx, vipLevel)
	if errors.Is(err, repository.ErrNotFound) {
		return domain.FallbackTier(), nil
	}
	return tier, err
}

// ListTiers returns the VIP tier catalog.
func (s *ConversionService) ListTiers(ctx context.Context) ([]domain.VIPTier, error) {
	return s.tierRepo.List(ctx)
}

// Convert debits points and credits the crypto balance in one transaction.
// The rate used is recorded on the history row.
func (s *ConversionService) Convert(ctx context.Context, userID int64, points int64, currency domain.Currency) (*domain.Conversion, error) {
	if points <= 0 {
		return nil, ErrInvalidAmount
	}
	if points < domain.MinConversionPoints {
		return nil, ErrBelowMinimum
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	tier, err := s.ResolveTier(ctx, user.VIPLevel)
	if err != nil {
		return nil, err
	}
	amount := float64(points) / float64(tier.ConversionRate)

	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err = s.userRepo.AddPointsTx(ctx, tx, userID, -points); err != nil {
		if errors.Is(err, repository.ErrInsufficientFunds) {
			return nil, ErrInsufficientFunds
		}
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if _, err = s.balanceRepo.CreditTx(ctx, tx, userID, currency, amount); err != nil {
		return nil, err
	}

	conv := &domain.Conversion{
		UserID:          userID,
		PointsConverted: points,
		Currency:        currency,
		AmountReceived:  amount,
		ConversionRate:  tier.ConversionRate,
	}
	if err = s.conversionRepo.CreateTx(ctx, tx, conv); err != nil {
		return nil, err
	}

	activity := &domain.Activity{
		UserID:       userID,
		ActivityType: domain.ActivityConversion,
		Description:  fmt.Sprintf("Converted %d points to %.8f %s", points, amount, currency),
		PointsChange: -points,
	}
	if err = s.activityRepo.CreateTx(ctx, tx, activity); err != nil {
		return nil, err
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, err
	}

	logger.Info("points converted",
		"user_id", userID, "points", points, "currency", currency,
		"amount", amount, "rate", tier.ConversionRate)
	return conv, nil
}

// History returns the user's past conversions, newest first.
func (s *ConversionService) History(ctx context.Context, userID int64, limit int) ([]domain.Conversion, error) {
	return s.conversionRepo.GetByUserID(ctx, userID, limit)
}
