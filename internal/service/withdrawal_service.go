package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Gbothemy/crypto-earning/internal/domain"
	"github.com/Gbothemy/crypto-earning/internal/logger"
	"github.com/Gbothemy/crypto-earning/internal/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// EventPublisher pushes live events to the admin feed. A nil publisher
// disables push without changing workflow behaviour.
type EventPublisher interface {
	Publish(event string, payload interface{})
}

// WithdrawalService owns the request/approve/reject/complete lifecycle.
// Balance movement and request rows always change in the same transaction.
type WithdrawalService struct {
	db               *pgxpool.Pool
	userRepo         *repository.UserRepository
	balanceRepo      *repository.BalanceRepository
	withdrawalRepo   *repository.WithdrawalRepository
	notificationRepo *repository.NotificationRepository
	activityRepo     *repository.ActivityRepository
	publisher        EventPublisher
}

func NewWithdrawalService(db *pgxpool.Pool, publisher EventPublisher) *WithdrawalService {
	return &WithdrawalService{
		db:               db,
		userRepo:         repository.NewUserRepository(db),
		balanceRepo:      repository.NewBalanceRepository(db),
		withdrawalRepo:   repository.NewWithdrawalRepository(db),
		notificationRepo: repository.NewNotificationRepository(db),
		activityRepo:     repository.NewActivityRepository(db),
		publisher:        publisher,
	}
}

func (s *WithdrawalService) publish(event string, payload interface{}) {
	if s.publisher != nil {
		s.publisher.Publish(event, payload)
	}
}

// Estimate returns the fee and net amount a request would carry, without
// touching any state.
func (s *WithdrawalService) Estimate(currency domain.Currency, amount float64, network string) (fee, net float64, err error) {
	if amount <= 0 {
		return 0, 0, ErrInvalidAmount
	}
	if amount < currency.MinWithdraw() {
		return 0, 0, ErrBelowMinimum
	}
	if !currency.SupportsNetwork(network) {
		return 0, 0, ErrInvalidNetwork
	}
	fee = domain.NetworkFee(network)
	net = amount - fee
	if net <= 0 {
		return 0, 0, ErrBelowMinimum
	}
	return fee, net, nil
}

// Request validates and files a withdrawal request, debiting the full amount
// from the crypto balance in the same transaction.
func (s *WithdrawalService) Request(ctx context.Context, userID int64, currency domain.Currency, amount float64, address, network, memo string) (*domain.WithdrawalRequest, error) {
	fee, net, err := s.Estimate(currency, amount, network)
	if err != nil {
		return nil, err
	}
	if !domain.ValidWalletAddress(address, network) {
		return nil, ErrInvalidAddress
	}

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

	if _, err = s.balanceRepo.DebitTx(ctx, tx, userID, currency, amount); err != nil {
		if errors.Is(err, repository.ErrInsufficientFunds) {
			return nil, ErrInsufficientFunds
		}
		return nil, err
	}

	req := &domain.WithdrawalRequest{
		ID:            "WD-" + uuid.NewString(),
		UserID:        userID,
		Username:      user.Username,
		Currency:      currency,
		Amount:        amount,
		WalletAddress: address,
		Network:       network,
		Memo:          memo,
		NetworkFee:    fee,
		NetAmount:     net,
		Status:        domain.WithdrawalStatusPending,
	}
	if err = s.withdrawalRepo.CreateTx(ctx, tx, req); err != nil {
		return nil, err
	}

	activity := &domain.Activity{
		UserID:       userID,
		ActivityType: domain.ActivityWithdrawalRequest,
		Description:  fmt.Sprintf("Requested withdrawal of %g %s via %s", amount, currency, network),
	}
	if err = s.activityRepo.CreateTx(ctx, tx, activity); err != nil {
		return nil, err
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, err
	}

	logger.Info("withdrawal requested",
		"request_id", req.ID, "user_id", userID, "currency", currency,
		"amount", amount, "network", network)
	s.publish("withdrawal.created", req)
	return req, nil
}

// Resolve moves a pending request to approved or rejected. Rejection refunds
// the debited amount. Exactly one of the two transitions can ever happen for
// a given request.
func (s *WithdrawalService) Resolve(ctx context.Context, id string, decision domain.WithdrawalStatus, processedBy string) (*domain.WithdrawalRequest, error) {
	if decision != domain.WithdrawalStatusApproved && decision != domain.WithdrawalStatusRejected {
		return nil, ErrInvalidDecision
	}

	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	req, err := s.withdrawalRepo.ResolveTx(ctx, tx, id, decision, processedBy)
	if errors.Is(err, repository.ErrNotFound) {
		if _, getErr := s.withdrawalRepo.GetByID(ctx, id); errors.Is(getErr, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, ErrAlreadyResolved
	}
	if err != nil {
		return nil, err
	}

	var message string
	if decision == domain.WithdrawalStatusRejected {
		if _, err = s.balanceRepo.CreditTx(ctx, tx, req.UserID, req.Currency, req.Amount); err != nil {
			return nil, err
		}
		message = fmt.Sprintf("Your withdrawal of %g %s was rejected. The amount has been returned to your balance.", req.Amount, req.Currency)
	} else {
		message = fmt.Sprintf("Your withdrawal of %g %s was approved and is being processed.", req.Amount, req.Currency)
	}

	notification := &domain.Notification{
		UserID:           req.UserID,
		NotificationType: domain.NotificationTypeWithdrawal,
		Title:            "Withdrawal " + string(decision),
		Message:          message,
	}
	if err = s.notificationRepo.CreateTx(ctx, tx, notification); err != nil {
		return nil, err
	}

	activity := &domain.Activity{
		UserID:       req.UserID,
		ActivityType: domain.ActivityWithdrawalResolve,
		Description:  fmt.Sprintf("Withdrawal %s %s by %s", req.ID, decision, processedBy),
	}
	if err = s.activityRepo.CreateTx(ctx, tx, activity); err != nil {
		return nil, err
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, err
	}

	logger.Info("withdrawal resolved",
		"request_id", req.ID, "decision", decision, "processed_by", processedBy)
	s.publish("withdrawal."+string(decision), req)
	return req, nil
}

// Complete attaches the on-chain transaction hash to an approved request and
// marks it completed.
func (s *WithdrawalService) Complete(ctx context.Context, id, txHash string) (*domain.WithdrawalRequest, error) {
	if txHash == "" {
		return nil, errors.New("transaction hash is required")
	}
	req, err := s.withdrawalRepo.AttachTransactionHash(ctx, id, txHash)
	if errors.Is(err, repository.ErrNotFound) {
		if _, getErr := s.withdrawalRepo.GetByID(ctx, id); errors.Is(getErr, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, ErrAlreadyResolved
	}
	if err != nil {
		return nil, err
	}

	notification := &domain.Notification{
		UserID:           req.UserID,
		NotificationType: domain.NotificationTypeWithdrawal,
		Title:            "Withdrawal completed",
		Message:          fmt.Sprintf("Your withdrawal of %g %s has been sent. Transaction: %s", req.NetAmount, req.Currency, txHash),
	}
	if err := s.notificationRepo.Create(ctx, notification); err != nil {
		logger.Error("failed to create completion notification", "request_id", id, "error", err)
	}

	s.publish("withdrawal.completed", req)
	return req, nil
}

// ListForUser returns the user's requests, newest first.
func (s *WithdrawalService) ListForUser(ctx context.Context, userID int64, limit int) ([]domain.WithdrawalRequest, error) {
	return s.withdrawalRepo.GetByUserID(ctx, userID, limit)
}

// ListByStatus returns requests filtered by status; pending requests come
// back oldest first so operators work the queue in order.
func (s *WithdrawalService) ListByStatus(ctx context.Context, status domain.WithdrawalStatus) ([]domain.WithdrawalRequest, error) {
	return s.withdrawalRepo.ListByStatus(ctx, status)
}
