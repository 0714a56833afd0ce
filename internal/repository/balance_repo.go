package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Gbothemy/crypto-earning/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type BalanceRepository struct {
	db *pgxpool.Pool
}

func NewBalanceRepository(db *pgxpool.Pool) *BalanceRepository {
	return &BalanceRepository{db: db}
}

func (r *BalanceRepository) GetByUserID(ctx context.Context, userID int64) (*domain.Balance, error) {
	var b domain.Balance
	err := r.db.QueryRow(ctx,
		`SELECT user_id, sol, eth, usdt, usdc FROM balances WHERE user_id = $1`,
		userID,
	).Scan(&b.UserID, &b.SOL, &b.ETH, &b.USDT, &b.USDC)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// column maps a currency to its balances column. The enum is closed, so this
// never splices user input into SQL.
func column(c domain.Currency) string {
	return string(c)
}

// CreditTx adds amount to the currency balance inside an existing transaction.
func (r *BalanceRepository) CreditTx(ctx context.Context, tx pgx.Tx, userID int64, c domain.Currency, amount float64) (float64, error) {
	var newBalance float64
	q := fmt.Sprintf(`UPDATE balances SET %[1]s = %[1]s + $1 WHERE user_id = $2 RETURNING %[1]s`, column(c))
	err := tx.QueryRow(ctx, q, amount, userID).Scan(&newBalance)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, ErrNotFound
	}
	return newBalance, err
}

// DebitTx conditionally subtracts amount from the currency balance. The guard
// rides in the UPDATE itself so concurrent debits cannot overdraw.
func (r *BalanceRepository) DebitTx(ctx context.Context, tx pgx.Tx, userID int64, c domain.Currency, amount float64) (float64, error) {
	var newBalance float64
	q := fmt.Sprintf(`UPDATE balances SET %[1]s = %[1]s - $1 WHERE user_id = $2 AND %[1]s >= $1 RETURNING %[1]s`, column(c))
	err := tx.QueryRow(ctx, q, amount, userID).Scan(&newBalance)
	if errors.Is(err, pgx.ErrNoRows) {
		var exists bool
		_ = tx.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM balances WHERE user_id = $1)`, userID).Scan(&exists)
		if !exists {
			return 0, ErrNotFound
		}
		return 0, ErrInsufficientFunds
	}
	return newBalance, err
}

// Set overwrites one currency balance directly. Admin path only.
func (r *BalanceRepository) Set(ctx context.Context, userID int64, c domain.Currency, amount float64) error {
	q := fmt.Sprintf(`UPDATE balances SET %s = $1 WHERE user_id = $2`, column(c))
	tag, err := r.db.Exec(ctx, q, amount, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
