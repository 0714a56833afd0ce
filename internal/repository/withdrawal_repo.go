package repository

import (
	"context"
	"errors"
	"time"

	"github.com/Gbothemy/crypto-earning/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const withdrawalColumns = `id, user_id, username, currency, amount, wallet_address, network,
	COALESCE(memo, ''), network_fee, net_amount, status, request_date, processed_date,
	COALESCE(processed_by, ''), COALESCE(transaction_hash, '')`

type WithdrawalRepository struct {
	db *pgxpool.Pool
}

func NewWithdrawalRepository(db *pgxpool.Pool) *WithdrawalRepository {
	return &WithdrawalRepository{db: db}
}

func (r *WithdrawalRepository) GetByID(ctx context.Context, id string) (*domain.WithdrawalRequest, error) {
	row := r.db.QueryRow(ctx, `SELECT `+withdrawalColumns+` FROM withdrawal_requests WHERE id = $1`, id)
	return scanWithdrawal(row)
}

func (r *WithdrawalRepository) GetByUserID(ctx context.Context, userID int64, limit int) ([]domain.WithdrawalRequest, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+withdrawalColumns+` FROM withdrawal_requests
		 WHERE user_id = $1 ORDER BY request_date DESC LIMIT $2`,
		userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanWithdrawals(rows)
}

// ListByStatus returns all requests with the given status, oldest first so
// the review queue is FIFO. An empty status lists everything, newest first.
func (r *WithdrawalRepository) ListByStatus(ctx context.Context, status domain.WithdrawalStatus) ([]domain.WithdrawalRequest, error) {
	var (
		rows pgx.Rows
		err  error
	)
	if status == "" {
		rows, err = r.db.Query(ctx,
			`SELECT `+withdrawalColumns+` FROM withdrawal_requests ORDER BY request_date DESC`)
	} else {
		rows, err = r.db.Query(ctx,
			`SELECT `+withdrawalColumns+` FROM withdrawal_requests
			 WHERE status = $1 ORDER BY request_date ASC`, status)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanWithdrawals(rows)
}

// CreateTx inserts a new pending request inside an existing transaction.
func (r *WithdrawalRepository) CreateTx(ctx context.Context, tx pgx.Tx, w *domain.WithdrawalRequest) error {
	return tx.QueryRow(ctx,
		`INSERT INTO withdrawal_requests
		 (id, user_id, username, currency, amount, wallet_address, network, memo, network_fee, net_amount, status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		 RETURNING request_date`,
		w.ID, w.UserID, w.Username, w.Currency, w.Amount, w.WalletAddress, w.Network,
		w.Memo, w.NetworkFee, w.NetAmount, w.Status,
	).Scan(&w.RequestDate)
}

// ResolveTx transitions a pending request to approved or rejected. The status
// guard lives in the WHERE clause so a request can be resolved exactly once.
func (r *WithdrawalRepository) ResolveTx(ctx context.Context, tx pgx.Tx, id string, status domain.WithdrawalStatus, processedBy string) (*domain.WithdrawalRequest, error) {
	row := tx.QueryRow(ctx,
		`UPDATE withdrawal_requests
		 SET status = $2, processed_by = $3, processed_date = $4
		 WHERE id = $1 AND status = 'pending'
		 RETURNING `+withdrawalColumns,
		id, status, processedBy, time.Now().UTC())
	return scanWithdrawal(row)
}

// AttachTransactionHash marks an approved request completed.
func (r *WithdrawalRepository) AttachTransactionHash(ctx context.Context, id, txHash string) (*domain.WithdrawalRequest, error) {
	row := r.db.QueryRow(ctx,
		`UPDATE withdrawal_requests
		 SET status = 'completed', transaction_hash = $2
		 WHERE id = $1 AND status = 'approved'
		 RETURNING `+withdrawalColumns,
		id, txHash)
	return scanWithdrawal(row)
}

// CountByStatus returns the number of requests in the given status.
func (r *WithdrawalRepository) CountByStatus(ctx context.Context, status domain.WithdrawalStatus) (int, error) {
	var n int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM withdrawal_requests WHERE status = $1`, status).Scan(&n)
	return n, err
}

func scanWithdrawal(row pgx.Row) (*domain.WithdrawalRequest, error) {
	var w domain.WithdrawalRequest
	err := row.Scan(
		&w.ID, &w.UserID, &w.Username, &w.Currency, &w.Amount, &w.WalletAddress, &w.Network,
		&w.Memo, &w.NetworkFee, &w.NetAmount, &w.Status, &w.RequestDate, &w.ProcessedDate,
		&w.ProcessedBy, &w.TransactionHash,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &w, nil
}

func scanWithdrawals(rows pgx.Rows) ([]domain.WithdrawalRequest, error) {
	var res []domain.WithdrawalRequest
	for rows.Next() {
		var w domain.WithdrawalRequest
		if err := rows.Scan(
			&w.ID, &w.UserID, &w.Username, &w.Currency, &w.Amount, &w.WalletAddress, &w.Network,
			&w.Memo, &w.NetworkFee, &w.NetAmount, &w.Status, &w.RequestDate, &w.ProcessedDate,
			&w.ProcessedBy, &w.TransactionHash,
		); err != nil {
			return nil, err
		}
		res = append(res, w)
	}
	return res, rows.Err()
}
