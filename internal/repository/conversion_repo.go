package repository

import (
	"context"

	"github.com/Gbothemy/crypto-earning/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ConversionRepository struct {
	db *pgxpool.Pool
}

func NewConversionRepository(db *pgxpool.Pool) *ConversionRepository {
	return &ConversionRepository{db: db}
}

// CreateTx appends a conversion record inside an existing transaction.
func (r *ConversionRepository) CreateTx(ctx context.Context, tx pgx.Tx, c *domain.Conversion) error {
	return tx.QueryRow(ctx,
		`INSERT INTO conversion_history (user_id, points_converted, currency, amount_received, conversion_rate)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at`,
		c.UserID, c.PointsConverted, c.Currency, c.AmountReceived, c.ConversionRate,
	).Scan(&c.ID, &c.CreatedAt)
}

func (r *ConversionRepository) GetByUserID(ctx context.Context, userID int64, limit int) ([]domain.Conversion, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, points_converted, currency, amount_received, conversion_rate, created_at
		 FROM conversion_history
		 WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2`,
		userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []domain.Conversion
	for rows.Next() {
		var c domain.Conversion
		if err := rows.Scan(&c.ID, &c.UserID, &c.PointsConverted, &c.Currency, &c.AmountReceived, &c.ConversionRate, &c.CreatedAt); err != nil {
			return nil, err
		}
		res = append(res, c)
	}
	return res, rows.Err()
}

// CountByUserID returns the user's total number of conversions.
func (r *ConversionRepository) CountByUserID(ctx context.Context, userID int64) (int64, error) {
	var n int64
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM conversion_history WHERE user_id = $1`, userID).Scan(&n)
	return n, err
}
