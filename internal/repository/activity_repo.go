package repository

import (
	"context"

	"github.com/Gbothemy/crypto-earning/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ActivityRepository struct {
	db *pgxpool.Pool
}

func NewActivityRepository(db *pgxpool.Pool) *ActivityRepository {
	return &ActivityRepository{db: db}
}

func (r *ActivityRepository) Create(ctx context.Context, a *domain.Activity) error {
	return r.db.QueryRow(ctx,
		`INSERT INTO activity_log (user_id, activity_type, description, points_change)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at`,
		a.UserID, a.ActivityType, a.Description, a.PointsChange,
	).Scan(&a.ID, &a.CreatedAt)
}

func (r *ActivityRepository) CreateTx(ctx context.Context, tx pgx.Tx, a *domain.Activity) error {
	return tx.QueryRow(ctx,
		`INSERT INTO activity_log (user_id, activity_type, description, points_change)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at`,
		a.UserID, a.ActivityType, a.Description, a.PointsChange,
	).Scan(&a.ID, &a.CreatedAt)
}

func (r *ActivityRepository) GetByUserID(ctx context.Context, userID int64, limit int) ([]domain.Activity, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, activity_type, description, points_change, created_at
		 FROM activity_log WHERE user_id = $1
		 ORDER BY created_at DESC LIMIT $2`,
		userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []domain.Activity
	for rows.Next() {
		var a domain.Activity
		if err := rows.Scan(&a.ID, &a.UserID, &a.ActivityType, &a.Description, &a.PointsChange, &a.CreatedAt); err != nil {
			return nil, err
		}
		res = append(res, a)
	}
	return res, rows.Err()
}
