package repository

import (
	"context"

	"github.com/Gbothemy/crypto-earning/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type NotificationRepository struct {
	db *pgxpool.Pool
}

func NewNotificationRepository(db *pgxpool.Pool) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) Create(ctx context.Context, n *domain.Notification) error {
	return r.db.QueryRow(ctx,
		`INSERT INTO notifications (user_id, notification_type, title, message, icon)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at`,
		n.UserID, n.NotificationType, n.Title, n.Message, n.Icon,
	).Scan(&n.ID, &n.CreatedAt)
}

// CreateTx inserts a notification inside an existing transaction so workflow
// side effects commit or roll back with the workflow itself.
func (r *NotificationRepository) CreateTx(ctx context.Context, tx pgx.Tx, n *domain.Notification) error {
	return tx.QueryRow(ctx,
		`INSERT INTO notifications (user_id, notification_type, title, message, icon)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at`,
		n.UserID, n.NotificationType, n.Title, n.Message, n.Icon,
	).Scan(&n.ID, &n.CreatedAt)
}

// GetByUserID lists notifications newest first. unreadOnly narrows to unread.
func (r *NotificationRepository) GetByUserID(ctx context.Context, userID int64, unreadOnly bool) ([]domain.Notification, error) {
	q := `SELECT id, user_id, notification_type, title, message, COALESCE(icon, ''), is_read, created_at
	      FROM notifications WHERE user_id = $1`
	if unreadOnly {
		q += ` AND is_read = false`
	}
	q += ` ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []domain.Notification
	for rows.Next() {
		var n domain.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.NotificationType, &n.Title, &n.Message, &n.Icon, &n.IsRead, &n.CreatedAt); err != nil {
			return nil, err
		}
		res = append(res, n)
	}
	return res, rows.Err()
}

// MarkRead flips is_read; the user_id guard keeps users off each other's rows.
func (r *NotificationRepository) MarkRead(ctx context.Context, id, userID int64) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE notifications SET is_read = true WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *NotificationRepository) Delete(ctx context.Context, id, userID int64) error {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM notifications WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// CountForUser returns the user's notification count filtered by read state.
func (r *NotificationRepository) CountForUser(ctx context.Context, userID int64, isRead bool) (int, error) {
	var n int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND is_read = $2`,
		userID, isRead).Scan(&n)
	return n, err
}
