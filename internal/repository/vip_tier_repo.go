package repository

import (
	"context"
	"errors"

	"github.com/Gbothemy/crypto-earning/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type VIPTierRepository struct {
	db *pgxpool.Pool
}

func NewVIPTierRepository(db *pgxpool.Pool) *VIPTierRepository {
	return &VIPTierRepository{db: db}
}

// List returns the tier catalog ordered by level range.
func (r *VIPTierRepository) List(ctx context.Context) ([]domain.VIPTier, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, tier_name, min_level, max_level, conversion_rate, tier_icon
		 FROM vip_tiers ORDER BY min_level`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tiers []domain.VIPTier
	for rows.Next() {
		var t domain.VIPTier
		if err := rows.Scan(&t.ID, &t.TierName, &t.MinLevel, &t.MaxLevel, &t.ConversionRate, &t.TierIcon); err != nil {
			return nil, err
		}
		tiers = append(tiers, t)
	}
	return tiers, rows.Err()
}

// GetByLevel finds the tier whose inclusive range contains level.
// Catalog gaps surface as ErrNotFound; picking a fallback is the caller's call.
func (r *VIPTierRepository) GetByLevel(ctx context.Context, level int) (*domain.VIPTier, error) {
	var t domain.VIPTier
	err := r.db.QueryRow(ctx,
		`SELECT id, tier_name, min_level, max_level, conversion_rate, tier_icon
		 FROM vip_tiers WHERE min_level <= $1 AND max_level >= $1`,
		level,
	).Scan(&t.ID, &t.TierName, &t.MinLevel, &t.MaxLevel, &t.ConversionRate, &t.TierIcon)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}
