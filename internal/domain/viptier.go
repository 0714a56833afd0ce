package domain

// BaseConversionRate is the points-per-unit rate applied when no tier matches
// the user's level (a gap in the catalog, or a level outside all ranges).
const BaseConversionRate = 10000

// VIPTier is a static catalog row covering an inclusive level range.
// ConversionRate is the number of points exchanged for one unit of any
// supported currency; there is deliberately no per-currency rate table.
type VIPTier struct {
	ID             int64  `db:"id" json:"id"`
	TierName       string `db:"tier_name" json:"tier_name"`
	MinLevel       int    `db:"min_level" json:"min_level"`
	MaxLevel       int    `db:"max_level" json:"max_level"`
	ConversionRate int64  `db:"conversion_rate" json:"conversion_rate"`
	TierIcon       string `db:"tier_icon" json:"tier_icon"`
}

// Contains reports whether level falls inside the tier's range.
func (t *VIPTier) Contains(level int) bool {
	return level >= t.MinLevel && level <= t.MaxLevel
}

// FallbackTier is the tier applied when the catalog has no row for a level.
func FallbackTier() *VIPTier {
	return &VIPTier{
		TierName:       "Bronze",
		MinLevel:       1,
		MaxLevel:       5,
		ConversionRate: BaseConversionRate,
		TierIcon:       "bronze",
	}
}
