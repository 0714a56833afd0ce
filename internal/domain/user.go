package domain

import "time"

type User struct {
	ID             int64      `db:"id" json:"id"`
	Username       string     `db:"username" json:"username"`
	Email          string     `db:"email" json:"email,omitempty"`
	Avatar         string     `db:"avatar" json:"avatar,omitempty"`
	IsAdmin        bool       `db:"is_admin" json:"is_admin"`
	Points         int64      `db:"points" json:"points"`
	VIPLevel       int        `db:"vip_level" json:"vip_level"`
	Exp            int64      `db:"exp" json:"exp"`
	MaxExp         int64      `db:"max_exp" json:"max_exp"`
	GiftPoints     int64      `db:"gift_points" json:"gift_points"`
	CompletedTasks int        `db:"completed_tasks" json:"completed_tasks"`
	DayStreak      int        `db:"day_streak" json:"day_streak"`
	LastClaim      *time.Time `db:"last_claim" json:"last_claim,omitempty"`
	CreatedAt      time.Time  `db:"created_at" json:"created_at"`
}

// Balance holds one amount per supported currency for a user.
type Balance struct {
	UserID int64   `db:"user_id" json:"user_id"`
	SOL    float64 `db:"sol" json:"sol"`
	ETH    float64 `db:"eth" json:"eth"`
	USDT   float64 `db:"usdt" json:"usdt"`
	USDC   float64 `db:"usdc" json:"usdc"`
}

// Amount returns the balance in the given currency.
func (b *Balance) Amount(c Currency) float64 {
	switch c {
	case CurrencySOL:
		return b.SOL
	case CurrencyETH:
		return b.ETH
	case CurrencyUSDT:
		return b.USDT
	case CurrencyUSDC:
		return b.USDC
	}
	return 0
}

// AddExp applies earned experience, rolling levels over while exp reaches the
// level cap. Each level-up raises the cap by 25%.
func (u *User) AddExp(gained int64) (levelsGained int) {
	u.Exp += gained
	for u.Exp >= u.MaxExp && u.MaxExp > 0 {
		u.Exp -= u.MaxExp
		u.MaxExp += u.MaxExp / 4
		u.VIPLevel++
		levelsGained++
	}
	return levelsGained
}
