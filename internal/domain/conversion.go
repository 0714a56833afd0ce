package domain

import "time"

// MinConversionPoints is the smallest points amount a single conversion accepts.
const MinConversionPoints = 1000

// Conversion is an immutable log entry of one points-to-currency exchange.
// The rate is captured at conversion time since tier rates change as users
// level up.
type Conversion struct {
	ID             int64     `db:"id" json:"id"`
	UserID         int64     `db:"user_id" json:"user_id"`
	PointsConverted int64    `db:"points_converted" json:"points_converted"`
	Currency       Currency  `db:"currency" json:"currency"`
	AmountReceived float64   `db:"amount_received" json:"amount_received"`
	ConversionRate int64     `db:"conversion_rate" json:"conversion_rate"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}
