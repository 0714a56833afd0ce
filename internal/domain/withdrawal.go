package domain

import "time"

// WithdrawalStatus is the lifecycle state of a withdrawal request.
// pending -> approved | rejected; approved -> completed once a transaction
// hash is attached. rejected and completed are terminal.
type WithdrawalStatus string

const (
	WithdrawalStatusPending   WithdrawalStatus = "pending"
	WithdrawalStatusApproved  WithdrawalStatus = "approved"
	WithdrawalStatusRejected  WithdrawalStatus = "rejected"
	WithdrawalStatusCompleted WithdrawalStatus = "completed"
)

// WithdrawalRequest is a user-initiated payout awaiting admin review.
// Amount, currency and address are immutable after creation; only status and
// the processed_*/transaction_hash fields change.
type WithdrawalRequest struct {
	ID              string           `db:"id" json:"id"`
	UserID          int64            `db:"user_id" json:"user_id"`
	Username        string           `db:"username" json:"username"`
	Currency        Currency         `db:"currency" json:"currency"`
	Amount          float64          `db:"amount" json:"amount"`
	WalletAddress   string           `db:"wallet_address" json:"wallet_address"`
	Network         string           `db:"network" json:"network"`
	Memo            string           `db:"memo" json:"memo,omitempty"`
	NetworkFee      float64          `db:"network_fee" json:"network_fee"`
	NetAmount       float64          `db:"net_amount" json:"net_amount"`
	Status          WithdrawalStatus `db:"status" json:"status"`
	RequestDate     time.Time        `db:"request_date" json:"request_date"`
	ProcessedDate   *time.Time       `db:"processed_date" json:"processed_date,omitempty"`
	ProcessedBy     string           `db:"processed_by" json:"processed_by,omitempty"`
	TransactionHash string           `db:"transaction_hash" json:"transaction_hash,omitempty"`
}
