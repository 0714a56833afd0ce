package service

import "errors"

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrInvalidAmount     = errors.New("invalid amount")
	ErrBelowMinimum      = errors.New("amount below minimum")
	ErrInvalidAddress    = errors.New("invalid wallet address")
	ErrInvalidNetwork    = errors.New("network not supported for currency")
	ErrAlreadyClaimed    = errors.New("already claimed")
	ErrNotCompleted      = errors.New("task not completed")
	ErrNotFound          = errors.New("not found")
	ErrAlreadyResolved   = errors.New("request already resolved")
	ErrInvalidDecision   = errors.New("invalid decision")
)
