package service

import "errors"

// Ledger errors. All are user-visible precondition failures; none leave
// partial effects behind.
var (
	ErrNotFound             = errors.New("not found")
	ErrInsufficientFunds    = errors.New("insufficient funds")
	ErrInvalidState         = errors.New("request is not pending")
	ErrDuplicateTransaction = errors.New("transaction id already used")
	ErrAlreadyClaimed       = errors.New("gift already claimed")
	ErrCodeExhausted        = errors.New("gift code exhausted")
	ErrCooldownActive       = errors.New("earning claim cooldown active")
	ErrInvalidAmount        = errors.New("invalid amount")
)
