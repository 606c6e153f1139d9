package account

import (
	"context"
	"time"
)

// Repository defines persistence operations for accounts.
type Repository interface {
	Create(ctx context.Context, account *Account) error
	GetByUsername(ctx context.Context, username string) (*Account, error)
	Count(ctx context.Context) (int64, error)

	// SetResetToken stores a pending reset token and its expiry on the
	// account row, replacing any previous one.
	SetResetToken(ctx context.Context, username, token string, expiresAt time.Time) error

	// RedeemResetToken atomically replaces the password hash and clears the
	// reset token fields, but only where username and token match and the
	// expiry is after now. Returns ErrInvalidResetToken when no row matched.
	RedeemResetToken(ctx context.Context, username, token, newPasswordHash string, now time.Time) error
}
