package account

import "errors"

var (
	ErrAccountNotFound   = errors.New("account not found")
	ErrUsernameTaken     = errors.New("username already exists")
	ErrInvalidResetToken = errors.New("invalid or expired reset token")
)
