package account

import (
	"time"

	"github.com/google/uuid"
)

// Account is a login identity. There is no email column; the reset mail
// recipient is derived from the username by the account service.
type Account struct {
	ID           uuid.UUID
	Username     string
	PasswordHash string

	// Reset token state lives on the account row. A nil token means no
	// reset is pending; a successful reset clears both fields.
	ResetToken          *string
	ResetTokenExpiresAt *time.Time

	CreatedAt time.Time
}
