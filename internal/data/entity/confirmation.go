package entity

import (
	"time"

	"github.com/google/uuid"
)

// ConfirmationCode proves control of the registered email address.
// Only the bcrypt hash of the code is stored; the clear code exists
// only in the email sent to the user.
type ConfirmationCode struct {
	BaseSimple
	UserID    uuid.UUID `db:"user_id"`
	Email     string    `db:"email"`
	CodeHash  string    `db:"code_hash"`
	ExpiresAt time.Time `db:"expires_at"`
	IsUsed    bool      `db:"is_used"`
}
