package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is a dashboard account. Passwords are stored as bcrypt hashes.
type User struct {
	ID           uuid.UUID
	CreatedAt    time.Time
	UpdatedAt    time.Time
	Username     string
	Email        string
	PasswordHash string
	IsSuperuser  bool
}
