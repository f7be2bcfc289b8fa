package models

import "time"

// User is an identity record. PasswordHash holds a bcrypt digest and must
// never leave the server; transport DTOs omit it.
type User struct {
	ID             string    `db:"id"`
	Email          string    `db:"email"`
	PasswordHash   string    `db:"password_hash"`
	IsAdmin        bool      `db:"is_admin"`
	CompletedGames []string  `db:"-"`
	CreatedAt      time.Time `db:"created_at"`
}
