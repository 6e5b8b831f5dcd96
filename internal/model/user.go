package model

import "time"

// User represents an application user record as stored in the `users`
// table.  The password hash is excluded from JSON serialization entirely so
// that no handler can leak it by returning the struct directly.
//
// Fields:
//  ID           – primary key identifier of the user.
//  Name         – display name of the user.
//  Email        – unique email address.
//  Address      – free-form postal address.
//  PasswordHash – bcrypt hashed password, never the plaintext.
//  Role         – account role (user, owner or admin).
//  CreatedAt    – timestamp of creation.
//  UpdatedAt    – timestamp of last update.
type User struct {
	ID           uint64    `json:"id"`         // users.id
	Name         string    `json:"name"`       // users.name
	Email        string    `json:"email"`      // users.email
	Address      string    `json:"address"`    // users.address
	PasswordHash string    `json:"-"`          // users.password_hash
	Role         Role      `json:"role"`       // users.role
	CreatedAt    time.Time `json:"created_at"` // users.created_at
	UpdatedAt    time.Time `json:"updated_at"` // users.updated_at
}
