package model

import "time"

// User represents an application user record as stored in the `users`
// table. Each field corresponds to a column. The struct is used internally
// by the repository layer; handlers never expose the password hash.
//
// Fields:
//  ID           – primary key identifier of the user.
//  Name         – display name shown on the dashboard.
//  Email        – unique email address, stored lower-cased.
//  PasswordHash – bcrypt hashed password; the plaintext is never stored.
//  CreatedAt    – timestamp of registration.
//  UpdatedAt    – timestamp of last update.
type User struct {
	ID           uint64    // users.id
	Name         string    // users.name
	Email        string    // users.email
	PasswordHash string    // users.password_hash
	CreatedAt    time.Time // users.created_at
	UpdatedAt    time.Time // users.updated_at
}
