package domain

import "time"

// User is a registered shopper. A user created as a side effect of guest
// checkout has an empty PasswordHash and cannot log in until they sign up
// with the same email.
type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name,omitempty"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CanLogin reports whether the account has credentials.
func (u User) CanLogin() bool {
	return u.PasswordHash != ""
}
