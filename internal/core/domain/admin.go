package domain

import "time"

// Admin models the single privileged identity able to manage the gallery.
// PasswordHash is a bcrypt hash; the plaintext is never stored.
type Admin struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
