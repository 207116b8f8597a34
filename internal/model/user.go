package model

import "time"

// User represents a registered user. PasswordHash is never serialized.
type User struct {
	UID          string    `db:"uid" json:"uid"`
	Email        string    `db:"email" json:"email"`
	DisplayName  *string   `db:"display_name" json:"displayName,omitempty"`
	PhotoURL     *string   `db:"photo_url" json:"photoURL,omitempty"`
	PasswordHash string    `db:"password_hash" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
	LastLogin    time.Time `db:"last_login" json:"lastLogin"`
}
