package model

import "time"

// Usage is a single immutable "user practiced module X" event. Records are
// append-only: there is no update or delete path for them.
type Usage struct {
	ID        string    `db:"id" json:"id"`
	UserID    string    `db:"user_id" json:"userId"`
	Module    Module    `db:"module" json:"module"`
	Timestamp time.Time `db:"timestamp" json:"timestamp"`
}
