package model

import (
	"math"
	"time"
)

// Score is a single immutable practice result for a module, in [0, 100].
type Score struct {
	ID        string    `db:"id" json:"id"`
	UserID    string    `db:"user_id" json:"userId"`
	Module    Module    `db:"module" json:"module"`
	Score     float64   `db:"score" json:"score"`
	Timestamp time.Time `db:"timestamp" json:"timestamp"`
}

// ValidScore reports whether v is a finite number within [0, 100].
func ValidScore(v float64) bool {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return false
	}
	return v >= 0 && v <= 100
}
