package dto

import (
	"time"

	"app/internal/model"
)

// ScoreCreateRequest is used for incoming score submissions. Score is a
// pointer so a missing field is distinguishable from a legitimate zero.
type ScoreCreateRequest struct {
	Module string   `json:"module" validate:"required,oneof=rcp nose burn-skins"`
	Score  *float64 `json:"score" validate:"required,gte=0,lte=100"`
}

// ScoreResponse is a stored score as returned in API responses.
type ScoreResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Module    string    `json:"module"`
	Score     float64   `json:"score"`
	Timestamp time.Time `json:"timestamp"`
}

// NewScoreResponse maps a domain score record to its response shape.
func NewScoreResponse(s model.Score) ScoreResponse {
	return ScoreResponse{
		ID:        s.ID,
		UserID:    s.UserID,
		Module:    s.Module.String(),
		Score:     s.Score,
		Timestamp: s.Timestamp,
	}
}

// NewScoreResponses maps a slice of scores, preserving order.
func NewScoreResponses(scores []model.Score) []ScoreResponse {
	out := make([]ScoreResponse, 0, len(scores))
	for _, s := range scores {
		out = append(out, NewScoreResponse(s))
	}
	return out
}
