package dto

import (
	"time"

	"app/internal/model"
)

// UsageCreateRequest is used for incoming usage record requests.
type UsageCreateRequest struct {
	Module string `json:"module" validate:"required,oneof=rcp nose burn-skins"`
}

// UsageResponse is a stored usage event as returned in API responses.
type UsageResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Module    string    `json:"module"`
	Timestamp time.Time `json:"timestamp"`
}

// NewUsageResponse maps a domain usage record to its response shape.
func NewUsageResponse(u model.Usage) UsageResponse {
	return UsageResponse{
		ID:        u.ID,
		UserID:    u.UserID,
		Module:    u.Module.String(),
		Timestamp: u.Timestamp,
	}
}

// NewUsageResponses maps a slice of usage records, preserving order. The
// result is never nil so empty lists encode as [] rather than null.
func NewUsageResponses(usages []model.Usage) []UsageResponse {
	out := make([]UsageResponse, 0, len(usages))
	for _, u := range usages {
		out = append(out, NewUsageResponse(u))
	}
	return out
}
