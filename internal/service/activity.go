package service

import (
	"context"
	"encoding/json"
	"time"

	"app/internal/pubsub"

	"github.com/rs/zerolog"
)

// activityEvent is the payload published to the activity topic after a
// usage or score record is stored.
type activityEvent struct {
	Type      string    `json:"type"`
	UserID    string    `json:"userId"`
	Module    string    `json:"module"`
	Score     *float64  `json:"score,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// publishActivity sends the event to the configured topic. Publishing is
// best-effort: the record is already stored, so failures are logged and
// never propagated to the caller.
func publishActivity(ctx context.Context, logger zerolog.Logger, publisher pubsub.Publisher, topic string, event activityEvent) {
	if publisher == nil || topic == "" {
		return
	}
	payload, err := json.Marshal(event)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to marshal activity event")
		return
	}
	if _, err := publisher.Publish(ctx, topic, payload); err != nil {
		logger.Error().Err(err).Str("topic", topic).Msg("Failed to publish activity event")
	}
}
