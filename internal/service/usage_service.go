package service

import (
	"context"

	"app/internal/model"
	"app/internal/pubsub"
	"app/internal/repository"

	"github.com/rs/zerolog"
)

// UsageService records and lists per-user usage events. The user ID always
// comes from the verified credential, never from the request payload.
type UsageService interface {
	Record(ctx context.Context, userID string, module model.Module) (*model.Usage, error)
	List(ctx context.Context, userID string) ([]model.Usage, error)
	ListByModule(ctx context.Context, userID string, module model.Module) ([]model.Usage, error)
}

type usageService struct {
	repo          repository.UsageRepository
	publisher     pubsub.Publisher
	activityTopic string
	logger        zerolog.Logger
}

// NewUsageService creates a new UsageService. publisher may be nil to
// disable activity events.
func NewUsageService(repo repository.UsageRepository, publisher pubsub.Publisher, activityTopic string, logger zerolog.Logger) UsageService {
	return &usageService{
		repo:          repo,
		publisher:     publisher,
		activityTopic: activityTopic,
		logger:        logger.With().Str("service", "UsageService").Logger(),
	}
}

// Record validates the module and appends a usage event with a
// server-assigned timestamp. Invalid modules are rejected before any store
// interaction.
func (s *usageService) Record(ctx context.Context, userID string, module model.Module) (*model.Usage, error) {
	if !module.IsValid() {
		return nil, ErrInvalidModule
	}

	usage, err := s.repo.Create(ctx, userID, module)
	if err != nil {
		return nil, err
	}
	s.logger.Info().
		Str("usage_id", usage.ID).
		Str("user_id", userID).
		Str("module", module.String()).
		Msg("Usage record created")

	publishActivity(ctx, s.logger, s.publisher, s.activityTopic, activityEvent{
		Type:      "usage",
		UserID:    usage.UserID,
		Module:    usage.Module.String(),
		Timestamp: usage.Timestamp,
	})
	return usage, nil
}

func (s *usageService) List(ctx context.Context, userID string) ([]model.Usage, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *usageService) ListByModule(ctx context.Context, userID string, module model.Module) ([]model.Usage, error) {
	if !module.IsValid() {
		return nil, ErrInvalidModule
	}
	return s.repo.ListByUserAndModule(ctx, userID, module)
}
