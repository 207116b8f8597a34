package service

import (
	"context"

	"app/internal/model"
	"app/internal/pubsub"
	"app/internal/repository"

	"github.com/rs/zerolog"
)

// ScoreService records and lists per-user practice scores.
type ScoreService interface {
	Record(ctx context.Context, userID string, module model.Module, score float64) (*model.Score, error)
	List(ctx context.Context, userID string) ([]model.Score, error)
	ListByModule(ctx context.Context, userID string, module model.Module) ([]model.Score, error)
}

type scoreService struct {
	repo          repository.ScoreRepository
	publisher     pubsub.Publisher
	activityTopic string
	logger        zerolog.Logger
}

// NewScoreService creates a new ScoreService. publisher may be nil to
// disable activity events.
func NewScoreService(repo repository.ScoreRepository, publisher pubsub.Publisher, activityTopic string, logger zerolog.Logger) ScoreService {
	return &scoreService{
		repo:          repo,
		publisher:     publisher,
		activityTopic: activityTopic,
		logger:        logger.With().Str("service", "ScoreService").Logger(),
	}
}

// Record validates module and score before any store interaction, then
// appends the score event with a server-assigned timestamp.
func (s *scoreService) Record(ctx context.Context, userID string, module model.Module, score float64) (*model.Score, error) {
	if !module.IsValid() {
		return nil, ErrInvalidModule
	}
	if !model.ValidScore(score) {
		return nil, ErrInvalidScore
	}

	stored, err := s.repo.Create(ctx, userID, module, score)
	if err != nil {
		return nil, err
	}
	s.logger.Info().
		Str("score_id", stored.ID).
		Str("user_id", userID).
		Str("module", module.String()).
		Float64("score", score).
		Msg("Score saved")

	publishActivity(ctx, s.logger, s.publisher, s.activityTopic, activityEvent{
		Type:      "score",
		UserID:    stored.UserID,
		Module:    stored.Module.String(),
		Score:     &stored.Score,
		Timestamp: stored.Timestamp,
	})
	return stored, nil
}

func (s *scoreService) List(ctx context.Context, userID string) ([]model.Score, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *scoreService) ListByModule(ctx context.Context, userID string, module model.Module) ([]model.Score, error) {
	if !module.IsValid() {
		return nil, ErrInvalidModule
	}
	return s.repo.ListByUserAndModule(ctx, userID, module)
}
