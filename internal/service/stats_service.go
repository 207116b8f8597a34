package service

import (
	"context"
	"math"

	"app/internal/model"
	"app/internal/repository"

	"golang.org/x/sync/errgroup"
)

// recentActivityLimit is how many of the latest usage records the snapshot
// carries.
const recentActivityLimit = 10

// StatsService computes the aggregate statistics snapshot on demand.
type StatsService interface {
	GetAllStats(ctx context.Context) (*model.Stats, error)
}

type statsService struct {
	userRepo  repository.UserRepository
	usageRepo repository.UsageRepository
	scoreRepo repository.ScoreRepository
}

// NewStatsService creates a new StatsService.
func NewStatsService(userRepo repository.UserRepository, usageRepo repository.UsageRepository, scoreRepo repository.ScoreRepository) StatsService {
	return &statsService{
		userRepo:  userRepo,
		usageRepo: usageRepo,
		scoreRepo: scoreRepo,
	}
}

// GetAllStats fans out the five sub-queries concurrently and joins them.
// If any sub-query fails the whole call fails: no partial snapshot is ever
// returned.
func (s *statsService) GetAllStats(ctx context.Context) (*model.Stats, error) {
	var (
		totalUsers     int
		totalUsage     int
		usageByModule  []model.ModuleCount
		scoreAverages  []repository.ModuleScoreAggregate
		recentActivity []model.Usage
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		totalUsers, err = s.userRepo.Count(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		totalUsage, err = s.usageRepo.Count(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		usageByModule, err = s.usageRepo.CountByModule(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		scoreAverages, err = s.scoreRepo.AverageByModule(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		recentActivity, err = s.usageRepo.ListRecent(ctx, recentActivityLimit)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	averages := make([]model.ModuleAverage, 0, len(scoreAverages))
	for _, agg := range scoreAverages {
		averages = append(averages, model.ModuleAverage{
			Module: agg.Module,
			// Round half away from zero; scores are non-negative, so this
			// is round-half-up.
			Average: int(math.Round(agg.Average)),
			Count:   agg.Count,
		})
	}

	return &model.Stats{
		TotalUsers:     totalUsers,
		TotalUsage:     totalUsage,
		UsageByModule:  usageByModule,
		AverageScores:  averages,
		RecentActivity: recentActivity,
	}, nil
}
