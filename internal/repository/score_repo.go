package repository

import (
	"context"
	"database/sql"
	"fmt"

	"app/internal/model"
)

// ScoreRepository is the append-only store for score events.
type ScoreRepository interface {
	Create(ctx context.Context, userID string, module model.Module, score float64) (*model.Score, error)
	ListByUser(ctx context.Context, userID string) ([]model.Score, error)
	ListByUserAndModule(ctx context.Context, userID string, module model.Module) ([]model.Score, error)
	AverageByModule(ctx context.Context) ([]ModuleScoreAggregate, error)
}

// ModuleScoreAggregate is the raw per-module mean before rounding, paired
// with the number of contributing records.
type ModuleScoreAggregate struct {
	Module  model.Module
	Average float64
	Count   int
}

type scoreRepo struct {
	db *sql.DB
}

// NewScoreRepo creates a new ScoreRepository.
func NewScoreRepo(db *sql.DB) ScoreRepository {
	return &scoreRepo{db: db}
}

func (r *scoreRepo) Create(ctx context.Context, userID string, module model.Module, score float64) (*model.Score, error) {
	query := `
		INSERT INTO scores (user_id, module, score)
		VALUES ($1, $2, $3)
		RETURNING id, user_id, module, score, timestamp
	`
	var s model.Score
	err := r.db.QueryRowContext(ctx, query, userID, module.String(), score).Scan(
		&s.ID,
		&s.UserID,
		&s.Module,
		&s.Score,
		&s.Timestamp,
	)
	if err != nil {
		return nil, fmt.Errorf("creating score record: %w", err)
	}
	return &s, nil
}

func (r *scoreRepo) ListByUser(ctx context.Context, userID string) ([]model.Score, error) {
	query := `
		SELECT id, user_id, module, score, timestamp
		FROM scores
		WHERE user_id = $1
		ORDER BY timestamp DESC
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("listing scores for user %s: %w", userID, err)
	}
	defer rows.Close()
	return scanScores(rows)
}

func (r *scoreRepo) ListByUserAndModule(ctx context.Context, userID string, module model.Module) ([]model.Score, error) {
	query := `
		SELECT id, user_id, module, score, timestamp
		FROM scores
		WHERE user_id = $1 AND module = $2
		ORDER BY timestamp DESC
	`
	rows, err := r.db.QueryContext(ctx, query, userID, module.String())
	if err != nil {
		return nil, fmt.Errorf("listing scores for user %s module %s: %w", userID, module, err)
	}
	defer rows.Close()
	return scanScores(rows)
}

// AverageByModule returns the unrounded mean per module present in the table.
func (r *scoreRepo) AverageByModule(ctx context.Context) ([]ModuleScoreAggregate, error) {
	query := `
		SELECT module, AVG(score), COUNT(*)
		FROM scores
		GROUP BY module
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("averaging scores by module: %w", err)
	}
	defer rows.Close()

	var aggregates []ModuleScoreAggregate
	for rows.Next() {
		var a ModuleScoreAggregate
		if err := rows.Scan(&a.Module, &a.Average, &a.Count); err != nil {
			return nil, fmt.Errorf("scanning score aggregate: %w", err)
		}
		aggregates = append(aggregates, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading score aggregates: %w", err)
	}
	return aggregates, nil
}

func scanScores(rows *sql.Rows) ([]model.Score, error) {
	var scores []model.Score
	for rows.Next() {
		var s model.Score
		if err := rows.Scan(&s.ID, &s.UserID, &s.Module, &s.Score, &s.Timestamp); err != nil {
			return nil, fmt.Errorf("scanning score record: %w", err)
		}
		scores = append(scores, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading score records: %w", err)
	}
	return scores, nil
}
