package repository

import (
	"context"
	"database/sql"
	"fmt"

	"app/internal/model"
)

// UsageRepository is the append-only store for usage events. Per-user queries
// return records in descending timestamp order.
type UsageRepository interface {
	Create(ctx context.Context, userID string, module model.Module) (*model.Usage, error)
	ListByUser(ctx context.Context, userID string) ([]model.Usage, error)
	ListByUserAndModule(ctx context.Context, userID string, module model.Module) ([]model.Usage, error)
	Count(ctx context.Context) (int, error)
	CountByModule(ctx context.Context) ([]model.ModuleCount, error)
	ListRecent(ctx context.Context, limit int) ([]model.Usage, error)
}

type usageRepo struct {
	db *sql.DB
}

// NewUsageRepo creates a new UsageRepository.
func NewUsageRepo(db *sql.DB) UsageRepository {
	return &usageRepo{db: db}
}

func (r *usageRepo) Create(ctx context.Context, userID string, module model.Module) (*model.Usage, error) {
	query := `
		INSERT INTO usages (user_id, module)
		VALUES ($1, $2)
		RETURNING id, user_id, module, timestamp
	`
	var u model.Usage
	err := r.db.QueryRowContext(ctx, query, userID, module.String()).Scan(
		&u.ID,
		&u.UserID,
		&u.Module,
		&u.Timestamp,
	)
	if err != nil {
		return nil, fmt.Errorf("creating usage record: %w", err)
	}
	return &u, nil
}

func (r *usageRepo) ListByUser(ctx context.Context, userID string) ([]model.Usage, error) {
	query := `
		SELECT id, user_id, module, timestamp
		FROM usages
		WHERE user_id = $1
		ORDER BY timestamp DESC
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("listing usage records for user %s: %w", userID, err)
	}
	defer rows.Close()
	return scanUsages(rows)
}

func (r *usageRepo) ListByUserAndModule(ctx context.Context, userID string, module model.Module) ([]model.Usage, error) {
	query := `
		SELECT id, user_id, module, timestamp
		FROM usages
		WHERE user_id = $1 AND module = $2
		ORDER BY timestamp DESC
	`
	rows, err := r.db.QueryContext(ctx, query, userID, module.String())
	if err != nil {
		return nil, fmt.Errorf("listing usage records for user %s module %s: %w", userID, module, err)
	}
	defer rows.Close()
	return scanUsages(rows)
}

func (r *usageRepo) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM usages`).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting usage records: %w", err)
	}
	return count, nil
}

// CountByModule returns one entry per module actually present in the table.
func (r *usageRepo) CountByModule(ctx context.Context) ([]model.ModuleCount, error) {
	query := `
		SELECT module, COUNT(*)
		FROM usages
		GROUP BY module
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("counting usage by module: %w", err)
	}
	defer rows.Close()

	var counts []model.ModuleCount
	for rows.Next() {
		var mc model.ModuleCount
		if err := rows.Scan(&mc.Module, &mc.Count); err != nil {
			return nil, fmt.Errorf("scanning usage count: %w", err)
		}
		counts = append(counts, mc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading usage counts: %w", err)
	}
	return counts, nil
}

func (r *usageRepo) ListRecent(ctx context.Context, limit int) ([]model.Usage, error) {
	query := `
		SELECT id, user_id, module, timestamp
		FROM usages
		ORDER BY timestamp DESC
		LIMIT $1
	`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("listing recent usage records: %w", err)
	}
	defer rows.Close()
	return scanUsages(rows)
}

func scanUsages(rows *sql.Rows) ([]model.Usage, error) {
	var usages []model.Usage
	for rows.Next() {
		var u model.Usage
		if err := rows.Scan(&u.ID, &u.UserID, &u.Module, &u.Timestamp); err != nil {
			return nil, fmt.Errorf("scanning usage record: %w", err)
		}
		usages = append(usages, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading usage records: %w", err)
	}
	return usages, nil
}
