package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/galexandre/showtrack/internal/domain"
	"github.com/galexandre/showtrack/pkg/database"
)

// completedSeriesRepository implements CompletedSeriesRepository interface
type completedSeriesRepository struct {
	db *database.Postgres
}

// NewCompletedSeriesRepository creates a new completed series repository
func NewCompletedSeriesRepository(db *database.Postgres) CompletedSeriesRepository {
	return &completedSeriesRepository{db: db}
}

// Create inserts a completed-series marker, relying on the (user_id, title_id)
// unique constraint for conflict detection.
func (r *completedSeriesRepository) Create(ctx context.Context, cs *domain.CompletedSeries) error {
	query := `
		INSERT INTO completed_series (id, user_id, title_id, created_at)
		VALUES ($1, $2, $3, $4)
	`

	if cs.ID == "" {
		cs.ID = uuid.New().String()
	}
	if cs.CreatedAt.IsZero() {
		cs.CreatedAt = time.Now()
	}

	_, err := r.db.DB.ExecContext(ctx, query, cs.ID, cs.UserID, cs.TitleID, cs.CreatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code == "23505" { // unique_violation
				return fmt.Errorf("series %d already marked completed: %w", cs.TitleID, ErrDuplicateEntry)
			}
		}
		return fmt.Errorf("failed to create completed series: %w", err)
	}

	return nil
}

// GetByKey retrieves a completed-series marker by its composite key
func (r *completedSeriesRepository) GetByKey(ctx context.Context, userID string, titleID int64) (*domain.CompletedSeries, error) {
	query := `
		SELECT id, user_id, title_id, created_at
		FROM completed_series
		WHERE user_id = $1 AND title_id = $2
	`

	cs := &domain.CompletedSeries{}
	err := r.db.DB.QueryRowContext(ctx, query, userID, titleID).Scan(
		&cs.ID,
		&cs.UserID,
		&cs.TitleID,
		&cs.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("completed series %d not found: %w", titleID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get completed series: %w", err)
	}

	return cs, nil
}

// ListByUser retrieves all completed-series markers for a user
func (r *completedSeriesRepository) ListByUser(ctx context.Context, userID string) ([]*domain.CompletedSeries, error) {
	query := `
		SELECT id, user_id, title_id, created_at
		FROM completed_series
		WHERE user_id = $1
		ORDER BY created_at
	`

	rows, err := r.db.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list completed series: %w", err)
	}
	defer rows.Close()

	var series []*domain.CompletedSeries
	for rows.Next() {
		cs := &domain.CompletedSeries{}
		if err := rows.Scan(&cs.ID, &cs.UserID, &cs.TitleID, &cs.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan completed series: %w", err)
		}
		series = append(series, cs)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate completed series: %w", err)
	}

	return series, nil
}

// DeleteByKey deletes a completed-series marker by its composite key
func (r *completedSeriesRepository) DeleteByKey(ctx context.Context, userID string, titleID int64) error {
	query := `DELETE FROM completed_series WHERE user_id = $1 AND title_id = $2`

	result, err := r.db.DB.ExecContext(ctx, query, userID, titleID)
	if err != nil {
		return fmt.Errorf("failed to delete completed series: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("completed series %d not found: %w", titleID, ErrNotFound)
	}

	return nil
}
