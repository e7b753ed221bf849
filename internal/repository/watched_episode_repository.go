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

// watchedEpisodeRepository implements WatchedEpisodeRepository interface
type watchedEpisodeRepository struct {
	db *database.Postgres
}

// NewWatchedEpisodeRepository creates a new watched episode repository
func NewWatchedEpisodeRepository(db *database.Postgres) WatchedEpisodeRepository {
	return &watchedEpisodeRepository{db: db}
}

// Create inserts a watched-episode marker, relying on the
// (user_id, title_id, season, episode) unique constraint for conflict
// detection.
func (r *watchedEpisodeRepository) Create(ctx context.Context, we *domain.WatchedEpisode) error {
	query := `
		INSERT INTO watched_episodes (id, user_id, title_id, season, episode, duration, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	if we.ID == "" {
		we.ID = uuid.New().String()
	}
	if we.CreatedAt.IsZero() {
		we.CreatedAt = time.Now()
	}

	_, err := r.db.DB.ExecContext(ctx, query,
		we.ID,
		we.UserID,
		we.TitleID,
		we.Season,
		we.Episode,
		we.Duration,
		we.CreatedAt,
	)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code == "23505" { // unique_violation
				return fmt.Errorf("episode s%de%d of title %d already marked watched: %w",
					we.Season, we.Episode, we.TitleID, ErrDuplicateEntry)
			}
		}
		return fmt.Errorf("failed to create watched episode: %w", err)
	}

	return nil
}

// GetByKey retrieves a watched-episode marker by its composite key
func (r *watchedEpisodeRepository) GetByKey(ctx context.Context, userID string, key domain.EpisodeKey) (*domain.WatchedEpisode, error) {
	query := `
		SELECT id, user_id, title_id, season, episode, duration, created_at
		FROM watched_episodes
		WHERE user_id = $1 AND title_id = $2 AND season = $3 AND episode = $4
	`

	we := &domain.WatchedEpisode{}
	err := r.db.DB.QueryRowContext(ctx, query, userID, key.TitleID, key.Season, key.Episode).Scan(
		&we.ID,
		&we.UserID,
		&we.TitleID,
		&we.Season,
		&we.Episode,
		&we.Duration,
		&we.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("watched episode s%de%d of title %d not found: %w",
				key.Season, key.Episode, key.TitleID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get watched episode: %w", err)
	}

	return we, nil
}

// ListByUser retrieves all watched-episode markers for a user
func (r *watchedEpisodeRepository) ListByUser(ctx context.Context, userID string) ([]*domain.WatchedEpisode, error) {
	query := `
		SELECT id, user_id, title_id, season, episode, duration, created_at
		FROM watched_episodes
		WHERE user_id = $1
		ORDER BY created_at
	`

	rows, err := r.db.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list watched episodes: %w", err)
	}
	defer rows.Close()

	var episodes []*domain.WatchedEpisode
	for rows.Next() {
		we := &domain.WatchedEpisode{}
		err := rows.Scan(
			&we.ID,
			&we.UserID,
			&we.TitleID,
			&we.Season,
			&we.Episode,
			&we.Duration,
			&we.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan watched episode: %w", err)
		}
		episodes = append(episodes, we)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate watched episodes: %w", err)
	}

	return episodes, nil
}

// DeleteByKey deletes a watched-episode marker by its composite key
func (r *watchedEpisodeRepository) DeleteByKey(ctx context.Context, userID string, key domain.EpisodeKey) error {
	query := `DELETE FROM watched_episodes WHERE user_id = $1 AND title_id = $2 AND season = $3 AND episode = $4`

	result, err := r.db.DB.ExecContext(ctx, query, userID, key.TitleID, key.Season, key.Episode)
	if err != nil {
		return fmt.Errorf("failed to delete watched episode: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("watched episode s%de%d of title %d not found: %w",
			key.Season, key.Episode, key.TitleID, ErrNotFound)
	}

	return nil
}
