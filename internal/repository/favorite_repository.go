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

// favoriteRepository implements FavoriteRepository interface
type favoriteRepository struct {
	db *database.Postgres
}

// NewFavoriteRepository creates a new favorite repository
func NewFavoriteRepository(db *database.Postgres) FavoriteRepository {
	return &favoriteRepository{db: db}
}

// Create inserts a favorite. The (user_id, title_id) unique constraint is
// the sole arbiter of conflict; a violation surfaces as ErrDuplicateEntry.
func (r *favoriteRepository) Create(ctx context.Context, fav *domain.Favorite) error {
	query := `
		INSERT INTO favorites (id, user_id, title_id, title, number_episodes, number_seasons, media_type, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	if fav.ID == "" {
		fav.ID = uuid.New().String()
	}
	if fav.CreatedAt.IsZero() {
		fav.CreatedAt = time.Now()
	}

	_, err := r.db.DB.ExecContext(ctx, query,
		fav.ID,
		fav.UserID,
		fav.TitleID,
		fav.Title,
		fav.NumberEpisodes,
		fav.NumberSeasons,
		fav.MediaType,
		fav.CreatedAt,
	)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code == "23505" { // unique_violation
				return fmt.Errorf("favorite for title %d already exists: %w", fav.TitleID, ErrDuplicateEntry)
			}
		}
		return fmt.Errorf("failed to create favorite: %w", err)
	}

	return nil
}

// GetByKey retrieves a favorite by its composite key
func (r *favoriteRepository) GetByKey(ctx context.Context, userID string, titleID int64) (*domain.Favorite, error) {
	query := `
		SELECT id, user_id, title_id, title, number_episodes, number_seasons, media_type, created_at
		FROM favorites
		WHERE user_id = $1 AND title_id = $2
	`

	fav := &domain.Favorite{}
	var numberEpisodes, numberSeasons sql.NullInt64
	var mediaType sql.NullString

	err := r.db.DB.QueryRowContext(ctx, query, userID, titleID).Scan(
		&fav.ID,
		&fav.UserID,
		&fav.TitleID,
		&fav.Title,
		&numberEpisodes,
		&numberSeasons,
		&mediaType,
		&fav.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("favorite for title %d not found: %w", titleID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get favorite: %w", err)
	}

	if numberEpisodes.Valid {
		n := int(numberEpisodes.Int64)
		fav.NumberEpisodes = &n
	}
	if numberSeasons.Valid {
		n := int(numberSeasons.Int64)
		fav.NumberSeasons = &n
	}
	if mediaType.Valid {
		fav.MediaType = &mediaType.String
	}

	return fav, nil
}

// ListByUser retrieves all favorites for a user
func (r *favoriteRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Favorite, error) {
	query := `
		SELECT id, user_id, title_id, title, number_episodes, number_seasons, media_type, created_at
		FROM favorites
		WHERE user_id = $1
		ORDER BY created_at
	`

	rows, err := r.db.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}
	defer rows.Close()

	var favorites []*domain.Favorite
	for rows.Next() {
		fav := &domain.Favorite{}
		var numberEpisodes, numberSeasons sql.NullInt64
		var mediaType sql.NullString

		err := rows.Scan(
			&fav.ID,
			&fav.UserID,
			&fav.TitleID,
			&fav.Title,
			&numberEpisodes,
			&numberSeasons,
			&mediaType,
			&fav.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan favorite: %w", err)
		}

		if numberEpisodes.Valid {
			n := int(numberEpisodes.Int64)
			fav.NumberEpisodes = &n
		}
		if numberSeasons.Valid {
			n := int(numberSeasons.Int64)
			fav.NumberSeasons = &n
		}
		if mediaType.Valid {
			fav.MediaType = &mediaType.String
		}

		favorites = append(favorites, fav)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate favorites: %w", err)
	}

	return favorites, nil
}

// DeleteByKey deletes a favorite by its composite key
func (r *favoriteRepository) DeleteByKey(ctx context.Context, userID string, titleID int64) error {
	query := `DELETE FROM favorites WHERE user_id = $1 AND title_id = $2`

	result, err := r.db.DB.ExecContext(ctx, query, userID, titleID)
	if err != nil {
		return fmt.Errorf("failed to delete favorite: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("favorite for title %d not found: %w", titleID, ErrNotFound)
	}

	return nil
}
