package repository

import (
	"context"
	"time"

	"github.com/galexandre/showtrack/internal/domain"
)

// UserRepository defines methods for user operations
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) error
}

// PasswordResetRepository defines methods for recovery code operations
type PasswordResetRepository interface {
	Create(ctx context.Context, code *domain.PasswordResetCode) error
	// FindValidByCode returns the most recent row matching code whose
	// expiry is after now, or ErrNotFound.
	FindValidByCode(ctx context.Context, code string, now time.Time) (*domain.PasswordResetCode, error)
	DeleteByID(ctx context.Context, id string) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// FavoriteRepository defines methods for favorite operations
type FavoriteRepository interface {
	Create(ctx context.Context, fav *domain.Favorite) error
	GetByKey(ctx context.Context, userID string, titleID int64) (*domain.Favorite, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.Favorite, error)
	DeleteByKey(ctx context.Context, userID string, titleID int64) error
}

// CompletedSeriesRepository defines methods for completed-series operations
type CompletedSeriesRepository interface {
	Create(ctx context.Context, cs *domain.CompletedSeries) error
	GetByKey(ctx context.Context, userID string, titleID int64) (*domain.CompletedSeries, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.CompletedSeries, error)
	DeleteByKey(ctx context.Context, userID string, titleID int64) error
}

// WatchedEpisodeRepository defines methods for watched-episode operations
type WatchedEpisodeRepository interface {
	Create(ctx context.Context, we *domain.WatchedEpisode) error
	GetByKey(ctx context.Context, userID string, key domain.EpisodeKey) (*domain.WatchedEpisode, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.WatchedEpisode, error)
	DeleteByKey(ctx context.Context, userID string, key domain.EpisodeKey) error
}
