package repository

import (
	"github.com/galexandre/showtrack/pkg/database"
)

// Repositories holds all repository interfaces
type Repositories struct {
	User            UserRepository
	PasswordReset   PasswordResetRepository
	Favorite        FavoriteRepository
	CompletedSeries CompletedSeriesRepository
	WatchedEpisode  WatchedEpisodeRepository
}

// NewRepositories creates all repositories
func NewRepositories(db *database.Postgres) *Repositories {
	return &Repositories{
		User:            NewUserRepository(db),
		PasswordReset:   NewPasswordResetRepository(db),
		Favorite:        NewFavoriteRepository(db),
		CompletedSeries: NewCompletedSeriesRepository(db),
		WatchedEpisode:  NewWatchedEpisodeRepository(db),
	}
}
