package service

import (
	"context"

	"github.com/galexandre/showtrack/internal/domain"
	"github.com/galexandre/showtrack/internal/dto"
)

// AuthService defines methods for identity and token operations
type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*AuthResult, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*AuthResult, error)
	ValidateToken(ctx context.Context, token string) (*domain.TokenClaims, error)
	GetUser(ctx context.Context, id string) (*dto.UserResponse, error)
	ListUsers(ctx context.Context) ([]*dto.UserResponse, error)
	Update(ctx context.Context, id string, patch *dto.UserPatch) (*domain.User, error)
	Delete(ctx context.Context, id string) error
}

// PasswordResetService defines the password recovery workflow
type PasswordResetService interface {
	SendRecoveryCode(ctx context.Context, email string) error
	VerifyCode(ctx context.Context, code, newPassword string) error
	ResendCode(ctx context.Context, email string) error
	DeleteExpired(ctx context.Context) (int64, error)
}

// EngagementService maintains the three per-user idempotent sets
type EngagementService interface {
	AddFavorite(ctx context.Context, userID string, req *dto.AddFavoriteRequest) (*domain.Favorite, error)
	RemoveFavorite(ctx context.Context, userID string, titleID int64) error
	IsFavorite(ctx context.Context, userID string, titleID int64) (bool, error)
	ListFavorites(ctx context.Context, userID string) ([]*domain.Favorite, error)

	MarkCompleted(ctx context.Context, userID string, titleID int64) (*domain.CompletedSeries, error)
	UnmarkCompleted(ctx context.Context, userID string, titleID int64) error
	IsCompleted(ctx context.Context, userID string, titleID int64) (bool, error)
	ListCompleted(ctx context.Context, userID string) ([]*domain.CompletedSeries, error)

	MarkWatched(ctx context.Context, userID string, req *dto.MarkWatchedRequest) (*domain.WatchedEpisode, error)
	UnmarkWatched(ctx context.Context, userID string, key domain.EpisodeKey) error
	IsWatched(ctx context.Context, userID string, key domain.EpisodeKey) (bool, error)
	ListWatched(ctx context.Context, userID string) ([]*domain.WatchedEpisode, error)

	// UserProfile assembles the public user fields together with the list
	// of favorite title IDs. Returns (nil, nil) when the user does not
	// exist.
	UserProfile(ctx context.Context, userID string) (*dto.UserProfile, error)
}

// ProfileCache caches assembled user profiles between reads
type ProfileCache interface {
	Get(ctx context.Context, userID string) (*dto.UserProfile, error)
	Set(ctx context.Context, userID string, profile *dto.UserProfile) error
	Invalidate(ctx context.Context, userID string) error
}
