package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/galexandre/showtrack/internal/apperrors"
	"github.com/galexandre/showtrack/internal/domain"
	"github.com/galexandre/showtrack/internal/dto"
	"github.com/galexandre/showtrack/internal/repository"
)

// engagementService implements EngagementService interface
type engagementService struct {
	userRepo      repository.UserRepository
	favoriteRepo  repository.FavoriteRepository
	completedRepo repository.CompletedSeriesRepository
	watchedRepo   repository.WatchedEpisodeRepository
	profileCache  ProfileCache
	logger        *zap.Logger
}

// NewEngagementService creates a new engagement service
func NewEngagementService(
	userRepo repository.UserRepository,
	favoriteRepo repository.FavoriteRepository,
	completedRepo repository.CompletedSeriesRepository,
	watchedRepo repository.WatchedEpisodeRepository,
	profileCache ProfileCache,
	logger *zap.Logger,
) EngagementService {
	return &engagementService{
		userRepo:      userRepo,
		favoriteRepo:  favoriteRepo,
		completedRepo: completedRepo,
		watchedRepo:   watchedRepo,
		profileCache:  profileCache,
		logger:        logger,
	}
}

// AddFavorite adds a title to the user's favorites. The insert relies on
// the composite-key constraint; a duplicate surfaces as a conflict instead
// of being checked for beforehand, so concurrent adds cannot both succeed.
func (s *engagementService) AddFavorite(ctx context.Context, userID string, req *dto.AddFavoriteRequest) (*domain.Favorite, error) {
	fav := &domain.Favorite{
		UserID:         userID,
		TitleID:        req.TitleID,
		Title:          req.Title,
		NumberEpisodes: req.NumberEpisodes,
		NumberSeasons:  req.NumberSeasons,
		MediaType:      req.MediaType,
	}

	if err := s.favoriteRepo.Create(ctx, fav); err != nil {
		if errors.Is(err, repository.ErrDuplicateEntry) {
			return nil, apperrors.Conflict("title is already in favorites")
		}
		return nil, apperrors.Internal("failed to add favorite", err)
	}

	s.invalidateProfile(ctx, userID)

	return fav, nil
}

// RemoveFavorite removes a title from the user's favorites
func (s *engagementService) RemoveFavorite(ctx context.Context, userID string, titleID int64) error {
	if err := s.favoriteRepo.DeleteByKey(ctx, userID, titleID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NotFound("favorite not found")
		}
		return apperrors.Internal("failed to remove favorite", err)
	}

	s.invalidateProfile(ctx, userID)

	return nil
}

// IsFavorite reports whether a title is in the user's favorites. Absence is
// a false answer, not an error.
func (s *engagementService) IsFavorite(ctx context.Context, userID string, titleID int64) (bool, error) {
	_, err := s.favoriteRepo.GetByKey(ctx, userID, titleID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return false, nil
		}
		return false, apperrors.Internal("failed to check favorite", err)
	}
	return true, nil
}

// ListFavorites returns all of the user's favorites
func (s *engagementService) ListFavorites(ctx context.Context, userID string) ([]*domain.Favorite, error) {
	favorites, err := s.favoriteRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.Internal("failed to list favorites", err)
	}
	return favorites, nil
}

// MarkCompleted marks a series as completed for the user
func (s *engagementService) MarkCompleted(ctx context.Context, userID string, titleID int64) (*domain.CompletedSeries, error) {
	cs := &domain.CompletedSeries{
		UserID:  userID,
		TitleID: titleID,
	}

	if err := s.completedRepo.Create(ctx, cs); err != nil {
		if errors.Is(err, repository.ErrDuplicateEntry) {
			return nil, apperrors.Conflict("series is already marked as completed")
		}
		return nil, apperrors.Internal("failed to mark series completed", err)
	}

	return cs, nil
}

// UnmarkCompleted removes the completed marker from a series
func (s *engagementService) UnmarkCompleted(ctx context.Context, userID string, titleID int64) error {
	if err := s.completedRepo.DeleteByKey(ctx, userID, titleID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NotFound("series not found in completed list")
		}
		return apperrors.Internal("failed to unmark series", err)
	}
	return nil
}

// IsCompleted reports whether a series is marked completed
func (s *engagementService) IsCompleted(ctx context.Context, userID string, titleID int64) (bool, error) {
	_, err := s.completedRepo.GetByKey(ctx, userID, titleID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return false, nil
		}
		return false, apperrors.Internal("failed to check completed series", err)
	}
	return true, nil
}

// ListCompleted returns all series the user marked completed
func (s *engagementService) ListCompleted(ctx context.Context, userID string) ([]*domain.CompletedSeries, error) {
	series, err := s.completedRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.Internal("failed to list completed series", err)
	}
	return series, nil
}

// MarkWatched marks an episode as watched for the user
func (s *engagementService) MarkWatched(ctx context.Context, userID string, req *dto.MarkWatchedRequest) (*domain.WatchedEpisode, error) {
	we := &domain.WatchedEpisode{
		UserID:   userID,
		TitleID:  req.TitleID,
		Season:   req.Season,
		Episode:  req.Episode,
		Duration: req.Duration,
	}

	if err := s.watchedRepo.Create(ctx, we); err != nil {
		if errors.Is(err, repository.ErrDuplicateEntry) {
			return nil, apperrors.Conflict("episode is already marked as watched")
		}
		return nil, apperrors.Internal("failed to mark episode watched", err)
	}

	return we, nil
}

// UnmarkWatched removes the watched marker from an episode
func (s *engagementService) UnmarkWatched(ctx context.Context, userID string, key domain.EpisodeKey) error {
	if err := s.watchedRepo.DeleteByKey(ctx, userID, key); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NotFound("episode not found in watched list")
		}
		return apperrors.Internal("failed to unmark episode", err)
	}
	return nil
}

// IsWatched reports whether an episode is marked watched
func (s *engagementService) IsWatched(ctx context.Context, userID string, key domain.EpisodeKey) (bool, error) {
	_, err := s.watchedRepo.GetByKey(ctx, userID, key)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return false, nil
		}
		return false, apperrors.Internal("failed to check watched episode", err)
	}
	return true, nil
}

// ListWatched returns all episodes the user marked watched
func (s *engagementService) ListWatched(ctx context.Context, userID string) ([]*domain.WatchedEpisode, error) {
	episodes, err := s.watchedRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.Internal("failed to list watched episodes", err)
	}
	return episodes, nil
}

// UserProfile assembles the public user fields with the favorite title IDs.
// An unknown user yields (nil, nil), matching the transport's empty-result
// contract for this view. Reads go through the cache; a cache failure falls
// back to storage.
func (s *engagementService) UserProfile(ctx context.Context, userID string) (*dto.UserProfile, error) {
	if cached, err := s.profileCache.Get(ctx, userID); err != nil {
		s.logger.Warn("profile cache read failed", zap.String("user_id", userID), zap.Error(err))
	} else if cached != nil {
		return cached, nil
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		return nil, apperrors.Internal("failed to get user", err)
	}

	favorites, err := s.favoriteRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.Internal("failed to list favorites", err)
	}

	titleIDs := make([]int64, 0, len(favorites))
	for _, fav := range favorites {
		titleIDs = append(titleIDs, fav.TitleID)
	}

	profile := &dto.UserProfile{
		ID:               user.ID,
		Name:             user.Name,
		Email:            user.Email,
		Phone:            user.Phone,
		PhotoURL:         user.PhotoURL,
		FavoriteTitleIDs: titleIDs,
	}

	if err := s.profileCache.Set(ctx, userID, profile); err != nil {
		s.logger.Warn("profile cache write failed", zap.String("user_id", userID), zap.Error(err))
	}

	return profile, nil
}

func (s *engagementService) invalidateProfile(ctx context.Context, userID string) {
	if err := s.profileCache.Invalidate(ctx, userID); err != nil {
		s.logger.Warn("failed to invalidate profile cache",
			zap.String("user_id", userID),
			zap.Error(err),
		)
	}
}
