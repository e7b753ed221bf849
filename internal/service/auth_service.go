package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/galexandre/showtrack/internal/apperrors"
	"github.com/galexandre/showtrack/internal/domain"
	"github.com/galexandre/showtrack/internal/dto"
	"github.com/galexandre/showtrack/internal/repository"
	"github.com/galexandre/showtrack/internal/utils"
)

// AuthResult carries the authenticated user together with the issued token
type AuthResult struct {
	User        *domain.User
	AccessToken string
	ExpiresIn   int // Token lifetime in seconds
}

// authService implements AuthService interface
type authService struct {
	userRepo     repository.UserRepository
	jwtManager   *utils.JWTManager
	profileCache ProfileCache
	logger       *zap.Logger
	bcryptCost   int
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo repository.UserRepository,
	jwtManager *utils.JWTManager,
	profileCache ProfileCache,
	logger *zap.Logger,
	bcryptCost int,
) AuthService {
	return &authService{
		userRepo:     userRepo,
		jwtManager:   jwtManager,
		profileCache: profileCache,
		logger:       logger,
		bcryptCost:   bcryptCost,
	}
}

// Register creates a new user and issues a token for it. The users.email
// unique constraint is the sole arbiter of conflict; there is no pre-read,
// so concurrent registrations with the same email cannot both succeed.
func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*AuthResult, error) {
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return nil, apperrors.Validation("name, email and password are required")
	}
	if !utils.ValidateName(req.Name) {
		return nil, apperrors.Validation("name must be at least 3 characters long")
	}
	if !utils.ValidateEmail(req.Email) {
		return nil, apperrors.Validation("invalid email format")
	}
	if !utils.ValidatePassword(req.Password) {
		return nil, apperrors.Validation("password must be at least 6 characters long")
	}

	passwordHash, err := utils.HashPassword(req.Password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.Internal("failed to hash password", err)
	}

	user := &domain.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: passwordHash,
		Phone:        req.Phone,
		PhotoURL:     req.PhotoURL,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, apperrors.Conflict(fmt.Sprintf("user with email %s already exists", req.Email))
		}
		return nil, apperrors.Internal("failed to create user", err)
	}

	return s.issueToken(user)
}

// Login authenticates a user by email and password. Unknown email and wrong
// password fail identically so callers cannot enumerate accounts.
func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*AuthResult, error) {
	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.Auth("invalid credentials")
		}
		return nil, apperrors.Internal("failed to get user", err)
	}

	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, apperrors.Auth("invalid credentials")
	}

	return s.issueToken(user)
}

func (s *authService) issueToken(user *domain.User) (*AuthResult, error) {
	token, err := s.jwtManager.GenerateToken(user.ID, user.Email)
	if err != nil {
		return nil, apperrors.Internal("failed to generate token", err)
	}

	return &AuthResult{
		User:        user,
		AccessToken: token,
		ExpiresIn:   s.jwtManager.TokenExpirySeconds(),
	}, nil
}

// ValidateToken verifies a token's signature and expiry. It does not check
// that the subject user still exists.
func (s *authService) ValidateToken(ctx context.Context, token string) (*domain.TokenClaims, error) {
	claims, err := s.jwtManager.ValidateToken(token)
	if err != nil {
		return nil, apperrors.Auth("invalid or expired token")
	}
	return claims, nil
}

// GetUser gets user information
func (s *authService) GetUser(ctx context.Context, id string) (*dto.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("user not found")
		}
		return nil, apperrors.Internal("failed to get user", err)
	}

	return toUserResponse(user), nil
}

// ListUsers lists all users
func (s *authService) ListUsers(ctx context.Context) ([]*dto.UserResponse, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, apperrors.Internal("failed to list users", err)
	}

	responses := make([]*dto.UserResponse, 0, len(users))
	for _, user := range users {
		responses = append(responses, toUserResponse(user))
	}
	return responses, nil
}

// Update merges the provided fields into the stored user. Nil patch fields
// keep their prior values; a present password is re-hashed before storage.
func (s *authService) Update(ctx context.Context, id string, patch *dto.UserPatch) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("user not found")
		}
		return nil, apperrors.Internal("failed to get user", err)
	}

	if patch.Name != nil {
		user.Name = *patch.Name
	}
	if patch.Email != nil {
		user.Email = *patch.Email
	}
	if patch.Password != nil {
		passwordHash, err := utils.HashPassword(*patch.Password, s.bcryptCost)
		if err != nil {
			return nil, apperrors.Internal("failed to hash password", err)
		}
		user.PasswordHash = passwordHash
	}
	if patch.Phone != nil {
		user.Phone = patch.Phone
	}
	if patch.PhotoURL != nil {
		user.PhotoURL = patch.PhotoURL
	}
	user.UpdatedAt = time.Now()

	if err := s.userRepo.Update(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, apperrors.Conflict(fmt.Sprintf("user with email %s already exists", user.Email))
		}
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("user not found")
		}
		return nil, apperrors.Internal("failed to update user", err)
	}

	s.invalidateProfile(ctx, id)

	return user, nil
}

// Delete removes a user. Engagement rows cascade at the storage layer.
func (s *authService) Delete(ctx context.Context, id string) error {
	if err := s.userRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NotFound("user not found")
		}
		return apperrors.Internal("failed to delete user", err)
	}

	s.invalidateProfile(ctx, id)

	return nil
}

func (s *authService) invalidateProfile(ctx context.Context, userID string) {
	if err := s.profileCache.Invalidate(ctx, userID); err != nil {
		s.logger.Warn("failed to invalidate profile cache",
			zap.String("user_id", userID),
			zap.Error(err),
		)
	}
}

func toUserResponse(user *domain.User) *dto.UserResponse {
	return &dto.UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Phone:     user.Phone,
		PhotoURL:  user.PhotoURL,
		CreatedAt: user.CreatedAt.Format(time.RFC3339),
		UpdatedAt: user.UpdatedAt.Format(time.RFC3339),
	}
}
