package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"go.uber.org/zap"

	"github.com/galexandre/showtrack/internal/apperrors"
	"github.com/galexandre/showtrack/internal/domain"
	"github.com/galexandre/showtrack/internal/mailer"
	"github.com/galexandre/showtrack/internal/repository"
	"github.com/galexandre/showtrack/internal/utils"
)

const recoveryCodeSpace = 1_000_000

// passwordResetService implements PasswordResetService interface
type passwordResetService struct {
	userRepo   repository.UserRepository
	resetRepo  repository.PasswordResetRepository
	mail       mailer.Mailer
	logger     *zap.Logger
	bcryptCost int
	codeTTL    time.Duration
}

// NewPasswordResetService creates a new password reset service
func NewPasswordResetService(
	userRepo repository.UserRepository,
	resetRepo repository.PasswordResetRepository,
	mail mailer.Mailer,
	logger *zap.Logger,
	bcryptCost int,
	codeTTL time.Duration,
) PasswordResetService {
	return &passwordResetService{
		userRepo:   userRepo,
		resetRepo:  resetRepo,
		mail:       mail,
		logger:     logger,
		bcryptCost: bcryptCost,
		codeTTL:    codeTTL,
	}
}

// SendRecoveryCode issues a fresh 6-digit code for the account owning email
// and mails it. Codes are not unique across requests; verification matches
// the newest unexpired row for a value. A mail failure is logged but not
// surfaced, so the caller cannot tell whether delivery succeeded.
func (s *passwordResetService) SendRecoveryCode(ctx context.Context, email string) error {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NotFound("user not found")
		}
		return apperrors.Internal("failed to get user", err)
	}

	code, err := generateRecoveryCode()
	if err != nil {
		return apperrors.Internal("failed to generate recovery code", err)
	}

	record := &domain.PasswordResetCode{
		UserID:    user.ID,
		Code:      code,
		ExpiresAt: time.Now().Add(s.codeTTL),
	}

	if err := s.resetRepo.Create(ctx, record); err != nil {
		return apperrors.Internal("failed to store recovery code", err)
	}

	if err := s.mail.Send(ctx, recoveryMessage(user, record)); err != nil {
		s.logger.Warn("failed to send recovery code email",
			zap.String("user_id", user.ID),
			zap.Error(err),
		)
	}

	return nil
}

// VerifyCode consumes a recovery code and sets the owner's password. The
// code is single-use: the row is deleted on success. The new password is
// not checked against the registration policy.
func (s *passwordResetService) VerifyCode(ctx context.Context, code, newPassword string) error {
	record, err := s.resetRepo.FindValidByCode(ctx, code, time.Now())
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NotFound("invalid or expired code")
		}
		return apperrors.Internal("failed to look up recovery code", err)
	}

	user, err := s.userRepo.GetByID(ctx, record.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NotFound("invalid or expired code")
		}
		return apperrors.Internal("failed to get user", err)
	}

	passwordHash, err := utils.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return apperrors.Internal("failed to hash password", err)
	}

	user.PasswordHash = passwordHash
	user.UpdatedAt = time.Now()

	if err := s.userRepo.Update(ctx, user); err != nil {
		return apperrors.Internal("failed to update password", err)
	}

	if err := s.resetRepo.DeleteByID(ctx, record.ID); err != nil {
		return apperrors.Internal("failed to consume recovery code", err)
	}

	return nil
}

// ResendCode issues another code for the same account. Previously issued
// codes stay valid until they expire.
func (s *passwordResetService) ResendCode(ctx context.Context, email string) error {
	return s.SendRecoveryCode(ctx, email)
}

// DeleteExpired sweeps expired codes and returns how many were removed
func (s *passwordResetService) DeleteExpired(ctx context.Context) (int64, error) {
	count, err := s.resetRepo.DeleteExpired(ctx, time.Now())
	if err != nil {
		return 0, apperrors.Internal("failed to delete expired codes", err)
	}
	return count, nil
}

// generateRecoveryCode draws a uniform random integer in [0, 1_000_000) and
// zero-pads it to 6 digits.
func generateRecoveryCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(recoveryCodeSpace))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

func recoveryMessage(user *domain.User, record *domain.PasswordResetCode) mailer.Message {
	expiry := record.ExpiresAt.Format("15:04 02/01/2006")
	return mailer.Message{
		To:      user.Email,
		Subject: "Your password recovery code",
		Text: fmt.Sprintf(
			"Hello %s,\n\nYour password recovery code is %s. It is valid until %s.\n\nIf you did not request it, ignore this message.",
			user.Name, record.Code, expiry,
		),
		HTML: fmt.Sprintf(
			"<p>Hello %s,</p><p>Your password recovery code is <strong>%s</strong>. It is valid until %s.</p><p>If you did not request it, ignore this message.</p>",
			user.Name, record.Code, expiry,
		),
	}
}
