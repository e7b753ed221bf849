package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/galexandre/showtrack/internal/domain"
	"github.com/galexandre/showtrack/pkg/database"
)

// passwordResetRepository implements PasswordResetRepository interface
type passwordResetRepository struct {
	db *database.Postgres
}

// NewPasswordResetRepository creates a new password reset repository
func NewPasswordResetRepository(db *database.Postgres) PasswordResetRepository {
	return &passwordResetRepository{db: db}
}

// Create inserts a new recovery code row. Codes are not unique; two users
// (or two requests) may hold the same value concurrently.
func (r *passwordResetRepository) Create(ctx context.Context, code *domain.PasswordResetCode) error {
	query := `
		INSERT INTO password_resets (id, user_id, code, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	if code.ID == "" {
		code.ID = uuid.New().String()
	}
	if code.CreatedAt.IsZero() {
		code.CreatedAt = time.Now()
	}

	_, err := r.db.DB.ExecContext(ctx, query,
		code.ID,
		code.UserID,
		code.Code,
		code.ExpiresAt,
		code.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create reset code: %w", err)
	}

	return nil
}

// FindValidByCode returns the newest unexpired row matching the code value
func (r *passwordResetRepository) FindValidByCode(ctx context.Context, code string, now time.Time) (*domain.PasswordResetCode, error) {
	query := `
		SELECT id, user_id, code, expires_at, created_at
		FROM password_resets
		WHERE code = $1 AND expires_at > $2
		ORDER BY created_at DESC
		LIMIT 1
	`

	rec := &domain.PasswordResetCode{}
	err := r.db.DB.QueryRowContext(ctx, query, code, now).Scan(
		&rec.ID,
		&rec.UserID,
		&rec.Code,
		&rec.ExpiresAt,
		&rec.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("valid reset code not found: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get reset code: %w", err)
	}

	return rec, nil
}

// DeleteByID deletes a recovery code row, consuming it
func (r *passwordResetRepository) DeleteByID(ctx context.Context, id string) error {
	query := `DELETE FROM password_resets WHERE id = $1`

	result, err := r.db.DB.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete reset code: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("reset code with id %s not found: %w", id, ErrNotFound)
	}

	return nil
}

// DeleteExpired deletes all expired recovery codes and returns the count
func (r *passwordResetRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	query := `DELETE FROM password_resets WHERE expires_at < $1`

	result, err := r.db.DB.ExecContext(ctx, query, now)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired reset codes: %w", err)
	}

	count, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return count, nil
}
