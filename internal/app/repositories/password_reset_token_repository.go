package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/truelife/learningapp/internal/app/models"
	"github.com/truelife/learningapp/internal/pkg/apperrors"
	"github.com/truelife/learningapp/internal/pkg/logger"
)

// PasswordResetTokenRepository handles password reset token operations
type PasswordResetTokenRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewPasswordResetTokenRepository creates a new PasswordResetTokenRepository
func NewPasswordResetTokenRepository(db *pgxpool.Pool) *PasswordResetTokenRepository {
	return &PasswordResetTokenRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// CreateToken stores a new reset token
func (r *PasswordResetTokenRepository) CreateToken(ctx context.Context, token *models.PasswordResetToken) error {
	sql, args, err := r.sb.Insert("password_reset_tokens").
		Columns("user_id", "token_key", "expires_at").
		Values(token.UserID, token.TokenKey, token.ExpiresAt).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create token query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&token.ID, &token.CreatedAt)
	if err != nil {
		logger.Error().Err(err).Int64("userID", token.UserID).Msg("Error executing create token query")
		return fmt.Errorf("error creating password reset token: %w", err)
	}

	return nil
}

// GetByTokenKey retrieves a token by its key
func (r *PasswordResetTokenRepository) GetByTokenKey(ctx context.Context, key string) (*models.PasswordResetToken, error) {
	sql, args, err := r.sb.Select("id", "user_id", "token_key", "expires_at", "used", "created_at").
		From("password_reset_tokens").
		Where(squirrel.Eq{"token_key": key}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get token query: %w", err)
	}

	var token models.PasswordResetToken
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&token.ID, &token.UserID, &token.TokenKey, &token.ExpiresAt, &token.Used, &token.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrTokenNotFound
		}
		logger.Error().Err(err).Msg("Error scanning password reset token row")
		return nil, fmt.Errorf("error retrieving password reset token: %w", err)
	}

	return &token, nil
}

// MarkTokenAsUsed consumes a token; a token is consumed at most once
func (r *PasswordResetTokenRepository) MarkTokenAsUsed(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Update("password_reset_tokens").
		Set("used", true).
		Where(squirrel.Eq{"id": id, "used": false}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build mark token used query: %w", err)
	}

	result, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("tokenID", id).Msg("Error executing mark token used query")
		return fmt.Errorf("error consuming password reset token: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrPasswordResetTokenUsed
	}

	return nil
}

// DeleteExpiredTokens removes tokens past their expiry
func (r *PasswordResetTokenRepository) DeleteExpiredTokens(ctx context.Context) (int64, error) {
	sql, args, err := r.sb.Delete("password_reset_tokens").
		Where(squirrel.Expr("expires_at < NOW()")).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build delete expired tokens query: %w", err)
	}

	result, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error deleting expired password reset tokens")
		return 0, fmt.Errorf("error deleting expired tokens: %w", err)
	}

	return result.RowsAffected(), nil
}
