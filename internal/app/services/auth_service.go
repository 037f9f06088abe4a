package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/truelife/learningapp/internal/app/models"
	"github.com/truelife/learningapp/internal/app/models/dto"
	"github.com/truelife/learningapp/internal/notifications"
	"github.com/truelife/learningapp/internal/pkg/apperrors"
	"github.com/truelife/learningapp/internal/pkg/auth"
	"github.com/truelife/learningapp/internal/pkg/logger"
)

// AuthService defines authentication operations
type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*models.User, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	// ForgotPassword issues a reset token and raises the mail event. It
	// succeeds whether or not the email belongs to an account, so callers
	// cannot probe for registered addresses.
	ForgotPassword(ctx context.Context, email string) error
	// ResetPassword consumes a token and replaces the owner's password.
	// A token is consumed at most once.
	ResetPassword(ctx context.Context, req *dto.ResetPasswordRequest) error
}

// userStore is the slice of the user repository this service uses
type userStore interface {
	CreateUserWithStudent(ctx context.Context, user *models.User, student *models.Student) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	UpdatePassword(ctx context.Context, userID int64, passwordHash string) error
}

// resetTokenStore is the slice of the token repository this service uses
type resetTokenStore interface {
	CreateToken(ctx context.Context, token *models.PasswordResetToken) error
	GetByTokenKey(ctx context.Context, key string) (*models.PasswordResetToken, error)
	MarkTokenAsUsed(ctx context.Context, id int64) error
}

// tokenIssuer mints JWT pairs for authenticated users
type tokenIssuer interface {
	GenerateTokenPair(user *models.User) (accessToken, refreshToken string, expiresIn, refreshExpiresIn int, err error)
}

type authService struct {
	users         userStore
	tokens        resetTokenStore
	jwt           tokenIssuer
	bus           eventPublisher
	resetTokenTTL time.Duration
}

// NewAuthService creates a new AuthService
func NewAuthService(users userStore, tokens resetTokenStore, jwt tokenIssuer, bus eventPublisher, resetTokenTTL time.Duration) AuthService {
	return &authService{
		users:         users,
		tokens:        tokens,
		jwt:           jwt,
		bus:           bus,
		resetTokenTTL: resetTokenTTL,
	}
}

// Register opens an account with an attached student profile
func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*models.User, error) {
	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:        req.Email,
		PasswordHash: passwordHash,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
	}
	student := &models.Student{
		Phone: req.Phone,
	}

	if err := s.users.CreateUserWithStudent(ctx, user, student); err != nil {
		return nil, err
	}

	user.Student = student
	return user, nil
}

// Login verifies credentials and issues a token pair
func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	user, err := s.users.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	accessToken, refreshToken, expiresIn, refreshExpiresIn, err := s.jwt.GenerateTokenPair(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate tokens: %w", err)
	}

	return &dto.TokenResponse{
		AccessToken:      accessToken,
		RefreshToken:     refreshToken,
		ExpiresIn:        expiresIn,
		RefreshExpiresIn: refreshExpiresIn,
	}, nil
}

// ForgotPassword issues a single-use reset token and raises the mail event
func (s *authService) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			// Same outward behavior as the success path
			logger.Info().Str("email", email).Msg("Password reset requested for unknown email")
			return nil
		}
		return err
	}

	token := &models.PasswordResetToken{
		UserID:    user.ID,
		TokenKey:  uuid.NewString(),
		ExpiresAt: time.Now().Add(s.resetTokenTTL),
	}
	if err := s.tokens.CreateToken(ctx, token); err != nil {
		return err
	}

	s.bus.Publish(ctx, notifications.PasswordResetRequested{
		Username: user.FullName(),
		Email:    user.Email,
		TokenKey: token.TokenKey,
	})

	return nil
}

// ResetPassword consumes a reset token and sets the new password
func (s *authService) ResetPassword(ctx context.Context, req *dto.ResetPasswordRequest) error {
	token, err := s.tokens.GetByTokenKey(ctx, req.Token)
	if err != nil {
		if errors.Is(err, apperrors.ErrTokenNotFound) {
			return apperrors.ErrInvalidPasswordResetToken
		}
		return err
	}

	if token.Used {
		return apperrors.ErrPasswordResetTokenUsed
	}
	if token.IsExpired() {
		return apperrors.ErrInvalidPasswordResetToken
	}

	// Consume before writing the password so a racing request cannot
	// reuse the token
	if err := s.tokens.MarkTokenAsUsed(ctx, token.ID); err != nil {
		return err
	}

	passwordHash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.users.UpdatePassword(ctx, token.UserID, passwordHash); err != nil {
		return err
	}

	logger.Info().Int64("userID", token.UserID).Msg("Password reset completed")
	return nil
}
