package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/truelife/learningapp/internal/app/models"
	"github.com/truelife/learningapp/internal/app/models/dto"
	"github.com/truelife/learningapp/internal/app/services"
	"github.com/truelife/learningapp/internal/notifications"
	"github.com/truelife/learningapp/internal/pkg/apperrors"
	"github.com/truelife/learningapp/internal/pkg/auth"
)

type memUserStore struct {
	nextID   int64
	byEmail  map[string]*models.User
	byID     map[int64]*models.User
	students map[int64]*models.Student
}

func newMemUserStore() *memUserStore {
	return &memUserStore{
		byEmail:  make(map[string]*models.User),
		byID:     make(map[int64]*models.User),
		students: make(map[int64]*models.Student),
	}
}

func (s *memUserStore) CreateUserWithStudent(ctx context.Context, user *models.User, student *models.Student) error {
	if _, exists := s.byEmail[user.Email]; exists {
		return apperrors.ErrEmailAlreadyExists
	}
	s.nextID++
	user.ID = s.nextID
	student.ID = s.nextID
	student.UserID = user.ID
	s.byEmail[user.Email] = user
	s.byID[user.ID] = user
	s.students[user.ID] = student
	return nil
}

func (s *memUserStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	user, ok := s.byEmail[email]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return user, nil
}

func (s *memUserStore) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	user, ok := s.byID[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return user, nil
}

func (s *memUserStore) UpdatePassword(ctx context.Context, userID int64, passwordHash string) error {
	user, ok := s.byID[userID]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	user.PasswordHash = passwordHash
	return nil
}

type memTokenStore struct {
	nextID int64
	byKey  map[string]*models.PasswordResetToken
}

func newMemTokenStore() *memTokenStore {
	return &memTokenStore{byKey: make(map[string]*models.PasswordResetToken)}
}

func (s *memTokenStore) CreateToken(ctx context.Context, token *models.PasswordResetToken) error {
	s.nextID++
	token.ID = s.nextID
	token.CreatedAt = time.Now()
	s.byKey[token.TokenKey] = token
	return nil
}

func (s *memTokenStore) GetByTokenKey(ctx context.Context, key string) (*models.PasswordResetToken, error) {
	token, ok := s.byKey[key]
	if !ok {
		return nil, apperrors.ErrTokenNotFound
	}
	return token, nil
}

func (s *memTokenStore) MarkTokenAsUsed(ctx context.Context, id int64) error {
	for _, token := range s.byKey {
		if token.ID == id {
			if token.Used {
				return apperrors.ErrPasswordResetTokenUsed
			}
			token.Used = true
			return nil
		}
	}
	return apperrors.ErrTokenNotFound
}

type authFixture struct {
	service services.AuthService
	users   *memUserStore
	tokens  *memTokenStore
	bus     *capturingBus
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	users := newMemUserStore()
	tokens := newMemTokenStore()
	bus := &capturingBus{}
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  time.Hour,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "learningapp-test",
	})
	return &authFixture{
		service: services.NewAuthService(users, tokens, jwtService, bus, 24*time.Hour),
		users:   users,
		tokens:  tokens,
		bus:     bus,
	}
}

func registerTestUser(t *testing.T, f *authFixture) *models.User {
	t.Helper()
	user, err := f.service.Register(context.Background(), &dto.RegisterRequest{
		Email:     "aye@example.com",
		Password:  "s3cret-pass1",
		FirstName: "Aye",
		LastName:  "Chan",
		Phone:     "+95911222333",
	})
	require.NoError(t, err)
	return user
}

func TestRegisterCreatesUserAndStudent(t *testing.T) {
	f := newAuthFixture(t)

	user := registerTestUser(t, f)
	assert.NotZero(t, user.ID)
	require.NotNil(t, user.Student)
	assert.Equal(t, user.ID, user.Student.UserID)
	assert.Equal(t, "+95911222333", user.Student.Phone)

	// Password is stored hashed
	assert.NotEqual(t, "s3cret-pass1", user.PasswordHash)
	assert.True(t, auth.CheckPassword(user.PasswordHash, "s3cret-pass1"))
}

func TestLogin(t *testing.T) {
	f := newAuthFixture(t)
	registerTestUser(t, f)

	tokens, err := f.service.Login(context.Background(), &dto.LoginRequest{
		Email:    "aye@example.com",
		Password: "s3cret-pass1",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)
	assert.Equal(t, 3600, tokens.ExpiresIn)
}

func TestLoginWrongPassword(t *testing.T) {
	f := newAuthFixture(t)
	registerTestUser(t, f)

	_, err := f.service.Login(context.Background(), &dto.LoginRequest{
		Email:    "aye@example.com",
		Password: "wrong",
	})
	require.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestLoginUnknownEmail(t *testing.T) {
	f := newAuthFixture(t)

	_, err := f.service.Login(context.Background(), &dto.LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever1",
	})
	// Unknown account and wrong password are indistinguishable
	require.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestForgotPasswordIssuesTokenAndEvent(t *testing.T) {
	f := newAuthFixture(t)
	registerTestUser(t, f)

	err := f.service.ForgotPassword(context.Background(), "aye@example.com")
	require.NoError(t, err)

	published := f.bus.published()
	require.Len(t, published, 1)
	event, ok := published[0].(notifications.PasswordResetRequested)
	require.True(t, ok)
	assert.Equal(t, "Aye Chan", event.Username)
	assert.Equal(t, "aye@example.com", event.Email)
	assert.NotEmpty(t, event.TokenKey)

	token, err := f.tokens.GetByTokenKey(context.Background(), event.TokenKey)
	require.NoError(t, err)
	assert.False(t, token.Used)
	assert.True(t, token.ExpiresAt.After(time.Now()))
}

func TestForgotPasswordUnknownEmail(t *testing.T) {
	f := newAuthFixture(t)

	// Succeeds without issuing anything, so the endpoint cannot be used
	// to probe for accounts
	err := f.service.ForgotPassword(context.Background(), "nobody@example.com")
	require.NoError(t, err)
	assert.Empty(t, f.bus.published())
	assert.Empty(t, f.tokens.byKey)
}

func TestResetPassword(t *testing.T) {
	f := newAuthFixture(t)
	user := registerTestUser(t, f)

	require.NoError(t, f.service.ForgotPassword(context.Background(), user.Email))
	event := f.bus.published()[0].(notifications.PasswordResetRequested)

	err := f.service.ResetPassword(context.Background(), &dto.ResetPasswordRequest{
		Token:       event.TokenKey,
		NewPassword: "brand-new-pass2",
	})
	require.NoError(t, err)

	assert.True(t, auth.CheckPassword(user.PasswordHash, "brand-new-pass2"))

	// Second use of the same token is rejected
	err = f.service.ResetPassword(context.Background(), &dto.ResetPasswordRequest{
		Token:       event.TokenKey,
		NewPassword: "another-pass3",
	})
	require.ErrorIs(t, err, apperrors.ErrPasswordResetTokenUsed)
}

func TestResetPasswordUnknownToken(t *testing.T) {
	f := newAuthFixture(t)

	err := f.service.ResetPassword(context.Background(), &dto.ResetPasswordRequest{
		Token:       "no-such-token",
		NewPassword: "brand-new-pass2",
	})
	require.ErrorIs(t, err, apperrors.ErrInvalidPasswordResetToken)
}

func TestResetPasswordExpiredToken(t *testing.T) {
	f := newAuthFixture(t)
	user := registerTestUser(t, f)

	token := &models.PasswordResetToken{
		UserID:    user.ID,
		TokenKey:  "expired-token",
		ExpiresAt: time.Now().Add(-time.Minute),
	}
	require.NoError(t, f.tokens.CreateToken(context.Background(), token))

	err := f.service.ResetPassword(context.Background(), &dto.ResetPasswordRequest{
		Token:       "expired-token",
		NewPassword: "brand-new-pass2",
	})
	require.ErrorIs(t, err, apperrors.ErrInvalidPasswordResetToken)
}
