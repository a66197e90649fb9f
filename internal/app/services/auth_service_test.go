package services

import (
	"context"
	"testing"
	"time"

	"github.com/ozan/studyshelf/internal/app/models"
	"github.com/ozan/studyshelf/internal/app/models/dto"
	"github.com/ozan/studyshelf/internal/pkg/apperrors"
	jwtauth "github.com/ozan/studyshelf/internal/pkg/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWTService() *jwtauth.JWTService {
	return jwtauth.NewJWTService(jwtauth.JWTConfig{
		SecretKey:   "test-secret",
		TokenExp:    time.Hour,
		TokenIssuer: "studyshelf.test",
	})
}

func TestSignup(t *testing.T) {
	users := newFakeUserRepo()
	service := NewAuthService(users, newTestJWTService())

	resp, err := service.Signup(context.Background(), &dto.SignupRequest{
		Name:     "Ada",
		Email:    "Ada@Example.com",
		Password: "secret123",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "Ada", resp.User.Name)
	// Email is normalized to lowercase
	assert.Equal(t, "ada@example.com", resp.User.Email)
	// Role defaults to student when omitted
	assert.Equal(t, models.RoleStudent, resp.User.Role)

	stored, err := users.GetByEmail(context.Background(), "ada@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, "secret123", stored.Password)
}

func TestSignupWithRole(t *testing.T) {
	service := NewAuthService(newFakeUserRepo(), newTestJWTService())

	resp, err := service.Signup(context.Background(), &dto.SignupRequest{
		Name:     "Tom",
		Email:    "tom@example.com",
		Password: "secret123",
		Role:     models.RoleTeacher,
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoleTeacher, resp.User.Role)
}

func TestSignupUnknownRole(t *testing.T) {
	service := NewAuthService(newFakeUserRepo(), newTestJWTService())

	_, err := service.Signup(context.Background(), &dto.SignupRequest{
		Name:     "Tom",
		Email:    "tom@example.com",
		Password: "secret123",
		Role:     "superuser",
	})
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)
}

func TestSignupDuplicateEmail(t *testing.T) {
	service := NewAuthService(newFakeUserRepo(), newTestJWTService())

	req := &dto.SignupRequest{Name: "Ada", Email: "ada@example.com", Password: "secret123"}
	_, err := service.Signup(context.Background(), req)
	require.NoError(t, err)

	_, err = service.Signup(context.Background(), req)
	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)
}

func TestSignupInvalidEmail(t *testing.T) {
	service := NewAuthService(newFakeUserRepo(), newTestJWTService())

	_, err := service.Signup(context.Background(), &dto.SignupRequest{
		Name:     "Ada",
		Email:    "not-an-email",
		Password: "secret123",
	})
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)
}

func TestLogin(t *testing.T) {
	service := NewAuthService(newFakeUserRepo(), newTestJWTService())

	_, err := service.Signup(context.Background(), &dto.SignupRequest{
		Name:     "Ada",
		Email:    "ada@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)

	resp, err := service.Login(context.Background(), &dto.LoginRequest{
		Email:    "ada@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "ada@example.com", resp.User.Email)
}

func TestLoginWrongPassword(t *testing.T) {
	service := NewAuthService(newFakeUserRepo(), newTestJWTService())

	_, err := service.Signup(context.Background(), &dto.SignupRequest{
		Name:     "Ada",
		Email:    "ada@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)

	_, err = service.Login(context.Background(), &dto.LoginRequest{
		Email:    "ada@example.com",
		Password: "wrong",
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestLoginUnknownEmail(t *testing.T) {
	service := NewAuthService(newFakeUserRepo(), newTestJWTService())

	_, err := service.Login(context.Background(), &dto.LoginRequest{
		Email:    "ghost@example.com",
		Password: "secret123",
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestLoginBlockedAccount(t *testing.T) {
	users := newFakeUserRepo()
	service := NewAuthService(users, newTestJWTService())

	resp, err := service.Signup(context.Background(), &dto.SignupRequest{
		Name:     "Ada",
		Email:    "ada@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)

	_, err = users.SetBlocked(context.Background(), resp.User.ID, true)
	require.NoError(t, err)

	_, err = service.Login(context.Background(), &dto.LoginRequest{
		Email:    "ada@example.com",
		Password: "secret123",
	})
	assert.ErrorIs(t, err, apperrors.ErrAccountBlocked)
}

func TestGetProfile(t *testing.T) {
	users := newFakeUserRepo()
	service := NewAuthService(users, newTestJWTService())

	resp, err := service.Signup(context.Background(), &dto.SignupRequest{
		Name:     "Ada",
		Email:    "ada@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)

	profile, err := service.GetProfile(context.Background(), resp.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ada", profile.Name)

	_, err = service.GetProfile(context.Background(), 9999)
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}
