package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"travelguide/internal/models/request_models"
	"travelguide/pkg/utils"
)

func newAccountFixture() (AccountServiceInterface, *utils.JWTManager) {
	jwt := utils.NewJWTManager("test-secret", time.Hour)
	return NewAccountService(newFakeAccountRepo(), jwt, zap.NewNop()), jwt
}

func TestRegisterAndLogin(t *testing.T) {
	svc, jwt := newAccountFixture()
	ctx := context.Background()

	reg, err := svc.Register(ctx, request_models.SignUpRequest{
		Email:    "  Ana@Example.com ",
		Password: "secret123",
		FullName: "Ana Silva",
	})
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", reg.User.Email)
	assert.Equal(t, "Ana Silva", reg.User.FullName)

	claims, err := jwt.ValidateToken(reg.Token)
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, claims.UserID)

	login, err := svc.Login(ctx, request_models.LoginRequest{Email: "ANA@example.com", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, login.User.ID)
	assert.NotEmpty(t, login.Token)

	me, err := svc.Me(ctx, uuid.MustParse(reg.User.ID))
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", me.Email)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, _ := newAccountFixture()
	ctx := context.Background()
	req := request_models.SignUpRequest{Email: "dup@example.com", Password: "secret123", FullName: "Dup"}

	_, err := svc.Register(ctx, req)
	require.NoError(t, err)

	req.Email = "DUP@example.com"
	_, err = svc.Register(ctx, req)
	assert.ErrorIs(t, err, utils.ErrEmailAlreadyExists)
}

func TestRegister_MissingFields(t *testing.T) {
	svc, _ := newAccountFixture()

	_, err := svc.Register(context.Background(), request_models.SignUpRequest{Email: "a@b.co", Password: "secret123", FullName: "  "})
	assert.ErrorIs(t, err, utils.ErrInvalidInput)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	svc, _ := newAccountFixture()
	ctx := context.Background()
	_, err := svc.Register(ctx, request_models.SignUpRequest{Email: "bo@example.com", Password: "secret123", FullName: "Bo"})
	require.NoError(t, err)

	_, err = svc.Login(ctx, request_models.LoginRequest{Email: "bo@example.com", Password: "wrong-pass"})
	assert.ErrorIs(t, err, utils.ErrInvalidCredentials)

	_, err = svc.Login(ctx, request_models.LoginRequest{Email: "nobody@example.com", Password: "secret123"})
	assert.ErrorIs(t, err, utils.ErrInvalidCredentials)
}

func TestMe_UnknownUser(t *testing.T) {
	svc, _ := newAccountFixture()

	_, err := svc.Me(context.Background(), uuid.New())
	assert.ErrorIs(t, err, utils.ErrAccountNotFound)
}
