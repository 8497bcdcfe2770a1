package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"travelguide/internal/models/db_models"
	"travelguide/internal/models/request_models"
	"travelguide/internal/models/response_models"
	"travelguide/internal/repositories"
	"travelguide/pkg/utils"
)

type TokenIssuer interface {
	CreateToken(userID uuid.UUID, email string) (string, error)
}

type AccountServiceInterface interface {
	Register(ctx context.Context, request request_models.SignUpRequest) (*response_models.AuthResponse, error)
	Login(ctx context.Context, request request_models.LoginRequest) (*response_models.AuthResponse, error)
	Me(ctx context.Context, userID uuid.UUID) (*response_models.UserResponse, error)
}

type AccountService struct {
	accountRepo repositories.AccountRepository
	tokens      TokenIssuer
	logger      *zap.Logger
}

func NewAccountService(accountRepo repositories.AccountRepository, tokens TokenIssuer, logger *zap.Logger) AccountServiceInterface {
	return &AccountService{
		accountRepo: accountRepo,
		tokens:      tokens,
		logger:      logger,
	}
}

func (a *AccountService) Login(ctx context.Context, request request_models.LoginRequest) (*response_models.AuthResponse, error) {
	startTime := time.Now()

	user, err := a.accountRepo.FindByEmail(ctx, normalizeEmail(request.Email))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	if user == nil {
		return nil, utils.ErrInvalidCredentials
	}

	if err := utils.ComparePasswords(user.PasswordHash, request.Password); err != nil {
		return nil, utils.ErrInvalidCredentials
	}

	token, err := a.tokens.CreateToken(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("create token: %w", err)
	}

	a.logger.Debug("Login succeeded", zap.String("user_id", user.ID.String()), zap.Duration("took", time.Since(startTime)))

	return &response_models.AuthResponse{
		User:  response_models.BuildUserResponse(user),
		Token: token,
	}, nil
}

func (a *AccountService) Register(ctx context.Context, request request_models.SignUpRequest) (*response_models.AuthResponse, error) {
	email := normalizeEmail(request.Email)
	fullName := strings.TrimSpace(request.FullName)
	if email == "" || request.Password == "" || fullName == "" {
		return nil, fmt.Errorf("%w: email, password and fullName are required", utils.ErrInvalidInput)
	}

	existing, err := a.accountRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	if existing != nil {
		return nil, utils.ErrEmailAlreadyExists
	}

	hashedPassword, err := utils.HashPassword(request.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &db_models.User{
		Email:        email,
		PasswordHash: hashedPassword,
		FullName:     fullName,
	}
	if err := a.accountRepo.InsertTx(user, ctx); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, utils.ErrEmailAlreadyExists
		}
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}

	token, err := a.tokens.CreateToken(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("create token: %w", err)
	}

	a.logger.Info("User registered", zap.String("user_id", user.ID.String()))

	return &response_models.AuthResponse{
		User:  response_models.BuildUserResponse(user),
		Token: token,
	}, nil
}

func (a *AccountService) Me(ctx context.Context, userID uuid.UUID) (*response_models.UserResponse, error) {
	user, err := a.accountRepo.FindById(ctx, userID.String())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	if user == nil {
		return nil, utils.ErrAccountNotFound
	}

	out := response_models.BuildUserResponse(user)
	return &out, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
