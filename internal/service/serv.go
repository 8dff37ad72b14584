package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/linemk/sattvik-shop/internal/domain/models"
	security "github.com/linemk/sattvik-shop/internal/jwt-new"
	"github.com/linemk/sattvik-shop/internal/storage"
	"golang.org/x/crypto/bcrypt"
)

type AuthService struct {
	log       *slog.Logger
	userRepo  storage.UserStorage
	roleRepo  storage.RoleStorage
	jwtSecret string
	tokenTTL  time.Duration
}

func NewAuthService(log *slog.Logger, userRepo storage.UserStorage, roleRepo storage.RoleStorage, jwtSecret string, tokenTTL time.Duration) *AuthService {
	return &AuthService{
		log:       log,
		userRepo:  userRepo,
		roleRepo:  roleRepo,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
	}
}

type AuthServiceInterface interface {
	Login(ctx context.Context, email, password string) (string, error)
}

// Login осуществляет аутентификацию пользователя.
// Если пользователь не найден, он создаётся с ролью user (пароль хэшируется через bcrypt).
// Если найден, введённый пароль сравнивается с сохранённым хэшем.
// Роль admin выдаётся только через таблицу user_roles, в токен попадает текущая роль.
func (a *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	const op = "service.AuthService.Login"
	logger := a.log.With(
		slog.String("op", op),
		slog.String("email", email),
	)
	if a.userRepo == nil || a.roleRepo == nil {
		return "", fmt.Errorf("%s: %w", op, errNoDatabase)
	}
	logger.Info("checking user")

	user, err := a.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, storage.ErrUserNotFound) {
			logger.Error("failed to get user", slog.Any("error", err))
			return "", fmt.Errorf("%s: failed to get user: %w", op, err)
		}

		logger.Info("user not found, creating new user")
		passHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			logger.Error("failed to hash password", slog.Any("error", err))
			return "", fmt.Errorf("%s: failed to hash password: %w", op, err)
		}
		user, err = a.userRepo.CreateUser(ctx, &models.User{Email: email, PassHash: passHash})
		if err != nil {
			logger.Error("failed to create user", slog.Any("error", err))
			return "", fmt.Errorf("%s: failed to create user: %w", op, err)
		}
		if err := a.roleRepo.GrantRole(ctx, user.ID, models.RoleUser); err != nil {
			logger.Error("failed to grant role", slog.Any("error", err))
			return "", fmt.Errorf("%s: failed to grant role: %w", op, err)
		}
	} else if err := bcrypt.CompareHashAndPassword(user.PassHash, []byte(password)); err != nil {
		logger.Warn("invalid password")
		return "", fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	role := models.RoleUser
	isAdmin, err := a.roleRepo.HasRole(ctx, user.ID, models.RoleAdmin)
	if err != nil {
		logger.Error("failed to check role", slog.Any("error", err))
		return "", fmt.Errorf("%s: failed to check role: %w", op, err)
	}
	if isAdmin {
		role = models.RoleAdmin
	}

	token, err := security.NewToken(user, role, a.jwtSecret, a.tokenTTL)
	if err != nil {
		logger.Error("failed to generate token", slog.Any("error", err))
		return "", fmt.Errorf("%s: failed to generate token: %w", op, err)
	}

	logger.Info("user logged in successfully", slog.Int64("userID", user.ID), slog.String("role", role))
	return token, nil
}
