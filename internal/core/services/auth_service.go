package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/shop_ledger/internal/apperrors"
	"github.com/SscSPs/shop_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/shop_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/shop_ledger/internal/core/ports/services"
	"github.com/SscSPs/shop_ledger/internal/dto"
	"github.com/SscSPs/shop_ledger/internal/platform/config"
	"github.com/SscSPs/shop_ledger/internal/utils"
	"github.com/google/uuid"
)

const invalidCredentials = "Invalid username or password"

// bootstrapPasswordLength is the length of the admin password generated when none is configured.
const bootstrapPasswordLength = 16

// authService signs operators in with a password and hands out JWT access tokens.
type authService struct {
	BaseService
	cfg   *config.Config
	users portsrepo.UserRepositoryFacade
}

// NewAuthService creates a new instance of authService.
func NewAuthService(cfg *config.Config, users portsrepo.UserRepositoryFacade, options ...ServiceOption) portssvc.AuthSvcFacade {
	return &authService{
		BaseService: newBaseService(options),
		cfg:         cfg,
		users:       users,
	}
}

var _ portssvc.AuthSvcFacade = (*authService)(nil)

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	logger := s.GetLogger(ctx).With(slog.String("username", req.Username))

	user, err := s.users.FindUserByUsername(ctx, strings.TrimSpace(req.Username))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Login attempt for unknown user")
			return nil, apperrors.New(apperrors.ErrUnauthorized, invalidCredentials)
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		logger.Warn("Login attempt with wrong password")
		return nil, apperrors.New(apperrors.ErrUnauthorized, invalidCredentials)
	}

	token, err := utils.GenerateJWT(user.UserID, string(user.Role), s.cfg.JWTSecret, s.Now(), s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}

	logger.Info("Operator logged in", slog.String("user_id", user.UserID))
	return &dto.LoginResponse{
		Token:     token,
		ExpiresIn: int64(s.cfg.JWTExpiryDuration.Seconds()),
		User:      *user,
	}, nil
}

// CreateUser adds an operator. Only admins may do this.
func (s *authService) CreateUser(ctx context.Context, req dto.CreateUserRequest, creatorUserID string) (*domain.User, error) {
	creator, err := s.users.FindUserByID(ctx, creatorUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.New(apperrors.ErrUnauthorized, "Unknown operator")
		}
		return nil, err
	}
	if creator.Role != domain.RoleAdmin {
		return nil, apperrors.New(apperrors.ErrUnauthorized, "Only admins can create operators")
	}

	role := req.Role
	if role == "" {
		role = domain.RoleCashier
	}
	return s.createUser(ctx, req.Username, req.Password, req.Name, role, creatorUserID)
}

func (s *authService) createUser(ctx context.Context, username, password, name string, role domain.UserRole, creatorUserID string) (*domain.User, error) {
	var problems []string
	username = strings.TrimSpace(username)
	if len(username) < 3 {
		problems = append(problems, "Username must be at least 3 characters")
	}
	problems = append(problems, utils.PasswordProblems(password)...)
	if role != domain.RoleAdmin && role != domain.RoleCashier {
		problems = append(problems, fmt.Sprintf("Invalid role %q", role))
	}
	if err := apperrors.NewValidation(problems...); err != nil {
		return nil, err
	}

	hash, err := utils.HashPassword(password, s.cfg.PasswordCost)
	if err != nil {
		return nil, err
	}

	now := s.Now()
	user := domain.User{
		UserID:       uuid.NewString(),
		Username:     username,
		PasswordHash: hash,
		Name:         name,
		Role:         role,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}
	if err := s.users.SaveUser(ctx, user); err != nil {
		return nil, err
	}
	s.LogInfo(ctx, "Operator created", slog.String("user_id", user.UserID), slog.String("role", string(role)))
	return &user, nil
}

// EnsureAdmin creates the bootstrap admin when missing. An empty password is
// replaced with a random one that is logged once.
func (s *authService) EnsureAdmin(ctx context.Context, username, password string) error {
	_, err := s.users.FindUserByUsername(ctx, username)
	if err == nil {
		return nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return fmt.Errorf("failed to look up admin user: %w", err)
	}

	generated := password == ""
	if generated {
		if password, err = utils.GeneratePassword(bootstrapPasswordLength); err != nil {
			return err
		}
	}

	user, err := s.createUser(ctx, username, password, "Administrator", domain.RoleAdmin, "system")
	if err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}
	if generated {
		s.GetLogger(ctx).Warn("Created admin user with a generated password, change it after first login",
			slog.String("username", user.Username), slog.String("password", password))
	}
	return nil
}
