package services

import (
	"context"

	"github.com/SscSPs/shop_ledger/internal/core/domain"
	"github.com/SscSPs/shop_ledger/internal/dto"
)

// AuthSvcFacade defines operator authentication
type AuthSvcFacade interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	CreateUser(ctx context.Context, req dto.CreateUserRequest, creatorUserID string) (*domain.User, error)
	// EnsureAdmin creates the given admin account when no user with that name exists.
	EnsureAdmin(ctx context.Context, username, password string) error
}
