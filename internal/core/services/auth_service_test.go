package services_test

import (
	"testing"
	"time"

	"github.com/SscSPs/shop_ledger/internal/apperrors"
	"github.com/SscSPs/shop_ledger/internal/core/domain"
	"github.com/SscSPs/shop_ledger/internal/dto"
	"github.com/SscSPs/shop_ledger/internal/utils"
	"github.com/stretchr/testify/suite"
)

type AuthServiceTestSuite struct {
	ledgerSuite
}

func TestAuthServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}

// Tokens are stamped with the service clock, so run it at wall time for parsing.
func (s *AuthServiceTestSuite) SetupTest() {
	s.ledgerSuite.SetupTest()
	s.clock.now = time.Now().UTC()
}

func (s *AuthServiceTestSuite) login(username, password string) (*dto.LoginResponse, error) {
	return s.svc.Auth.Login(s.ctx, dto.LoginRequest{Username: username, Password: password})
}

func (s *AuthServiceTestSuite) TestEnsureAdminThenLogin() {
	s.Require().NoError(s.svc.Auth.EnsureAdmin(s.ctx, "admin", "correct-horse"))
	// second call is a no-op and keeps the original password
	s.Require().NoError(s.svc.Auth.EnsureAdmin(s.ctx, "admin", "other-password"))

	resp, err := s.login("admin", "correct-horse")
	s.Require().NoError(err)
	s.Equal(int64(3600), resp.ExpiresIn)
	s.Equal(domain.RoleAdmin, resp.User.Role)

	claims, err := utils.ParseAndValidateJWT(resp.Token, testConfig().JWTSecret)
	s.Require().NoError(err)
	s.Equal(resp.User.UserID, claims.Subject)
	s.Equal("admin", claims.Role)

	_, err = s.login("admin", "wrong-password")
	s.ErrorIs(err, apperrors.ErrUnauthorized)
	_, err = s.login("nobody", "correct-horse")
	s.ErrorIs(err, apperrors.ErrUnauthorized)
	s.Equal("Invalid username or password", apperrors.Message(err))
}

func (s *AuthServiceTestSuite) TestEnsureAdminGeneratesPassword() {
	s.Require().NoError(s.svc.Auth.EnsureAdmin(s.ctx, "admin", ""))

	user, err := s.store.Users().FindUserByUsername(s.ctx, "admin")
	s.Require().NoError(err)
	s.Equal(domain.RoleAdmin, user.Role)
	s.NotEmpty(user.PasswordHash)
}

func (s *AuthServiceTestSuite) TestCreateUser() {
	s.Require().NoError(s.svc.Auth.EnsureAdmin(s.ctx, "admin", "correct-horse"))
	admin, err := s.store.Users().FindUserByUsername(s.ctx, "admin")
	s.Require().NoError(err)

	cashier, err := s.svc.Auth.CreateUser(s.ctx, dto.CreateUserRequest{Username: "till1", Password: "till-pass-1", Name: "Till One"}, admin.UserID)
	s.Require().NoError(err)
	s.Equal(domain.RoleCashier, cashier.Role)
	s.Equal(admin.UserID, cashier.CreatedBy)

	_, err = s.svc.Auth.CreateUser(s.ctx, dto.CreateUserRequest{Username: "till1", Password: "till-pass-2", Name: "Dup"}, admin.UserID)
	s.ErrorIs(err, apperrors.ErrDuplicate)

	_, err = s.svc.Auth.CreateUser(s.ctx, dto.CreateUserRequest{Username: "till2", Password: "till-pass-2", Name: "Two"}, cashier.UserID)
	s.ErrorIs(err, apperrors.ErrUnauthorized)

	_, err = s.svc.Auth.CreateUser(s.ctx, dto.CreateUserRequest{Username: "x", Password: "short", Name: "Bad"}, admin.UserID)
	s.ErrorIs(err, apperrors.ErrValidation)
	s.Equal("Username must be at least 3 characters, Password must be at least 8 characters", apperrors.Message(err))
}
