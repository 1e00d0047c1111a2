package memory

import (
	"context"

	"github.com/SscSPs/shop_ledger/internal/apperrors"
	"github.com/SscSPs/shop_ledger/internal/core/domain"
)

type userRepository struct{ s *Store }

func (r userRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	var (
		u  domain.User
		ok bool
	)
	r.s.read(func(st *state) { u, ok = st.users[userID] })
	if !ok {
		return nil, apperrors.New(apperrors.ErrNotFound, "User %s not found", userID)
	}
	return &u, nil
}

func (r userRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	var (
		u     domain.User
		found bool
	)
	r.s.read(func(st *state) {
		for _, candidate := range st.users {
			if candidate.Username == username {
				u, found = candidate, true
				return
			}
		}
	})
	if !found {
		return nil, apperrors.New(apperrors.ErrNotFound, "User %s not found", username)
	}
	return &u, nil
}

func (r userRepository) SaveUser(ctx context.Context, user domain.User) error {
	return r.s.write(func(st *state) error {
		for _, existing := range st.users {
			if existing.Username == user.Username {
				return apperrors.New(apperrors.ErrDuplicate, "Username %s already taken", user.Username)
			}
		}
		st.users[user.UserID] = user
		return nil
	})
}
