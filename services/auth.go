// Package services holds the session gate and the reminder business rules
// that sit between the HTTP layer and the store.
package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"reminders-server/auth"
	"reminders-server/common"
	"reminders-server/logging"
	"reminders-server/models"
	"reminders-server/store"
)

// AuthService issues, validates and revokes the single session token each
// user may hold.
type AuthService struct {
	users store.UserStore
	log   logging.Logger

	dummyOnce sync.Once
	dummy     string
}

func NewAuthService(users store.UserStore, log logging.Logger) *AuthService {
	return &AuthService{users: users, log: log}
}

// Login checks the credentials and stores a fresh token on the user,
// replacing any previous one. Unknown users and wrong passwords both yield
// common.ErrUnauthorized.
func (s *AuthService) Login(ctx context.Context, username, password string) (*models.User, string, error) {
	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// spend the same derivation cost as a real check
			auth.VerifyPassword(password, s.dummyCredential())
			return nil, "", common.ErrUnauthorized
		}
		return nil, "", fmt.Errorf("lookup user: %w", err)
	}

	if !auth.VerifyPassword(password, user.PasswordHash) {
		s.log.Info(ctx, "login rejected", "user_id", user.ID)
		return nil, "", common.ErrUnauthorized
	}

	token, err := auth.GenerateToken()
	if err != nil {
		return nil, "", err
	}
	if err := s.users.SetUserToken(ctx, user.ID, token); err != nil {
		return nil, "", fmt.Errorf("store token: %w", err)
	}
	user.Token = &token

	s.log.Info(ctx, "login", "user_id", user.ID)
	return user, token, nil
}

// Logout clears token. A token no user holds is common.ErrUnauthorized.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return common.ErrUnauthorized
	}
	if err := s.users.ClearUserToken(ctx, token); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return common.ErrUnauthorized
		}
		return fmt.Errorf("clear token: %w", err)
	}
	return nil
}

// Authenticate resolves a bearer token to its user by exact match.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, common.ErrUnauthorized
	}
	user, err := s.users.GetUserByToken(ctx, token)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, common.ErrUnauthorized
		}
		return nil, fmt.Errorf("lookup token: %w", err)
	}
	return user, nil
}

func (s *AuthService) dummyCredential() string {
	s.dummyOnce.Do(func() {
		cred, err := auth.HashPassword("dummy-password")
		if err != nil {
			s.log.Warn(context.Background(), "dummy credential unavailable", "error", err)
			return
		}
		s.dummy = cred
	})
	return s.dummy
}
