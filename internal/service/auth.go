package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/trucklog/backend/internal/domain"
	"github.com/trucklog/backend/internal/repo"
)

// defaultRole is assigned to every signup. Roles gate nothing — the field is
// carried for display only.
const defaultRole = "driver"

// AuthService implements signup, login, logout, and session resolution.
// It is the session registry of the system: every authenticated request goes
// through Resolve.
type AuthService struct {
	users    repo.UserRepo
	sessions repo.SessionRepo
}

// NewAuthService constructs an AuthService backed by the provided repos.
func NewAuthService(users repo.UserRepo, sessions repo.SessionRepo) *AuthService {
	return &AuthService{users: users, sessions: sessions}
}

// Signup creates a new account and returns its password-free view.
// Returns domain.ErrValidation if any field is missing and domain.ErrConflict
// if the username is already taken.
//
// The password is stored as given, in plaintext. The logbook this system
// replaces worked that way and the behavior is preserved knowingly.
func (s *AuthService) Signup(ctx context.Context, username, password, name string) (domain.PublicUser, error) {
	if strings.TrimSpace(username) == "" || password == "" || strings.TrimSpace(name) == "" {
		return domain.PublicUser{}, fmt.Errorf("%w: username, password and name are required", domain.ErrValidation)
	}

	user := domain.User{
		Username: sanitize(username),
		Password: password,
		Name:     sanitize(name),
		Role:     defaultRole,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return domain.PublicUser{}, fmt.Errorf("service.AuthService.Signup: %w", err)
	}
	return created.Public(), nil
}

// Login checks the credentials and mints a new opaque session token.
// Unknown username and wrong password fail identically with
// domain.ErrUnauthorized, so the login endpoint cannot be used to probe for
// existing usernames.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, domain.PublicUser, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", domain.PublicUser{}, fmt.Errorf("service.AuthService.Login: %w", domain.ErrUnauthorized)
		}
		return "", domain.PublicUser{}, fmt.Errorf("service.AuthService.Login: %w", err)
	}
	if user.Password != password {
		return "", domain.PublicUser{}, fmt.Errorf("service.AuthService.Login: %w", domain.ErrUnauthorized)
	}

	session := domain.Session{
		Token:  uuid.NewString(),
		UserID: user.ID,
	}
	if _, err := s.sessions.Create(ctx, session); err != nil {
		return "", domain.PublicUser{}, fmt.Errorf("service.AuthService.Login: %w", err)
	}

	return session.Token, user.Public(), nil
}

// Logout removes the session. It is idempotent: logging out an unknown or
// already-removed token succeeds.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if err := s.sessions.Delete(ctx, token); err != nil {
		return fmt.Errorf("service.AuthService.Logout: %w", err)
	}
	return nil
}

// Resolve maps a session token to the identity it was minted for.
// A missing or unknown token, and a session whose user has since been
// deleted, all fail with domain.ErrUnauthorized.
func (s *AuthService) Resolve(ctx context.Context, token string) (domain.PublicUser, error) {
	if token == "" {
		return domain.PublicUser{}, fmt.Errorf("service.AuthService.Resolve: %w", domain.ErrUnauthorized)
	}

	session, err := s.sessions.Get(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.PublicUser{}, fmt.Errorf("service.AuthService.Resolve: %w", domain.ErrUnauthorized)
		}
		return domain.PublicUser{}, fmt.Errorf("service.AuthService.Resolve: %w", err)
	}

	user, err := s.users.GetByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// Dangling session: the user was deleted after login.
			return domain.PublicUser{}, fmt.Errorf("service.AuthService.Resolve: %w", domain.ErrUnauthorized)
		}
		return domain.PublicUser{}, fmt.Errorf("service.AuthService.Resolve: %w", err)
	}

	return user.Public(), nil
}
