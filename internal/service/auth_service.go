package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go-auth-service/internal/auth"
	"go-auth-service/internal/cache"
	"go-auth-service/internal/model"
)

// UserStore is the read-only persistence contract this service needs.
type UserStore interface {
	FindByIdentifier(ctx context.Context, identifier string) (model.User, error)
	FindByID(ctx context.Context, id string) (model.User, error)
}

type AuthService struct {
	users  UserStore
	cache  cache.RevocationCache
	tokens auth.TokenConfig
}

func NewAuthService(users UserStore, revocations cache.RevocationCache, tokens auth.TokenConfig) *AuthService {
	return &AuthService{users: users, cache: revocations, tokens: tokens}
}

// Login verifies the credential pair and mints an access token. Unknown
// identifier, inactive account and wrong password all collapse into
// ErrWrongCredentials so the response does not disclose which one failed;
// the distinction is logged server-side.
func (s *AuthService) Login(ctx context.Context, identifier string, password string) (model.TokenResponse, error) {
	user, err := s.users.FindByIdentifier(ctx, identifier)
	if errors.Is(err, model.ErrUserNotFound) {
		slog.Info("login rejected (unknown identifier)", "identifier", identifier)
		return model.TokenResponse{}, auth.ErrWrongCredentials
	}
	if err != nil {
		return model.TokenResponse{}, fmt.Errorf("lookup user: %w", err)
	}

	if !user.Active {
		slog.Info("login rejected (inactive account)", "user_id", user.ID)
		return model.TokenResponse{}, auth.ErrWrongCredentials
	}

	matched, err := auth.VerifyPassword(password, user.PasswordHash)
	if err != nil {
		return model.TokenResponse{}, err
	}
	if !matched {
		slog.Info("login rejected (password mismatch)", "user_id", user.ID)
		return model.TokenResponse{}, auth.ErrWrongCredentials
	}

	token, err := auth.IssueAccessToken(user.ID.String(), user.Roles, s.tokens)
	if err != nil {
		return model.TokenResponse{}, err
	}

	slog.Info("login succeeded", "user_id", user.ID)
	return model.TokenResponse{Token: token}, nil
}

// CurrentUser resolves the token subject to a user row.
func (s *AuthService) CurrentUser(ctx context.Context, claims auth.Claims) (model.User, error) {
	return s.users.FindByID(ctx, claims.Subject())
}

// Logout revokes the presented token by jti. Already-issued tokens with other
// ids stay valid.
func (s *AuthService) Logout(ctx context.Context, claims auth.Claims) error {
	if err := s.cache.RevokeToken(ctx, claims.TokenID()); err != nil {
		return err
	}

	slog.Info("token revoked", "sub", claims.Subject(), "jti", claims.TokenID())
	return nil
}

// RevokeUser raises the user's revoke-before mark to now, invalidating every
// token issued to that user at or before this moment.
func (s *AuthService) RevokeUser(ctx context.Context, userID string) error {
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return err
	}

	if err := s.cache.RevokeUserBefore(ctx, userID, time.Now().Unix()); err != nil {
		return err
	}

	slog.Info("user tokens revoked", "user_id", userID)
	return nil
}

// RevokeAll raises the global revoke-before mark to now, invalidating every
// outstanding token.
func (s *AuthService) RevokeAll(ctx context.Context) error {
	if err := s.cache.RevokeAllBefore(ctx, time.Now().Unix()); err != nil {
		return err
	}

	slog.Warn("all tokens revoked globally")
	return nil
}
