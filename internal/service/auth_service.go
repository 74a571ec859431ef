package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/laurenz19/tourvisit/internal/domain"
	"github.com/laurenz19/tourvisit/internal/idgen"
	"github.com/laurenz19/tourvisit/internal/observability/metrics"
	"github.com/laurenz19/tourvisit/internal/security/auth"
)

// TokenDenylist records revoked refresh tokens. Implementations must keep
// a revoked token listed at least until its natural expiry.
type TokenDenylist interface {
	Revoke(ctx context.Context, token string, ttl time.Duration) error
	IsRevoked(ctx context.Context, token string) (bool, error)
}

// TokenPair is the login response payload.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// AuthService handles registration, login, and token refresh.
type AuthService struct {
	users    domain.UserRepository
	counters domain.CounterRepository
	tokens   *auth.TokenManager
	denylist TokenDenylist // nil when revocation is not configured
	logger   *slog.Logger
}

// NewAuthService creates a new authentication service. denylist may be
// nil, in which case issued refresh tokens stay valid for their full
// lifetime (the original stateless behavior).
func NewAuthService(
	users domain.UserRepository,
	counters domain.CounterRepository,
	tokens *auth.TokenManager,
	denylist TokenDenylist,
	logger *slog.Logger,
) *AuthService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthService{
		users:    users,
		counters: counters,
		tokens:   tokens,
		denylist: denylist,
		logger:   logger,
	}
}

// Register creates a new user with a bcrypt-hashed password and returns
// the public projection. The hash carries its own per-password salt, so
// the stored credential cannot be reversed without brute force.
func (s *AuthService) Register(username, email, password string) (*domain.PublicUser, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("failed to hash password", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	nb, err := s.counters.Next("users")
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:       idgen.Generate(idgen.UserPrefix, nb, idgen.ShortIDSize),
		Username: username,
		Email:    email,
		Password: string(hash),
	}

	if err := s.users.Create(user); err != nil {
		return nil, err
	}

	s.logger.Info("user registered",
		slog.String("user_id", user.ID),
		slog.String("email", user.Email),
	)

	public := user.Public()
	return &public, nil
}

// Login checks the credentials and issues an access/refresh token pair.
// A missing user is reported distinctly from a wrong password, matching
// the source behavior.
func (s *AuthService) Login(email, password string) (*TokenPair, error) {
	user, err := s.users.GetByEmail(email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			metrics.ObserveLogin("user_not_found")
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		s.logger.Info("login failed with wrong password", slog.String("email", email))
		metrics.ObserveLogin("invalid_credentials")
		return nil, domain.ErrInvalidCredentials
	}

	accessToken, err := s.tokens.GenerateAccessToken(user.Username, user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}
	refreshToken, err := s.tokens.GenerateRefreshToken(user.Username, user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	s.logger.Info("user logged in",
		slog.String("user_id", user.ID),
		slog.String("email", user.Email),
	)
	metrics.ObserveLogin("success")

	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// Refresh verifies a refresh token and mints a fresh access token with the
// same identity claims and new iat/exp. The refresh token is not rotated,
// and the user record is deliberately not re-checked: a refresh token
// outlives account deletion for its full lifetime (source behavior).
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.tokens.VerifyRefreshToken(refreshToken)
	if err != nil {
		return "", domain.ErrUnauthenticated
	}

	if s.denylist != nil {
		revoked, err := s.denylist.IsRevoked(ctx, refreshToken)
		if err != nil {
			return "", fmt.Errorf("failed to check token revocation: %w", err)
		}
		if revoked {
			return "", domain.ErrUnauthenticated
		}
	}

	accessToken, err := s.tokens.GenerateAccessToken(claims.Username, claims.Email)
	if err != nil {
		return "", fmt.Errorf("failed to generate access token: %w", err)
	}
	return accessToken, nil
}

// RevocationEnabled reports whether a denylist backend is configured.
func (s *AuthService) RevocationEnabled() bool {
	return s.denylist != nil
}

// Logout revokes the presented refresh token until its natural expiry.
// Only available when a denylist backend is configured.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	claims, err := s.tokens.VerifyRefreshToken(refreshToken)
	if err != nil {
		return domain.ErrUnauthenticated
	}

	ttl := time.Hour
	if claims.ExpiresAt != nil {
		ttl = time.Until(claims.ExpiresAt.Time)
	}
	if ttl <= 0 {
		return nil
	}

	if err := s.denylist.Revoke(ctx, refreshToken, ttl); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}

	s.logger.Info("refresh token revoked", slog.String("email", claims.Email))
	return nil
}
