package auth

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims carried by both token classes: the identity the token was issued
// for plus the registered iat/exp fields.
type Claims struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	jwt.RegisteredClaims
}

// TokenManager issues and verifies the two token classes. Access and
// refresh tokens are signed with distinct HMAC secrets so one class can
// never be presented in place of the other.
type TokenManager struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
	issuer        string
}

// NewTokenManager creates a token manager. TTL defaults match the source
// behavior: 180 seconds for access tokens, one year for refresh tokens.
func NewTokenManager(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) *TokenManager {
	if accessTTL <= 0 {
		accessTTL = 180 * time.Second
	}
	if refreshTTL <= 0 {
		refreshTTL = 365 * 24 * time.Hour
	}
	return &TokenManager{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
		issuer:        "tourvisit",
	}
}

// GenerateAccessToken issues a short-lived access token for the identity.
func (tm *TokenManager) GenerateAccessToken(username, email string) (string, error) {
	return tm.generate(username, email, tm.accessTTL, tm.accessSecret)
}

// GenerateRefreshToken issues a long-lived refresh token for the identity.
func (tm *TokenManager) GenerateRefreshToken(username, email string) (string, error) {
	return tm.generate(username, email, tm.refreshTTL, tm.refreshSecret)
}

func (tm *TokenManager) generate(username, email string, ttl time.Duration, secret []byte) (string, error) {
	now := time.Now()
	claims := Claims{
		Username: username,
		Email:    email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			Issuer:    tm.issuer,
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// VerifyAccessToken validates a token against the access secret.
func (tm *TokenManager) VerifyAccessToken(tokenString string) (*Claims, error) {
	return tm.verify(tokenString, tm.accessSecret)
}

// VerifyRefreshToken validates a token against the refresh secret.
func (tm *TokenManager) VerifyRefreshToken(tokenString string) (*Claims, error) {
	return tm.verify(tokenString, tm.refreshSecret)
}

func (tm *TokenManager) verify(tokenString string, secret []byte) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse token failed: %w", err)
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}
	return claims, nil
}

// ExtractToken pulls the bearer token out of an Authorization header value.
func ExtractToken(authHeader string) (string, error) {
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", fmt.Errorf("invalid authorization header")
	}
	return parts[1], nil
}
