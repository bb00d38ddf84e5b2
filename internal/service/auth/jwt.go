package auth

import (
	"fmt"
	"time"

	"github.com/Gojer16/Book-Management-API/internal/app_errors"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	AccessTokenType  = "access"
	RefreshTokenType = "refresh"
)

var signingMethod = jwt.SigningMethodHS256

// JWTManager signs access and refresh tokens with separate secrets, so a
// leaked access secret never lets anyone mint long-lived refresh tokens.
type JWTManager struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
	issuer        string
}

func NewJWTManager(accessSecret, refreshSecret, issuer string, accessTTL, refreshTTL time.Duration) *JWTManager {
	return &JWTManager{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
		issuer:        issuer,
	}
}

type AccessTokenClaims struct {
	TokenType string    `json:"token_type"`
	UserID    uuid.UUID `json:"user_id"`
	Role      string    `json:"role"`
	jwt.RegisteredClaims
}

type RefreshTokenClaims struct {
	TokenType string    `json:"token_type"`
	UserID    uuid.UUID `json:"user_id"`
	jwt.RegisteredClaims
}

func (j *JWTManager) RefreshTTL() time.Duration {
	return j.refreshTTL
}

func (j *JWTManager) IssueAccessToken(userID uuid.UUID, role string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(signingMethod, AccessTokenClaims{
		TokenType: AccessTokenType,
		UserID:    userID,
		Role:      role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			Issuer:    j.issuer,
			ExpiresAt: jwt.NewNumericDate(now.Add(j.accessTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	})

	signed, err := token.SignedString(j.accessSecret)
	if err != nil {
		return "", fmt.Errorf("access token signing failed: %w", err)
	}
	return signed, nil
}

func (j *JWTManager) IssueRefreshToken(userID uuid.UUID) (token string, expiresAt time.Time, err error) {
	now := time.Now()
	expiresAt = now.Add(j.refreshTTL)
	refreshToken := jwt.NewWithClaims(signingMethod, RefreshTokenClaims{
		TokenType: RefreshTokenType,
		UserID:    userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			Issuer:    j.issuer,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	})

	token, err = refreshToken.SignedString(j.refreshSecret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("refresh token signing failed: %w", err)
	}
	return token, expiresAt, nil
}

// AccessClaims verifies signature, expiry and token type against the access
// secret. Any failure is reported as ErrTokenInvalid.
func (j *JWTManager) AccessClaims(tokenStr string) (*AccessTokenClaims, error) {
	claims := &AccessTokenClaims{}
	_, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method != signingMethod {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return j.accessSecret, nil
	})
	if err != nil {
		return nil, app_errors.ErrTokenInvalid
	}

	if claims.TokenType != AccessTokenType {
		return nil, app_errors.ErrTokenInvalid
	}
	return claims, nil
}

// RefreshClaims verifies signature, expiry and token type against the refresh
// secret.
func (j *JWTManager) RefreshClaims(tokenStr string) (*RefreshTokenClaims, error) {
	claims := &RefreshTokenClaims{}
	_, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method != signingMethod {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return j.refreshSecret, nil
	})
	if err != nil {
		return nil, app_errors.ErrTokenInvalid
	}

	if claims.TokenType != RefreshTokenType {
		return nil, app_errors.ErrTokenInvalid
	}
	return claims, nil
}

// UnverifiedRefreshClaims decodes the claims without checking signature or
// expiry. Logout uses it to find the owning user even for tokens that no
// longer validate.
func (j *JWTManager) UnverifiedRefreshClaims(tokenStr string) (*RefreshTokenClaims, error) {
	claims := &RefreshTokenClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(tokenStr, claims); err != nil {
		return nil, app_errors.ErrTokenInvalid
	}
	if claims.TokenType != RefreshTokenType {
		return nil, app_errors.ErrTokenInvalid
	}
	return claims, nil
}
