package auth

import (
	"context"
	"strings"
	"time"

	"github.com/Gojer16/Book-Management-API/internal/app_errors"
	"github.com/Gojer16/Book-Management-API/internal/models"
	"github.com/Gojer16/Book-Management-API/pkg/logger"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	minPasswordLen = 8
	maxPasswordLen = 30

	passwordSpecials = "!@#$%^&*()_+"
)

type UserRepo interface {
	CreateUser(ctx context.Context, user models.User) (*models.User, error)
	UserByEmail(ctx context.Context, email string) (*models.User, error)
	UserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	UpdateRole(ctx context.Context, id uuid.UUID, role string) (*models.User, error)
}

type tokenRepo interface {
	Add(ctx context.Context, userID uuid.UUID, token string, expiresAt time.Time) error
	Exists(ctx context.Context, userID uuid.UUID, token string) (bool, error)
	Delete(ctx context.Context, userID uuid.UUID, token string) error
}

type AuthService struct {
	log        logger.Log
	jwtManager *JWTManager
	userRepo   UserRepo
	tokenRepo  tokenRepo
}

func NewAuthService(l logger.Log, manager *JWTManager, uRepo UserRepo, tRepo tokenRepo) *AuthService {
	return &AuthService{
		log:        l,
		jwtManager: manager,
		userRepo:   uRepo,
		tokenRepo:  tRepo,
	}
}

// Register creates the account and immediately opens a session: the returned
// pair carries the access token for the response body and the refresh token
// for the cookie.
func (s *AuthService) Register(ctx context.Context, email, password string) (*models.User, *models.TokenPair, error) {
	email = models.NormalizeEmail(email)

	if err := validatePassword(password); err != nil {
		return nil, nil, err
	}

	// Checked here so the caller gets a clean error; the unique index on
	// email still backstops concurrent registrations.
	if _, err := s.userRepo.UserByEmail(ctx, email); err == nil {
		return nil, nil, app_errors.ErrUserExists
	} else if err != app_errors.ErrUserNotFound {
		return nil, nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, err
	}

	user := models.User{
		ID:       uuid.New(),
		Email:    email,
		Password: string(hash),
		Role:     models.UserRole,
	}

	created, err := s.userRepo.CreateUser(ctx, user)
	if err != nil {
		return nil, nil, err
	}

	pair, err := s.openSession(ctx, created)
	if err != nil {
		return nil, nil, err
	}
	return created, pair, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, *models.TokenPair, error) {
	user, err := s.userRepo.UserByEmail(ctx, models.NormalizeEmail(email))
	if err != nil {
		if err == app_errors.ErrUserNotFound {
			return nil, nil, app_errors.ErrInvalidCredentials
		}
		return nil, nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, nil, app_errors.ErrInvalidCredentials
	}

	pair, err := s.openSession(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

// openSession issues a token pair and appends the refresh token to the user's
// stored list. Existing sessions stay valid: one list entry per device.
func (s *AuthService) openSession(ctx context.Context, user *models.User) (*models.TokenPair, error) {
	accessToken, err := s.jwtManager.IssueAccessToken(user.ID, user.Role)
	if err != nil {
		return nil, err
	}
	refreshToken, expiresAt, err := s.jwtManager.IssueRefreshToken(user.ID)
	if err != nil {
		return nil, err
	}
	if err := s.tokenRepo.Add(ctx, user.ID, refreshToken, expiresAt); err != nil {
		return nil, err
	}
	return &models.TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// Refresh exchanges a valid, still-stored refresh token for a new access
// token. The refresh token itself is not rotated. A token that fails
// verification or was revoked by logout yields ErrTokenRevoked.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	if refreshToken == "" {
		return "", app_errors.ErrNoToken
	}

	claims, err := s.jwtManager.RefreshClaims(refreshToken)
	if err != nil {
		return "", app_errors.ErrTokenRevoked
	}

	stored, err := s.tokenRepo.Exists(ctx, claims.UserID, refreshToken)
	if err != nil {
		return "", err
	}
	if !stored {
		return "", app_errors.ErrTokenRevoked
	}

	user, err := s.userRepo.UserByID(ctx, claims.UserID)
	if err != nil {
		if err == app_errors.ErrUserNotFound {
			return "", app_errors.ErrTokenRevoked
		}
		return "", err
	}

	return s.jwtManager.IssueAccessToken(user.ID, user.Role)
}

// Logout removes the presented refresh token from its owner's stored list.
// The token is decoded without validity checks so even an expired session can
// be cleaned up. Logout never fails on an unrecognized token.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) {
	if refreshToken == "" {
		return
	}
	claims, err := s.jwtManager.UnverifiedRefreshClaims(refreshToken)
	if err != nil {
		return
	}
	if err := s.tokenRepo.Delete(ctx, claims.UserID, refreshToken); err != nil {
		s.log.ErrorErr("failed to delete refresh token on logout", err, "user_id", claims.UserID)
	}
}

// VerifyAccess validates a bearer access token and returns the identity it
// carries. No store lookup: the token alone proves the session.
func (s *AuthService) VerifyAccess(token string) (uuid.UUID, string, error) {
	claims, err := s.jwtManager.AccessClaims(token)
	if err != nil {
		return uuid.Nil, "", err
	}
	return claims.UserID, claims.Role, nil
}

func (s *AuthService) User(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return s.userRepo.UserByID(ctx, id)
}

func (s *AuthService) UpdateRole(ctx context.Context, userID uuid.UUID, role string) (*models.User, error) {
	role = strings.ToLower(strings.TrimSpace(role))
	if !models.ValidRole(role) {
		return nil, app_errors.ErrInvalidRole
	}
	return s.userRepo.UpdateRole(ctx, userID, role)
}

// validatePassword enforces the strength rule: 8-30 characters drawn from
// ASCII letters, digits and the allowed specials, with at least one uppercase
// letter, one lowercase letter, one digit and one special character.
func validatePassword(password string) error {
	if len(password) < minPasswordLen || len(password) > maxPasswordLen {
		return app_errors.ErrWeakPassword
	}
	var upper, lower, digit, special bool
	for _, r := range password {
		switch {
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= '0' && r <= '9':
			digit = true
		case strings.ContainsRune(passwordSpecials, r):
			special = true
		default:
			return app_errors.ErrWeakPassword
		}
	}
	if !upper || !lower || !digit || !special {
		return app_errors.ErrWeakPassword
	}
	return nil
}
