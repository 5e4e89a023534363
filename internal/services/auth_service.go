package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"deenha/internal/apperrors"
	"deenha/internal/models"
	"deenha/internal/repositories"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrInvalidCredentials is returned for an unknown email or a wrong password.
	ErrInvalidCredentials = fmt.Errorf("%w: invalid credentials", apperrors.ErrAuthFailure)
	// ErrNoRole is returned when an account has no dashboard role yet.
	ErrNoRole = fmt.Errorf("%w: no dashboard role assigned", apperrors.ErrForbidden)
	// ErrTokenRevoked is returned for a token that was logged out.
	ErrTokenRevoked = fmt.Errorf("%w: token revoked", apperrors.ErrAuthFailure)
)

const revokedPrefix = "revoked:"

// AuthService handles business logic for authentication and authorization.
type AuthService struct {
	userRepo   repositories.UserRepository
	revoked    repositories.KVStore
	jwtSecret  []byte
	tokenDurat time.Duration
	logger     *zap.Logger
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repositories.UserRepository, revoked repositories.KVStore, jwtSecret string, tokenDuration time.Duration, logger *zap.Logger) *AuthService {
	if tokenDuration <= 0 {
		tokenDuration = 24 * time.Hour
	}
	return &AuthService{
		userRepo:   userRepo,
		revoked:    revoked,
		jwtSecret:  []byte(jwtSecret),
		tokenDurat: tokenDuration,
		logger:     logger,
	}
}

// RegisterUser hashes the password and stores a new account. The account
// has no role until one is assigned with AssignRole.
func (s *AuthService) RegisterUser(ctx context.Context, user *models.User) error {
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	if existing, err := s.userRepo.GetByEmail(ctx, user.Email); err == nil && existing != nil {
		return fmt.Errorf("%w: email '%s' already registered", apperrors.ErrConflict, user.Email)
	} else if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return fmt.Errorf("failed to check email: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.Password = string(hashedPassword)
	user.Role = ""

	if err := s.userRepo.Create(ctx, user); err != nil {
		return fmt.Errorf("failed to register user: %w", err)
	}
	return nil
}

// LoginUser checks the credentials and returns a signed token for a user
// holding a dashboard role.
func (s *AuthService) LoginUser(ctx context.Context, email, password string) (string, *models.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.logger.Error("user lookup failed", zap.Error(err))
		}
		return "", nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}
	if !models.ValidRole(user.Role) {
		return "", nil, ErrNoRole
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"role":    user.Role,
		"jti":     uuid.NewString(),
		"exp":     now.Add(s.tokenDurat).Unix(),
		"iat":     now.Unix(),
	})

	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", nil, fmt.Errorf("failed to generate token: %w", err)
	}

	user.Password = ""
	return tokenString, user, nil
}

// ValidateToken parses and validates a JWT token, returning the claims if
// it is well formed, unexpired and not revoked.
func (s *AuthService) ValidateToken(ctx context.Context, tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: invalid token: %v", apperrors.ErrAuthFailure, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("%w: invalid token", apperrors.ErrAuthFailure)
	}

	jti, _ := claims["jti"].(string)
	if jti != "" && s.revoked != nil {
		_, revoked, err := s.revoked.Get(ctx, revokedPrefix+jti)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", apperrors.ErrStorageFailure, err)
		}
		if revoked {
			return nil, ErrTokenRevoked
		}
	}
	return claims, nil
}

// Logout revokes the token until it would have expired anyway.
func (s *AuthService) Logout(ctx context.Context, tokenString string) error {
	claims, err := s.ValidateToken(ctx, tokenString)
	if err != nil {
		return err
	}
	jti, _ := claims["jti"].(string)
	if jti == "" || s.revoked == nil {
		return nil
	}

	ttl := s.tokenDurat
	if exp, ok := claims["exp"].(float64); ok {
		ttl = time.Until(time.Unix(int64(exp), 0))
	}
	if ttl <= 0 {
		return nil
	}
	if err := s.revoked.Set(ctx, revokedPrefix+jti, "1", ttl); err != nil {
		return fmt.Errorf("%w: %w", apperrors.ErrStorageFailure, err)
	}
	return nil
}

// AssignRole sets the dashboard role of a user.
func (s *AuthService) AssignRole(ctx context.Context, userID, role string) error {
	if !models.ValidRole(role) {
		return fmt.Errorf("%w: unknown role %q", apperrors.ErrValidation, role)
	}
	return s.userRepo.UpdateRole(ctx, userID, role)
}

// GetUser returns a user without the password hash.
func (s *AuthService) GetUser(ctx context.Context, id string) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	user.Password = ""
	return user, nil
}
