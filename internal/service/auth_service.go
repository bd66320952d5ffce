package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"greenshop/internal/kv"
)

// Storage keys for the auth gate.
const (
	authTokenKey = "greenshop_auth_token"
	passwordKey  = "greenshop_admin_password"
)

const (
	// BcryptCost is the cost factor for bcrypt hashing.
	BcryptCost = 10

	// MinPasswordLength is the shortest admin password ChangePassword accepts.
	MinPasswordLength = 6
)

var (
	ErrInvalidCredentials = errors.New("invalid password")
	ErrPasswordTooShort   = errors.New("new password must be at least 6 characters")
	ErrInvalidToken       = errors.New("invalid token")
)

// AuthService is the single-secret admin gate. The stored password is a
// bcrypt hash, never plaintext. Login also issues a signed token for the
// HTTP surface; IsAuthenticated reflects the persisted logged-in flag.
type AuthService interface {
	Login(ctx context.Context, password string) (string, error)
	Logout(ctx context.Context) error
	IsAuthenticated(ctx context.Context) bool
	ChangePassword(ctx context.Context, current, newPassword string) error
}

// Claims are the JWT claims carried by admin session tokens.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

type authService struct {
	store           kv.Store
	jwtSecret       string
	tokenExpiry     time.Duration
	defaultPassword string
}

// NewAuthService creates an AuthService. defaultPassword seeds the stored
// hash on first use when no password has ever been set.
func NewAuthService(store kv.Store, jwtSecret string, tokenExpiry time.Duration, defaultPassword string) AuthService {
	return &authService{
		store:           store,
		jwtSecret:       jwtSecret,
		tokenExpiry:     tokenExpiry,
		defaultPassword: defaultPassword,
	}
}

// Login verifies password against the stored hash. On success it persists
// the authenticated flag and returns a signed admin token.
func (s *authService) Login(ctx context.Context, password string) (string, error) {
	hash, err := s.currentHash(ctx)
	if err != nil {
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword(hash, []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	if err := s.store.Set(ctx, authTokenKey, []byte("true")); err != nil {
		return "", fmt.Errorf("failed to persist auth flag: %w", err)
	}

	token, err := s.generateToken()
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return token, nil
}

// Logout clears the authenticated flag. Logging out while already logged
// out is a no-op.
func (s *authService) Logout(ctx context.Context) error {
	if err := s.store.Remove(ctx, authTokenKey); err != nil {
		return fmt.Errorf("failed to clear auth flag: %w", err)
	}
	return nil
}

// IsAuthenticated reports whether the persisted logged-in flag is set.
func (s *authService) IsAuthenticated(ctx context.Context) bool {
	raw, err := s.store.Get(ctx, authTokenKey)
	if err != nil {
		return false
	}
	return string(raw) == "true"
}

// ChangePassword replaces the stored hash after verifying the current
// password. A wrong current password or a new password shorter than
// MinPasswordLength leaves the stored hash unchanged.
func (s *authService) ChangePassword(ctx context.Context, current, newPassword string) error {
	hash, err := s.currentHash(ctx)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword(hash, []byte(current)); err != nil {
		return ErrInvalidCredentials
	}

	if len(newPassword) < MinPasswordLength {
		return ErrPasswordTooShort
	}

	newHash, err := bcrypt.GenerateFromPassword([]byte(newPassword), BcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.store.Set(ctx, passwordKey, newHash); err != nil {
		return fmt.Errorf("failed to store password: %w", err)
	}
	return nil
}

// currentHash returns the stored password hash, seeding it from the
// default password on first use.
func (s *authService) currentHash(ctx context.Context) ([]byte, error) {
	raw, err := s.store.Get(ctx, passwordKey)
	if err == nil {
		return raw, nil
	}
	if err != kv.ErrKeyNotFound {
		return nil, fmt.Errorf("failed to read password: %w", err)
	}

	seeded, err := bcrypt.GenerateFromPassword([]byte(s.defaultPassword), BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash default password: %w", err)
	}
	if err := s.store.Set(ctx, passwordKey, seeded); err != nil {
		return nil, fmt.Errorf("failed to seed password: %w", err)
	}
	return seeded, nil
}

// generateToken issues an HS256 token with the admin role claim.
func (s *authService) generateToken() (string, error) {
	now := time.Now()
	claims := &Claims{
		Role: "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenExpiry)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}
