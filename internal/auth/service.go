// Package auth is the identity collaborator: local users with bcrypt
// passwords, session cookies for browsers and JWT/API tokens for API
// clients. The catalog services only ever see the opaque user ID this
// package resolves.
package auth

import (
	"errors"
	"fmt"
	"regexp"
	"time"

	"gorm.io/gorm"

	"github.com/mrlokans/bookreviews/internal/config"
	"github.com/mrlokans/bookreviews/internal/database/users"
	"github.com/mrlokans/bookreviews/internal/entities"
)

// Validation patterns
var (
	usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_-]{3,64}$`)
	emailPattern    = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
)

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrUserExists       = errors.New("user already exists")
	ErrInvalidToken     = errors.New("invalid token")
	ErrAuthRequired     = errors.New("authentication required")
	ErrInvalidRole      = errors.New("invalid role")
	ErrUsernameRequired = errors.New("username is required")
	ErrEmailRequired    = errors.New("email is required")
	ErrPasswordRequired = errors.New("password is required")
	ErrUsernameInvalid  = errors.New("username must be 3-64 characters, alphanumeric and underscore/hyphen only")
	ErrEmailInvalid     = errors.New("invalid email format")
)

// Service handles authentication and user management.
type Service struct {
	users     *users.Repository
	config    config.Auth
	jwtSecret []byte
}

// NewService creates a new authentication service. The JWT secret is taken
// from config or generated for the process lifetime when unset.
func NewService(repo *users.Repository, cfg config.Auth) (*Service, error) {
	secret := []byte(cfg.JWTSecret)
	if len(secret) == 0 {
		generated, err := GenerateSecret(32)
		if err != nil {
			return nil, fmt.Errorf("failed to generate JWT secret: %w", err)
		}
		secret = generated
	}

	return &Service{
		users:     repo,
		config:    cfg,
		jwtSecret: secret,
	}, nil
}

// IsAuthEnabled reports whether local authentication is active.
func (s *Service) IsAuthEnabled() bool {
	return s.config.Mode == config.AuthModeLocal
}

// CreateUser creates a new user with password authentication.
func (s *Service) CreateUser(username, email, password string, role entities.UserRole) (*entities.User, error) {
	if username == "" {
		return nil, ErrUsernameRequired
	}
	if email == "" {
		return nil, ErrEmailRequired
	}
	if password == "" {
		return nil, ErrPasswordRequired
	}
	if !usernamePattern.MatchString(username) {
		return nil, ErrUsernameInvalid
	}
	// RFC 5321 length limit
	if len(email) > 254 || !emailPattern.MatchString(email) {
		return nil, ErrEmailInvalid
	}

	switch role {
	case entities.UserRoleAdmin, entities.UserRoleMember:
	default:
		return nil, ErrInvalidRole
	}

	if _, err := s.users.GetByUsername(username); err == nil {
		return nil, ErrUserExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if _, err := s.users.GetByEmail(email); err == nil {
		return nil, ErrUserExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	passwordHash, err := HashPassword(password, s.config.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.users.Create(username, email, passwordHash, role)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

// Authenticate validates credentials and returns the user. The identifier
// may be a username or an email.
func (s *Service) Authenticate(identifier, password string) (*entities.User, error) {
	user, err := s.users.GetByUsername(identifier)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		user, err = s.users.GetByEmail(identifier)
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// Burn a bcrypt comparison so missing users cost the same as bad passwords.
		_ = CheckPassword(password, "$2a$12$000000000000000000000uGyyA1zHmiWvBlcy1ey0c6d1hDXXarW")
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if err := CheckPassword(password, user.PasswordHash); err != nil {
		return nil, ErrInvalidPassword
	}
	return user, nil
}

// GetUserByID loads a user by their opaque identifier.
func (s *Service) GetUserByID(id string) (*entities.User, error) {
	user, err := s.users.GetByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	return user, err
}

// IssueJWT signs an API token for an authenticated user.
func (s *Service) IssueJWT(user *entities.User) (string, time.Time, error) {
	ttl := s.config.TokenExpiry
	if ttl <= 0 {
		ttl = 72 * time.Hour
	}
	return GenerateJWT(s.jwtSecret, user, ttl)
}

// ValidateJWT resolves a bearer JWT to its user.
func (s *Service) ValidateJWT(token string) (*entities.User, error) {
	claims, err := ParseJWT(s.jwtSecret, token)
	if err != nil {
		return nil, ErrInvalidToken
	}
	return s.GetUserByID(claims.Subject)
}

// IssueAPIToken generates a long-lived API token for the user and stores its
// hash. The plaintext is returned once.
func (s *Service) IssueAPIToken(userID string) (string, error) {
	plaintext, hash, err := GenerateAPIToken()
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	if err := s.users.SetTokenHash(userID, hash); err != nil {
		return "", fmt.Errorf("failed to store token: %w", err)
	}
	return plaintext, nil
}

// RevokeAPIToken clears the user's stored API token.
func (s *Service) RevokeAPIToken(userID string) error {
	return s.users.SetTokenHash(userID, "")
}

// ValidateAPIToken resolves a bearer API token to its user.
func (s *Service) ValidateAPIToken(token string) (*entities.User, error) {
	if token == "" {
		return nil, ErrInvalidToken
	}
	user, err := s.users.GetByTokenHash(HashToken(token))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidToken
	}
	return user, err
}
