package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"tpo_system/internal/models"
	"tpo_system/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const (
	defaultTokenTTL   = 20 * time.Minute
	defaultBcryptCost = 11
)

// Domain errors for auth flows.
var (
	// ErrInvalidCredentials covers both unknown username and wrong password,
	// so callers cannot tell which half failed.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUsernameTaken      = errors.New("username already registered")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token expired")
)

// AuthConfig carries the auth knobs loaded at startup. The signing key is
// read once here and never from ambient state inside request handling.
type AuthConfig struct {
	SigningKey string
	TokenTTL   time.Duration
	BcryptCost int
}

func (c AuthConfig) withDefaults() AuthConfig {
	if c.TokenTTL <= 0 {
		c.TokenTTL = defaultTokenTTL
	}
	if c.BcryptCost == 0 {
		c.BcryptCost = defaultBcryptCost
	}
	return c
}

// AuthService handles user auth logic
type AuthService struct {
	authRepo repository.Authorization
	cfg      AuthConfig
	now      func() time.Time // injectable clock for expiry tests
}

func NewAuthService(repo repository.Authorization, cfg AuthConfig) *AuthService {
	return &AuthService{
		authRepo: repo,
		cfg:      cfg.withDefaults(),
		now:      time.Now,
	}
}

// SignUp validates the credentials, hashes the password and creates a user.
// The display name defaults to the local part of the username when absent.
func (s *AuthService) SignUp(username, password, name string) (int, error) {
	username = normalizeUsername(username)
	if verr := validateRegistration(username, password, name); verr != nil {
		return 0, verr
	}

	name = strings.TrimSpace(name)
	if name == "" {
		name = localPart(username)
	}

	hash, err := hashPassword(password, s.cfg.BcryptCost)
	if err != nil {
		return 0, fmt.Errorf("hash password: %w", err)
	}

	id, err := s.authRepo.Create(username, name, hash)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateUsername) {
			return 0, ErrUsernameTaken
		}
		return 0, err
	}
	return id, nil
}

// Claims defines JWT claims
type Claims struct {
	jwt.RegisteredClaims
	UserID   int    `json:"id"`
	Username string `json:"username"`
}

// SignIn validates credentials and returns a signed token plus the account.
// Unknown username and wrong password produce the same ErrInvalidCredentials.
func (s *AuthService) SignIn(username, password string) (string, *models.User, error) {
	username = normalizeUsername(username)

	u, err := s.authRepo.GetByUsername(username)
	if err != nil {
		return "", nil, err
	}
	if u == nil {
		return "", nil, ErrInvalidCredentials
	}

	if err := verifyPassword(u.PasswordHash, password); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.issueToken(u)
	if err != nil {
		return "", nil, err
	}
	return token, u, nil
}

// ParseToken verifies signature and expiry, returning the embedded claims.
// Expired tokens yield ErrTokenExpired; anything else ErrInvalidToken.
func (s *AuthService) ParseToken(accessToken string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(accessToken, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		// Ensure HMAC signing is used
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.SigningKey), nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// GetUser fetches the account for an authenticated subject.
func (s *AuthService) GetUser(id int) (*models.User, error) {
	u, err := s.authRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}

// UpdateName validates and stores a new display name, returning the
// refreshed account.
func (s *AuthService) UpdateName(id int, name string) (*models.User, error) {
	name = strings.TrimSpace(name)
	if verr := validateDisplayName(name); verr != nil {
		return nil, verr
	}

	if err := s.authRepo.UpdateName(id, name); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return s.GetUser(id)
}

// helper: issue a signed JWT for a user
func (s *AuthService) issueToken(u *models.User) (string, error) {
	now := s.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.TokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		UserID:   u.ID,
		Username: u.Username,
	})
	signed, err := token.SignedString([]byte(s.cfg.SigningKey))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// helper: hash password with the configured cost
func hashPassword(password string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// helper: verify password against hash (constant-time inside bcrypt)
func verifyPassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

func normalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

// localPart returns everything before the '@' of an email-shaped username.
func localPart(username string) string {
	if i := strings.IndexByte(username, '@'); i > 0 {
		return username[:i]
	}
	return username
}
