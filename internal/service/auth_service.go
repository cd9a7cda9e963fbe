package service

import (
	"crypto/subtle"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const RoleAdmin = "admin"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrLoginDisabled      = errors.New("admin login is not configured")
)

// AuthService issues admin tokens for the single operator account
// configured through ADMIN_USER and ADMIN_PASSWORD_HASH.
type AuthService struct {
	user         string
	passwordHash []byte
	jwtSecret    []byte
	ttl          time.Duration
}

func NewAuthService(user, passwordHash, secret string, ttl time.Duration) *AuthService {
	return &AuthService{
		user:         user,
		passwordHash: []byte(passwordHash),
		jwtSecret:    []byte(secret),
		ttl:          ttl,
	}
}

// LoginEnabled reports whether both a password hash and a signing secret
// are configured.
func (s *AuthService) LoginEnabled() bool {
	return len(s.passwordHash) > 0 && len(s.jwtSecret) > 0
}

// ================== LOGIN ==================

func (s *AuthService) Login(username, password string) (string, error) {
	if !s.LoginEnabled() {
		return "", ErrLoginDisabled
	}
	if subtle.ConstantTimeCompare([]byte(username), []byte(s.user)) != 1 {
		return "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}
	return SignToken(string(s.jwtSecret), username, RoleAdmin, s.ttl)
}

// ================== TOKENS ==================

// SignToken returns an HS256 token carrying sub, role, iat and exp.
func SignToken(secret, subject, role string, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  subject,
		"role": role,
		"iat":  now.Unix(),
		"exp":  now.Add(ttl).Unix(),
	})
	return token.SignedString([]byte(secret))
}

// HashPassword produces a value for ADMIN_PASSWORD_HASH.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
