package service

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/eniac-club/regdesk/internal/config"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned when the access code does not verify.
var ErrInvalidCredentials = errors.New("invalid credentials")

// TokenTypeAdmin is the only token type this service issues.
const TokenTypeAdmin = "admin"

// Claims extends JWT standard claims with the token type.
type Claims struct {
	jwt.RegisteredClaims
	TokenType string `json:"token_type"`
}

// CredentialVerifier checks a presented admin access code. The comparison
// mechanism is swappable without touching call sites; the default plaintext
// comparison is a deliberately weak operator gate, not real authentication.
type CredentialVerifier interface {
	Verify(secret string) bool
}

// PlainVerifier compares the presented code against the configured shared
// secret. The secret is stored and compared in cleartext.
type PlainVerifier struct {
	accessCode string
}

// NewPlainVerifier creates a PlainVerifier for accessCode.
func NewPlainVerifier(accessCode string) *PlainVerifier {
	return &PlainVerifier{accessCode: accessCode}
}

// Verify reports whether secret matches the access code. Constant-time so
// the comparison itself leaks nothing, even though the gate stays weak.
func (v *PlainVerifier) Verify(secret string) bool {
	return subtle.ConstantTimeCompare([]byte(v.accessCode), []byte(secret)) == 1
}

// BcryptVerifier compares the presented code against a bcrypt hash.
type BcryptVerifier struct {
	hash string
}

// NewBcryptVerifier creates a BcryptVerifier for hash.
func NewBcryptVerifier(hash string) *BcryptVerifier {
	return &BcryptVerifier{hash: hash}
}

// Verify reports whether secret matches the stored hash.
func (v *BcryptVerifier) Verify(secret string) bool {
	return bcrypt.CompareHashAndPassword([]byte(v.hash), []byte(secret)) == nil
}

// AuthService gates the admin surface: one shared access code in, one admin
// JWT out. There is no user identity behind the token.
type AuthService struct {
	cfg      *config.Config
	verifier CredentialVerifier
}

// NewAuthService creates an AuthService using verifier to check access codes.
func NewAuthService(cfg *config.Config, verifier CredentialVerifier) *AuthService {
	return &AuthService{cfg: cfg, verifier: verifier}
}

// VerifierFromConfig picks the credential check implementation: bcrypt when
// a hash is configured, plaintext comparison otherwise.
func VerifierFromConfig(cfg *config.Config) CredentialVerifier {
	if cfg.AdminCodeHash != "" {
		return NewBcryptVerifier(cfg.AdminCodeHash)
	}
	return NewPlainVerifier(cfg.AdminAccessCode)
}

// Login verifies the access code and issues a signed admin token.
func (s *AuthService) Login(accessCode string) (string, error) {
	if !s.verifier.Verify(accessCode) {
		return "", ErrInvalidCredentials
	}

	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Subject:   TokenTypeAdmin,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.JWTExpiry)),
		},
		TokenType: TokenTypeAdmin,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// ValidateToken parses and validates a token string, returning its claims.
func (s *AuthService) ValidateToken(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}
