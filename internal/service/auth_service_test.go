package service

import (
	"testing"
	"time"

	"github.com/eniac-club/regdesk/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func testConfig() *config.Config {
	return &config.Config{
		AdminAccessCode: "ZeroDayEniac2025LinuxEvent",
		JWTSecret:       "test-secret",
		JWTExpiry:       time.Hour,
	}
}

func TestLoginIssuesValidAdminToken(t *testing.T) {
	cfg := testConfig()
	svc := NewAuthService(cfg, VerifierFromConfig(cfg))

	token, err := svc.Login("ZeroDayEniac2025LinuxEvent")
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, TokenTypeAdmin, claims.TokenType)
}

func TestLoginRejectsWrongCode(t *testing.T) {
	cfg := testConfig()
	svc := NewAuthService(cfg, VerifierFromConfig(cfg))

	_, err := svc.Login("wrong-code")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login("")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestValidateTokenRejectsForeignSignature(t *testing.T) {
	cfg := testConfig()
	svc := NewAuthService(cfg, VerifierFromConfig(cfg))

	token, err := svc.Login(cfg.AdminAccessCode)
	require.NoError(t, err)

	otherCfg := testConfig()
	otherCfg.JWTSecret = "different-secret"
	other := NewAuthService(otherCfg, VerifierFromConfig(otherCfg))

	_, err = other.ValidateToken(token)
	assert.Error(t, err)
}

func TestBcryptVerifierSelectedWhenHashConfigured(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)

	cfg := testConfig()
	cfg.AdminCodeHash = string(hash)

	verifier := VerifierFromConfig(cfg)
	assert.IsType(t, &BcryptVerifier{}, verifier)
	assert.True(t, verifier.Verify("s3cret"))
	assert.False(t, verifier.Verify("ZeroDayEniac2025LinuxEvent"))
}

func TestPlainVerifier(t *testing.T) {
	v := NewPlainVerifier("code")
	assert.True(t, v.Verify("code"))
	assert.False(t, v.Verify("Code"))
	assert.False(t, v.Verify(""))
}
