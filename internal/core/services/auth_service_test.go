package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/kestrelbank/ledger_app/internal/core/domain"
	"github.com/kestrelbank/ledger_app/internal/core/services"
	"github.com/kestrelbank/ledger_app/internal/platform/config"
	"github.com/kestrelbank/ledger_app/internal/utils"
)

func TestGenerateAccessToken(t *testing.T) {
	cfg := &config.Config{
		JWTSecret:         "test-secret-key",
		JWTExpiryDuration: time.Hour,
		JWTIssuer:         "kestrel-ledger",
	}
	service := services.NewTokenService(cfg)
	user := &domain.User{UserID: "usr-a1b2c3"}

	token, expiresAt, err := service.GenerateAccessToken(context.Background(), user)

	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	// The token must round-trip through the shared parser
	claims, err := utils.ParseAndValidateJWT(token, cfg.JWTSecret)
	assert.NoError(t, err)
	assert.Equal(t, "usr-a1b2c3", claims.Subject)
	assert.Equal(t, "kestrel-ledger", claims.Issuer)
}

func TestGenerateAccessToken_WrongSecretRejected(t *testing.T) {
	cfg := &config.Config{
		JWTSecret:         "test-secret-key",
		JWTExpiryDuration: time.Hour,
		JWTIssuer:         "kestrel-ledger",
	}
	service := services.NewTokenService(cfg)
	user := &domain.User{UserID: "usr-a1b2c3"}

	token, _, err := service.GenerateAccessToken(context.Background(), user)
	assert.NoError(t, err)

	_, err = utils.ParseAndValidateJWT(token, "a-different-secret")
	assert.Error(t, err)
}
