package services

import (
	"context"
	"fmt"
	"time"

	"github.com/kestrelbank/ledger_app/internal/core/domain"
	portssvc "github.com/kestrelbank/ledger_app/internal/core/ports/services"
	"github.com/kestrelbank/ledger_app/internal/platform/config"
	"github.com/kestrelbank/ledger_app/internal/utils"
)

// tokenService issues signed access tokens for authenticated users.
type tokenService struct {
	BaseService
	cfg *config.Config
}

// NewTokenService creates a token service using the application configuration.
func NewTokenService(cfg *config.Config) portssvc.TokenSvcFacade {
	return &tokenService{cfg: cfg}
}

var _ portssvc.TokenSvcFacade = (*tokenService)(nil)

// GenerateAccessToken signs a JWT for the user and returns it with its expiry.
func (s *tokenService) GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	expiresAt := time.Now().Add(s.cfg.JWTExpiryDuration)

	token, err := utils.GenerateJWT(user.UserID, s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		s.LogError(ctx, err, "Failed to sign access token")
		return "", time.Time{}, fmt.Errorf("failed to sign access token: %w", err)
	}

	return token, expiresAt, nil
}
