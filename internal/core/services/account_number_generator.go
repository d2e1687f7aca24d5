package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/kestrelbank/ledger_app/internal/apperrors"
	portsrepo "github.com/kestrelbank/ledger_app/internal/core/ports/repositories"
	portssvc "github.com/kestrelbank/ledger_app/internal/core/ports/services"
	"github.com/kestrelbank/ledger_app/internal/utils"
)

const (
	// accountNumberPrefix is stamped onto the front of every generated number.
	accountNumberPrefix = "01"
	// accountNumberSuffixLength is the count of random digits after the prefix.
	accountNumberSuffixLength = 6
	// maxGenerationAttempts bounds the retry loop when a candidate collides
	// with an existing account.
	maxGenerationAttempts = 5
)

// ErrGenerationExhausted indicates that no unused account number was found
// within the attempt budget.
var ErrGenerationExhausted = fmt.Errorf("%w: could not allocate an unused account number", apperrors.ErrExhausted)

// accountNumberGenerator allocates account numbers from a cryptographically
// secure random source and guarantees they are unused at generation time.
type accountNumberGenerator struct {
	BaseService
	accountRepo portsrepo.AccountReader
}

// NewAccountNumberGenerator creates the default account number generator.
func NewAccountNumberGenerator(accountRepo portsrepo.AccountReader) portssvc.AccountNumberGeneratorSvc {
	return &accountNumberGenerator{accountRepo: accountRepo}
}

var _ portssvc.AccountNumberGeneratorSvc = (*accountNumberGenerator)(nil)

// GenerateAccountNumber draws candidates until one is unused or the attempt
// budget runs out.
func (g *accountNumberGenerator) GenerateAccountNumber(ctx context.Context) (string, error) {
	for attempt := 1; attempt <= maxGenerationAttempts; attempt++ {
		digits, err := utils.GenerateSecureRandomDigits(accountNumberSuffixLength)
		if err != nil {
			g.LogError(ctx, err, "Failed to generate account number candidate")
			return "", fmt.Errorf("failed to generate account number candidate: %w", err)
		}
		candidate := accountNumberPrefix + digits

		exists, err := g.accountRepo.AccountExistsByNumber(ctx, candidate)
		if err != nil {
			g.LogError(ctx, err, "Failed to check account number candidate")
			return "", err
		}
		if !exists {
			return candidate, nil
		}

		g.GetLogger(ctx).Warn("Account number collision, retrying",
			slog.String("candidate", candidate),
			slog.Int("attempt", attempt))
	}

	return "", ErrGenerationExhausted
}
