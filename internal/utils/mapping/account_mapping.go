package mapping

import (
	"github.com/kestrelbank/ledger_app/internal/core/domain"
	"github.com/kestrelbank/ledger_app/internal/models"
)

// ToModelAccount converts a domain Account to its database representation.
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountNumber: d.AccountNumber,
		SortCode:      d.SortCode,
		Name:          d.Name,
		AccountType:   string(d.AccountType),
		Balance:       d.Balance,
		Currency:      string(d.Currency),
		OwnerUserID:   d.OwnerUserID,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}

// ToDomainAccount converts a database Account row to the domain type.
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountNumber: m.AccountNumber,
		SortCode:      m.SortCode,
		Name:          m.Name,
		AccountType:   domain.AccountType(m.AccountType),
		Balance:       m.Balance,
		Currency:      domain.Currency(m.Currency),
		OwnerUserID:   m.OwnerUserID,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

// ToDomainAccountSlice converts a slice of database Account rows.
func ToDomainAccountSlice(ms []models.Account) []domain.Account {
	ds := make([]domain.Account, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAccount(m)
	}
	return ds
}
