package mapping

import (
	"github.com/kestrelbank/ledger_app/internal/core/domain"
	"github.com/kestrelbank/ledger_app/internal/models"
)

// ToModelTransaction converts a domain Transaction to its database representation.
func ToModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		TransactionID: d.TransactionID,
		AccountNumber: d.AccountNumber,
		UserID:        d.UserID,
		Amount:        d.Amount,
		Currency:      string(d.Currency),
		Type:          string(d.Type),
		Reference:     d.Reference,
		CreatedAt:     d.CreatedAt,
	}
}

// ToDomainTransaction converts a database Transaction row to the domain type.
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID: m.TransactionID,
		AccountNumber: m.AccountNumber,
		UserID:        m.UserID,
		Amount:        m.Amount,
		Currency:      domain.Currency(m.Currency),
		Type:          domain.TransactionType(m.Type),
		Reference:     m.Reference,
		CreatedAt:     m.CreatedAt,
	}
}

// ToDomainTransactionSlice converts a slice of database Transaction rows.
func ToDomainTransactionSlice(ms []models.Transaction) []domain.Transaction {
	ds := make([]domain.Transaction, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainTransaction(m)
	}
	return ds
}
