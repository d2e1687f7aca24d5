package dto

import (
	"time"

	"github.com/kestrelbank/ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateTransactionRequest defines the expected JSON body for submitting a
// deposit or withdrawal. Amount is a pointer so a missing field can be told
// apart from an explicit zero; the service validates it again either way.
type CreateTransactionRequest struct {
	Amount    *decimal.Decimal       `json:"amount" binding:"required,money2dp"`
	Currency  domain.Currency        `json:"currency" binding:"required,oneof=GBP"`
	Type      domain.TransactionType `json:"type" binding:"required,txntype"`
	Reference string                 `json:"reference" binding:"omitempty,max=255"`
}

// TransactionResponse defines the JSON representation of a transaction.
type TransactionResponse struct {
	ID               string                 `json:"id"`
	Amount           decimal.Decimal        `json:"amount"`
	Currency         domain.Currency        `json:"currency"`
	Type             domain.TransactionType `json:"type"`
	Reference        string                 `json:"reference,omitempty"`
	UserID           string                 `json:"userId"`
	CreatedTimestamp time.Time              `json:"createdTimestamp"`
}

// ToTransactionResponse converts a domain Transaction to its API representation.
func ToTransactionResponse(txn *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:               txn.TransactionID,
		Amount:           txn.Amount,
		Currency:         txn.Currency,
		Type:             txn.Type,
		Reference:        txn.Reference,
		UserID:           txn.UserID,
		CreatedTimestamp: txn.CreatedAt,
	}
}

// ListTransactionsParams captures the pagination query parameters.
type ListTransactionsParams struct {
	Limit     int     `form:"limit,default=20" binding:"omitempty,min=1,max=100"`
	NextToken *string `form:"next_token" binding:"omitempty"`
}

// ListTransactionsResponse wraps a page of transactions, newest first.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    *string               `json:"nextToken,omitempty"`
}

// ToListTransactionsResponse converts a page of domain Transactions to the list response.
func ToListTransactionsResponse(txns []domain.Transaction, nextToken *string) ListTransactionsResponse {
	resp := ListTransactionsResponse{
		Transactions: make([]TransactionResponse, 0, len(txns)),
		NextToken:    nextToken,
	}
	for i := range txns {
		resp.Transactions = append(resp.Transactions, ToTransactionResponse(&txns[i]))
	}
	return resp
}
