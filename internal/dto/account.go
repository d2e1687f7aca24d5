package dto

import (
	"time"

	"github.com/kestrelbank/ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest defines the expected JSON body for creating an account.
type CreateAccountRequest struct {
	Name        string             `json:"name" binding:"required"`
	AccountType domain.AccountType `json:"accountType" binding:"required,accounttype"`
}

// UpdateAccountRequest defines the expected JSON body for updating an account.
// Pointer fields distinguish omitted fields from blank ones so partial
// updates leave untouched fields alone.
type UpdateAccountRequest struct {
	Name        *string             `json:"name" binding:"omitempty"`
	AccountType *domain.AccountType `json:"accountType" binding:"omitempty,accounttype"`
}

// AccountResponse defines the JSON representation of an account returned by the API.
type AccountResponse struct {
	AccountNumber    string             `json:"accountNumber"`
	SortCode         string             `json:"sortCode"`
	Name             string             `json:"name"`
	AccountType      domain.AccountType `json:"accountType"`
	Balance          decimal.Decimal    `json:"balance"`
	Currency         domain.Currency    `json:"currency"`
	CreatedTimestamp time.Time          `json:"createdTimestamp"`
	UpdatedTimestamp time.Time          `json:"updatedTimestamp"`
}

// ToAccountResponse converts a domain Account to its API representation.
func ToAccountResponse(account *domain.Account) AccountResponse {
	return AccountResponse{
		AccountNumber:    account.AccountNumber,
		SortCode:         account.SortCode,
		Name:             account.Name,
		AccountType:      account.AccountType,
		Balance:          account.Balance,
		Currency:         account.Currency,
		CreatedTimestamp: account.CreatedAt,
		UpdatedTimestamp: account.UpdatedAt,
	}
}

// ListAccountsResponse wraps the accounts owned by the requesting user.
type ListAccountsResponse struct {
	Accounts []AccountResponse `json:"accounts"`
}

// ToListAccountsResponse converts a slice of domain Accounts to the list response.
func ToListAccountsResponse(accounts []domain.Account) ListAccountsResponse {
	resp := ListAccountsResponse{
		Accounts: make([]AccountResponse, 0, len(accounts)),
	}
	for i := range accounts {
		resp.Accounts = append(resp.Accounts, ToAccountResponse(&accounts[i]))
	}
	return resp
}
