package services

// LedgerSvcFacade is the single entry point for account and transaction
// operations. It composes the account lifecycle and transaction processing
// services and publishes audit events for the sensitive operations.
type LedgerSvcFacade interface {
	AccountSvcFacade
	TransactionSvcFacade
}
