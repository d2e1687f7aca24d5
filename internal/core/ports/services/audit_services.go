package services

import (
	"context"

	"github.com/kestrelbank/ledger_app/internal/core/domain"
)

// AuditPublisherSvc records audit trail entries for sensitive operations.
// Publishing is asynchronous: implementations must never block the caller
// and must never surface a recording failure to it.
type AuditPublisherSvc interface {
	// PublishEvent enqueues an audit event for recording.
	PublishEvent(ctx context.Context, event domain.AuditEvent)

	// Close drains any queued events and stops the publisher.
	Close()
}
