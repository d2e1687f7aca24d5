package services

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/kestrelbank/ledger_app/internal/core/domain"
	portsrepo "github.com/kestrelbank/ledger_app/internal/core/ports/repositories"
	portssvc "github.com/kestrelbank/ledger_app/internal/core/ports/services"
)

const (
	// auditQueueSize is how many events can sit in the queue before new
	// ones are dropped.
	auditQueueSize = 256
	// auditWriteTimeout bounds each audit row write.
	auditWriteTimeout = 5 * time.Second
)

// auditService records audit events asynchronously. Events are queued on a
// buffered channel and written by a single background worker, so publishing
// never blocks a request and a failed write never fails the operation it
// describes.
type auditService struct {
	BaseService
	auditRepo portsrepo.AuditWriter

	events    chan domain.AuditEvent
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// NewAuditService creates an audit publisher and starts its worker.
func NewAuditService(auditRepo portsrepo.AuditWriter) portssvc.AuditPublisherSvc {
	s := &auditService{
		auditRepo: auditRepo,
		events:    make(chan domain.AuditEvent, auditQueueSize),
	}
	s.wg.Add(1)
	go s.run()
	return s
}

var _ portssvc.AuditPublisherSvc = (*auditService)(nil)

// PublishEvent enqueues an audit event for recording. If the queue is full
// the event is dropped and a warning logged.
func (s *auditService) PublishEvent(ctx context.Context, event domain.AuditEvent) {
	if event.EventID == "" {
		event.EventID = uuid.NewString()
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}

	select {
	case s.events <- event:
	default:
		s.GetLogger(ctx).Warn("Audit queue full, dropping event",
			slog.String("event_id", event.EventID),
			slog.String("operation", string(event.Operation)))
	}
}

// Close drains queued events and stops the worker. Safe to call more than once.
func (s *auditService) Close() {
	s.closeOnce.Do(func() {
		close(s.events)
	})
	s.wg.Wait()
}

// run writes queued events until the channel is closed.
func (s *auditService) run() {
	defer s.wg.Done()
	for event := range s.events {
		ctx, cancel := context.WithTimeout(context.Background(), auditWriteTimeout)
		if err := s.auditRepo.SaveAuditEvent(ctx, event); err != nil {
			s.LogError(ctx, err, "Failed to record audit event",
				slog.String("event_id", event.EventID),
				slog.String("operation", string(event.Operation)))
		}
		cancel()
	}
}
