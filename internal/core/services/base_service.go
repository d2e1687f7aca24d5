package services

import (
	"context"
	"log/slog"

	"github.com/kestrelbank/ledger_app/internal/middleware"
)

// BaseService provides common functionality shared by all services.
type BaseService struct{}

// GetLogger retrieves the request-scoped logger from the context.
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

// LogError logs an error with context information.
func (s *BaseService) LogError(ctx context.Context, err error, msg string, args ...any) {
	logger := s.GetLogger(ctx)
	allArgs := append([]any{slog.String("error", err.Error())}, args...)
	logger.Error(msg, allArgs...)
}

// LogInfo logs an informational message with context information.
func (s *BaseService) LogInfo(ctx context.Context, msg string, args ...any) {
	logger := s.GetLogger(ctx)
	logger.Info(msg, args...)
}

// LogDebug logs a debug message with context information.
func (s *BaseService) LogDebug(ctx context.Context, msg string, args ...any) {
	logger := s.GetLogger(ctx)
	logger.Debug(msg, args...)
}
