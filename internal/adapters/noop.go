package adapters

import (
	"context"

	"github.com/resmap-dev/resmap/internal/domain"
)

// NoopLogger implements domain.Logger by discarding everything. Used by
// tests and by any caller that hasn't wired a real logger.
type NoopLogger struct{}

// NewNoopLogger creates a no-op logger.
func NewNoopLogger() *NoopLogger {
	return &NoopLogger{}
}

func (l *NoopLogger) Debug(ctx context.Context, msg string, args ...any) {}
func (l *NoopLogger) Info(ctx context.Context, msg string, args ...any)  {}
func (l *NoopLogger) Warn(ctx context.Context, msg string, args ...any)  {}
func (l *NoopLogger) Error(ctx context.Context, msg string, args ...any) {}

func (l *NoopLogger) With(args ...any) domain.Logger {
	return l
}
