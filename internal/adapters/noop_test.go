package adapters_test

import (
	"context"
	"testing"

	"github.com/resmap-dev/resmap/internal/adapters"
	"github.com/stretchr/testify/assert"
)

func TestNoopLogger(t *testing.T) {
	logger := adapters.NewNoopLogger()
	ctx := context.Background()

	// Should not panic
	logger.Debug(ctx, "debug")
	logger.Info(ctx, "info")
	logger.Warn(ctx, "warn")
	logger.Error(ctx, "error")

	withLogger := logger.With("key", "value")
	assert.NotNil(t, withLogger)
	withLogger.Info(ctx, "test")
}
