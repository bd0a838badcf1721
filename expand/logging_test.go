package expand

import (
	"testing"

	"github.com/newstack-cloud/tmplexpand/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProductionLoggerBuildsUsableLogger(t *testing.T) {
	logger, err := NewProductionLogger("info", "production")
	require.NoError(t, err)
	require.NotNil(t, logger)

	// Exercises every Logger method through the zap adapter; nothing
	// here asserts on log output, only that the call path doesn't panic.
	named := logger.Named("expand-test").WithFields(core.StringLogField("k", "v"))
	named.Info("hello")
	named.Debug("hello")
	named.Warn("hello")
	named.Error("hello")
}

func TestNewProductionLoggerRejectsUnknownLevel(t *testing.T) {
	_, err := NewProductionLogger("not-a-level", "production")
	assert.Error(t, err)
}
