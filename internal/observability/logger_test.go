package observability

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestInitialize_OnlyRunsOnce(t *testing.T) {
	ResetForTest()
	t.Cleanup(ResetForTest)

	Initialize(Config{Level: "debug", Format: "console"}, zapTestSyncer{})
	first := GetLogger()

	Initialize(Config{Level: "error", Format: "json"}, zapTestSyncer{})
	assert.Same(t, first, GetLogger())
}

func TestInitialize_BadLevelFallsBackToInfo(t *testing.T) {
	ResetForTest()
	t.Cleanup(ResetForTest)

	Initialize(Config{Level: "shouting"}, zapTestSyncer{})
	logger := GetLogger()
	require.NotNil(t, logger)

	assert.True(t, logger.Core().Enabled(zap.InfoLevel))
	assert.False(t, logger.Core().Enabled(zap.DebugLevel))
}

func TestGetLogger_BeforeInitializeReturnsFallback(t *testing.T) {
	ResetForTest()
	t.Cleanup(ResetForTest)

	logger := GetLogger()
	require.NotNil(t, logger)
	logger.Debug("fallback logger is usable")
}

// zapTestSyncer discards writes; tests only exercise construction paths.
type zapTestSyncer struct{}

func (zapTestSyncer) Write(p []byte) (int, error) { return len(p), nil }
func (zapTestSyncer) Sync() error                 { return nil }
