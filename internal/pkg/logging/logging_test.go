package logging_test

import (
	"context"
	"testing"

	grpc_logging "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/KirkDiggler/character-builder/internal/config"
	"github.com/KirkDiggler/character-builder/internal/pkg/logging"
)

func TestNew(t *testing.T) {
	logger, err := logging.New(config.LoggingConfig{Level: "debug", Format: "console"})
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))

	logger, err = logging.New(config.LoggingConfig{Level: "warn", Format: "json"})
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zapcore.InfoLevel))

	_, err = logging.New(config.LoggingConfig{Level: "loud", Format: "json"})
	assert.Error(t, err)

	_, err = logging.New(config.LoggingConfig{Level: "info", Format: "xml"})
	assert.Error(t, err)
}

func TestOrNop(t *testing.T) {
	assert.NotNil(t, logging.OrNop(nil))
	l := zap.NewExample()
	assert.Same(t, l, logging.OrNop(l))
}

func TestInterceptorLogger(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	adapter := logging.InterceptorLogger(zap.New(core))

	adapter.Log(context.Background(), grpc_logging.LevelWarn, "finished call",
		"grpc.method", "GetDraft", "grpc.code", "NotFound")

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
	assert.Equal(t, "finished call", entries[0].Message)
	assert.Equal(t, "GetDraft", entries[0].ContextMap()["grpc.method"])
}
