package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	tests := []struct {
		level, format string
		want          zapcore.Level
	}{
		{"debug", "console", zapcore.DebugLevel},
		{"warn", "json", zapcore.WarnLevel},
		{"error", "json", zapcore.ErrorLevel},
		{"", "", zapcore.InfoLevel},
		{"verboso", "json", zapcore.InfoLevel},
	}
	for _, tt := range tests {
		log, err := New(tt.level, tt.format, "sigec-teste")
		require.NoError(t, err)
		assert.True(t, log.Core().Enabled(tt.want))
		assert.False(t, log.Core().Enabled(tt.want-1))
	}
}
