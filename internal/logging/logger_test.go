package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestInitialize_SilentByDefault(t *testing.T) {
	t.Setenv(LogLevelEnvVar, "")

	require.NoError(t, InitializeWithConfig(Config{}))

	assert.False(t, GetLogger().Core().Enabled(zapcore.ErrorLevel))
}

func TestInitialize_Levels(t *testing.T) {
	tests := []struct {
		level   string
		enabled zapcore.Level
		wantErr bool
	}{
		{level: "debug", enabled: zapcore.DebugLevel},
		{level: "INFO", enabled: zapcore.InfoLevel},
		{level: "warning", enabled: zapcore.WarnLevel},
		{level: "error", enabled: zapcore.ErrorLevel},
		{level: "loud", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			err := InitializeWithConfig(Config{Level: tt.level})
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, GetLogger().Core().Enabled(tt.enabled))
			assert.False(t, GetLogger().Core().Enabled(tt.enabled-1))
		})
	}
}

func TestInitialize_FromEnv(t *testing.T) {
	t.Setenv(LogLevelEnvVar, "warn")

	require.NoError(t, InitializeWithConfig(Config{}))

	assert.True(t, GetLogger().Core().Enabled(zapcore.WarnLevel))
	assert.False(t, GetLogger().Core().Enabled(zapcore.InfoLevel))
}

func TestInitializeWithConfig_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dfplayer.log")

	require.NoError(t, InitializeWithConfig(Config{
		Level:  "info",
		Format: "json",
		File:   FileConfig{Filename: path, MaxSizeMB: 1},
	}))
	Info("port opened", zap.String("port", "/dev/ttyUSB0"))
	Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"port opened"`)
	assert.Contains(t, string(data), `"port":"/dev/ttyUSB0"`)
	assert.Contains(t, string(data), `"level":"info"`)
	assert.NotContains(t, string(data), `"M":`)
}

func TestInitializeWithConfig_BadFormat(t *testing.T) {
	err := InitializeWithConfig(Config{Level: "info", Format: "xml"})
	assert.Error(t, err)
}

func TestLogFrame(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	SetLogger(zap.New(core))
	t.Cleanup(func() { SetLogger(nil) })

	LogFrame("sent", "Play", []byte{0x7e, 0xff, 0x06, 0x0d, 0x01, 0x00, 0x00, 0xfe, 0xed, 0xef})

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "Frame", entry.Message)
	fields := entry.ContextMap()
	assert.Equal(t, "sent", fields["direction"])
	assert.Equal(t, "Play", fields["command"])
	assert.Equal(t, "7eff060d010000feedef", fields["hex"])
}

func TestLogFrame_DisabledAboveDebug(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	SetLogger(zap.New(core))
	t.Cleanup(func() { SetLogger(nil) })

	LogFrame("received", "Reply", []byte{0x7e})

	assert.Equal(t, 0, logs.Len())
}

func TestDumps(t *testing.T) {
	assert.Equal(t, "", hexDump(nil))
	assert.Equal(t, "7eef", hexDump([]byte{0x7e, 0xef}))
	assert.Equal(t, "ab.", asciiDump([]byte{'a', 'b', 0x00}))
	assert.Equal(t, 512+3, len(hexDump(make([]byte, 300))))
	assert.Equal(t, "pong", wsMessageTypeName(10))
}
