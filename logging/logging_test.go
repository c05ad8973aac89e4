package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLogLevelRoundTrip(t *testing.T) {
	for _, level := range []int{TraceLevel, DebugLevel, InfoLevel, WarnLevel, ErrorLevel, FatalLevel} {
		parsed, err := StringToLogLevel(LogLevelToString(level))
		require.Nil(t, err)
		require.Equal(t, level, parsed)
	}
	_, err := StringToLogLevel("loud")
	require.NotNil(t, err)
}

func TestInitFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: WarnLevel, Output: &buf})
	defer Init(Config{Level: WarnLevel})

	With("test").Info("hidden")
	With("test").Warn("shown", "key", "value")

	out := buf.String()
	require.NotContains(t, out, "hidden")
	require.Contains(t, out, "shown")
	require.Contains(t, out, "component=test")
	require.Contains(t, out, "key=value")
}

func TestInitJSON(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: DebugLevel, Format: "json", Output: &buf})
	defer Init(Config{Level: WarnLevel})

	GetLogger().Debug("msg")
	require.Contains(t, buf.String(), `"msg":"msg"`)
}

func TestEnabled(t *testing.T) {
	Init(Config{Level: WarnLevel})
	require.False(t, Enabled(DebugLevel))
	require.True(t, Enabled(ErrorLevel))

	Init(Config{Level: DebugLevel})
	defer Init(Config{Level: WarnLevel})
	require.True(t, Enabled(DebugLevel))
	require.False(t, Enabled(TraceLevel))
}
