package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, LevelDebug, ParseLevel("debug"))
	assert.Equal(t, LevelWarning, ParseLevel("WARN"))
	assert.Equal(t, LevelError, ParseLevel(" ERROR "))
	assert.Equal(t, LevelInfo, ParseLevel(""))
	assert.Equal(t, LevelInfo, ParseLevel("verbose"))
}

func TestLoggerFiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger("WARNING", "test")
	l.SetOutput(&buf)

	l.Debug("hidden %d", 1)
	l.Info("hidden %d", 2)
	l.Warning("shown %d", 3)
	l.Error("shown %d", 4)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "[test] WARNING: shown 3")
	assert.Contains(t, out, "[test] ERROR: shown 4")
}

func TestNamedSharesOutput(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger("INFO", "root")
	l.SetOutput(&buf)

	l.Named("Interceptor").Info("hello")
	assert.Contains(t, buf.String(), "[Interceptor] INFO: hello")
}
