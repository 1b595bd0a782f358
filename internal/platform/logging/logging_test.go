package logging

import (
	"bytes"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, log.DebugLevel, ParseLevel("DEBUG"))
	assert.Equal(t, log.ErrorLevel, ParseLevel(" error "))
	assert.Equal(t, log.WarnLevel, ParseLevel("chatty"))
}

func TestNewWithWriterFiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, "warn")
	logger.Info("hidden")
	logger.Warn("snapshot corrupt", "path", "x.json")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "snapshot corrupt")
	assert.Contains(t, out, "path=x.json")
}
