package log

import (
	"bytes"
	"os"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

func capture(t *testing.T) *bytes.Buffer {
	t.Helper()
	color.NoColor = true
	buf := &bytes.Buffer{}
	SetOutput(buf)
	t.Cleanup(func() {
		SetOutput(os.Stdout)
		SetDebug(false)
	})
	return buf
}

func TestLevels(t *testing.T) {
	buf := capture(t)

	Info("loaded %d terms", 3)
	Warn("slow query")
	Error("failed: %v", "boom")

	assert.Equal(t, "[INFO]  loaded 3 terms\n[WARN]  slow query\n[Error] failed: boom\n", buf.String())
}

func TestDebugIsGated(t *testing.T) {
	buf := capture(t)

	Debug("hidden")
	Dump("hidden", 1)
	assert.Empty(t, buf.String())

	SetDebug(true)
	assert.True(t, DebugEnabled())
	Debug("shown %s", "now")
	Dump("terms", []string{"a"})
	assert.Contains(t, buf.String(), "[DEBUG] shown now\n")
	assert.Contains(t, buf.String(), "[DEBUG] terms\n")
	assert.Contains(t, buf.String(), `(string) (len=1) "a"`)
}
