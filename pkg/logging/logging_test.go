package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewVerbose(t *testing.T) {
	var buf bytes.Buffer
	logger := New(true, &buf)

	logger.Named("dotenv").Sugar().Debugw("reconciled", "mode", "append")
	_ = logger.Sync()

	out := buf.String()
	assert.Contains(t, out, "DEBUG")
	assert.Contains(t, out, "dotenv")
	assert.Contains(t, out, "reconciled")
	assert.Contains(t, out, `"mode": "append"`)
}

func TestNewQuiet(t *testing.T) {
	var buf bytes.Buffer
	logger := New(false, &buf)

	logger.Debug("hidden")
	logger.Error("hidden")

	assert.Empty(t, buf.String())
}
