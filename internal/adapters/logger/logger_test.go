package logger_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/stevedore/internal/adapters/logger"
	"go.trai.ch/stevedore/internal/core/domain"
	"go.trai.ch/zerr"
)

func newLogger(t *testing.T) (*logger.Logger, *bytes.Buffer) {
	t.Helper()
	t.Setenv("NO_COLOR", "1")

	l, ok := logger.New().(*logger.Logger)
	require.True(t, ok)

	var buf bytes.Buffer
	l.SetOutput(&buf)
	return l, &buf
}

func TestLogger_Info(t *testing.T) {
	l, buf := newLogger(t)

	l.Info("building image acme_base")

	assert.Equal(t, "building image acme_base\n", buf.String())
}

func TestLogger_Warn(t *testing.T) {
	l, buf := newLogger(t)

	l.Warn("retrying")

	assert.Equal(t, "! retrying\n", buf.String())
}

func TestLogger_ErrorNil(t *testing.T) {
	l, buf := newLogger(t)

	l.Error(nil)

	assert.Empty(t, buf.String())
}

func TestLogger_ErrorChain(t *testing.T) {
	l, buf := newLogger(t)

	err := zerr.With(zerr.Wrap(domain.ErrRunFailure, "container exited with nonzero status"), "exit_code", 2)
	l.Error(err)

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "✗ Error: container exited with nonzero status\n"))
	assert.Contains(t, out, "exit_code: 2")
	assert.Contains(t, out, "Caused by:")
	assert.Contains(t, out, "→ run failed")
}

func TestLogger_SetLevel(t *testing.T) {
	l, buf := newLogger(t)

	l.SetLevel(domain.LogLevelWarn)
	l.Info("hidden")
	l.Warn("shown")

	assert.Equal(t, "! shown\n", buf.String())
}

func TestLogger_JSON(t *testing.T) {
	l, buf := newLogger(t)
	l.SetJSON(true)

	l.Info("hello")

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "hello", record["msg"])
	assert.Equal(t, "INFO", record["level"])
}

func TestLogger_JSONError(t *testing.T) {
	l, buf := newLogger(t)
	l.SetJSON(true)

	l.Error(errors.New("boom"))

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "operation failed", record["msg"])
	assert.Equal(t, "boom", record["error"])
}

func TestLogger_SetOutputNilUsesStderr(t *testing.T) {
	l, _ := newLogger(t)
	assert.NotPanics(t, func() { l.SetOutput(nil) })
}
