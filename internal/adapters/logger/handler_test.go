package logger_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/stevedore/internal/adapters/logger"
)

func newPrettyLogger(t *testing.T, level slog.Level) (*slog.Logger, *bytes.Buffer) {
	t.Helper()
	t.Setenv("NO_COLOR", "1")

	var buf bytes.Buffer
	h := logger.NewPrettyHandler(&buf, &slog.HandlerOptions{Level: level})
	return slog.New(h), &buf
}

func TestPrettyHandler_ResourcePrefix(t *testing.T) {
	tests := []struct {
		name  string
		level slog.Level
		msg   string
		want  string
	}{
		{"build output", slog.LevelInfo, "[acme_base] Step 1/2 : FROM alpine", "[acme_base] Step 1/2 : FROM alpine\n"},
		{"container stderr", slog.LevelWarn, "[acme_compile] warning: unused", "! [acme_compile] warning: unused\n"},
		{"plain message", slog.LevelInfo, "exported 3 files to dist", "exported 3 files to dist\n"},
		{"bracket without name", slog.LevelInfo, "[] empty", "[] empty\n"},
		{"bracket with spaces", slog.LevelInfo, "[not a name] x", "[not a name] x\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, buf := newPrettyLogger(t, slog.LevelInfo)

			l.Log(context.Background(), tt.level, tt.msg)

			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestPrettyHandler_Level(t *testing.T) {
	l, buf := newPrettyLogger(t, slog.LevelWarn)

	l.Info("hidden")
	l.Warn("shown")

	assert.Equal(t, "! shown\n", buf.String())
}

func TestPrettyHandler_DebugEnabled(t *testing.T) {
	l, buf := newPrettyLogger(t, slog.LevelDebug)

	l.Debug("[acme_base] cache hit")

	assert.Equal(t, "[acme_base] cache hit\n", buf.String())
}

func TestPrettyHandler_NestedGroups(t *testing.T) {
	l, buf := newPrettyLogger(t, slog.LevelInfo)

	l.WithGroup("builder").WithGroup("engine").Info("[acme_compile] started", "id", "abc")
	l.With("project", "acme").WithGroup("").Info("ready")

	assert.Equal(t, "[acme_compile] started builder.engine.id=abc\nready project=acme\n", buf.String())
}
