// Package shell runs local scripts through the user's shell.
package shell

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"go.trai.ch/stevedore/internal/core/domain"
	"go.trai.ch/stevedore/internal/core/ports"
	"go.trai.ch/zerr"
)

// defaultShell is used when SHELL is unset.
const defaultShell = "/bin/sh"

// Runner implements ports.ScriptRunner using os/exec.
type Runner struct {
	logger ports.Logger
	shell  func() string
}

// NewRunner creates a new Runner that invokes scripts with $SHELL.
func NewRunner(logger ports.Logger) *Runner {
	return &Runner{logger: logger, shell: userShell}
}

func userShell() string {
	if sh := os.Getenv("SHELL"); sh != "" {
		return sh
	}
	return defaultShell
}

// command builds `$SHELL <basename>` run from the script's directory.
func (r *Runner) command(ctx context.Context, script, dir string) *exec.Cmd {
	abs, err := filepath.Abs(script)
	if err == nil {
		script = abs
	}

	arg := script
	if dir == "" {
		dir = filepath.Dir(script)
		arg = filepath.Base(script)
	}

	cmd := exec.CommandContext(ctx, r.shell(), arg) //nolint:gosec // scripts come from the build file
	cmd.Dir = dir
	return cmd
}

// Output runs script with its directory as working directory and returns its standard output.
func (r *Runner) Output(ctx context.Context, script string) ([]byte, error) {
	cmd := r.command(ctx, script, "")

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, runFailure(err, script, strings.TrimSpace(stderr.String()))
	}
	return stdout.Bytes(), nil
}

// Run executes script from dir, forwarding its output line by line to the logger.
func (r *Runner) Run(ctx context.Context, script, dir string) error {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return zerr.With(zerr.Wrap(domain.ErrIO, "failed to resolve working directory"), "path", dir)
	}
	cmd := r.command(ctx, script, absDir)

	stdoutLog := &logWriter{logger: r.logger, level: "info"}
	stderrLog := &logWriter{logger: r.logger, level: "warn", keep: true}
	cmd.Stdout = stdoutLog
	cmd.Stderr = stderrLog

	err = cmd.Run()
	_ = stdoutLog.Close()
	_ = stderrLog.Close()

	if err != nil {
		return runFailure(err, script, stderrLog.Captured())
	}
	return nil
}

func runFailure(err error, script, stderr string) error {
	exitCode := -1
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		exitCode = exitErr.ExitCode()
	}

	runErr := zerr.Wrap(domain.ErrRunFailure, "script failed")
	runErr = zerr.With(runErr, "script", script)
	runErr = zerr.With(runErr, "exit_code", exitCode)
	if exitCode == -1 {
		runErr = zerr.With(runErr, "cause", err.Error())
	}
	if stderr != "" {
		runErr = zerr.With(runErr, "stderr", stderr)
	}
	return runErr
}

// logWriter forwards complete lines to the logger.
type logWriter struct {
	logger ports.Logger
	level  string
	keep   bool
	buf    []byte
	seen   bytes.Buffer
}

var _ io.WriteCloser = (*logWriter)(nil)

func (w *logWriter) Write(p []byte) (n int, err error) {
	if w.keep {
		w.seen.Write(p)
	}
	w.buf = append(w.buf, p...)

	for {
		i := bytes.IndexByte(w.buf, '\n')
		if i < 0 {
			break
		}
		w.logLine(w.buf[:i])
		w.buf = w.buf[i+1:]
	}

	return len(p), nil
}

func (w *logWriter) Close() error {
	if len(w.buf) > 0 {
		w.logLine(w.buf)
		w.buf = nil
	}
	return nil
}

// Captured returns everything written so far when keep is set.
func (w *logWriter) Captured() string {
	return strings.TrimSpace(w.seen.String())
}

func (w *logWriter) logLine(line []byte) {
	msg := strings.TrimSuffix(string(line), "\r")

	if w.level == "info" {
		w.logger.Info(msg)
	} else {
		w.logger.Warn(msg)
	}
}
