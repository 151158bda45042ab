package shell_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/stevedore/internal/adapters/shell"
	"go.trai.ch/stevedore/internal/core/domain"
	"go.trai.ch/stevedore/internal/core/ports/mocks"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

func writeScript(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	return p
}

func TestRunner_Output(t *testing.T) {
	t.Setenv("SHELL", "/bin/sh")
	ctrl := gomock.NewController(t)

	dir := t.TempDir()
	script := writeScript(t, dir, "hello.sh", "echo hello\n")

	r := shell.NewRunner(mocks.NewMockLogger(ctrl))
	out, err := r.Output(context.Background(), script)

	require.NoError(t, err)
	assert.Equal(t, "hello\n", string(out))
}

func TestRunner_Output_WorkingDirectoryIsScriptDir(t *testing.T) {
	t.Setenv("SHELL", "/bin/sh")
	ctrl := gomock.NewController(t)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "data.txt"), []byte("sibling"), 0o600))
	script := writeScript(t, dir, "cat.sh", "cat data.txt\n")

	r := shell.NewRunner(mocks.NewMockLogger(ctrl))
	out, err := r.Output(context.Background(), script)

	require.NoError(t, err)
	assert.Equal(t, "sibling", string(out))
}

func TestRunner_Output_Failure(t *testing.T) {
	t.Setenv("SHELL", "/bin/sh")
	ctrl := gomock.NewController(t)

	dir := t.TempDir()
	script := writeScript(t, dir, "fail.sh", "echo partial; echo 'bad things' >&2; exit 3\n")

	r := shell.NewRunner(mocks.NewMockLogger(ctrl))
	_, err := r.Output(context.Background(), script)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrRunFailure)

	zErr, ok := err.(*zerr.Error)
	require.True(t, ok)
	meta := zErr.Metadata()
	assert.Equal(t, 3, meta["exit_code"])
	assert.Equal(t, "bad things", meta["stderr"])
	assert.Equal(t, script, meta["script"])
}

func TestRunner_Output_UsesShellEnv(t *testing.T) {
	ctrl := gomock.NewController(t)

	dir := t.TempDir()
	script := writeScript(t, dir, "s.sh", "echo ran\n")
	t.Setenv("SHELL", filepath.Join(dir, "missing-shell"))

	r := shell.NewRunner(mocks.NewMockLogger(ctrl))
	_, err := r.Output(context.Background(), script)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrRunFailure)
	assert.Equal(t, -1, err.(*zerr.Error).Metadata()["exit_code"])
}

func TestRunner_Run_LogsLinesFromDir(t *testing.T) {
	t.Setenv("SHELL", "/bin/sh")
	ctrl := gomock.NewController(t)

	scriptDir := t.TempDir()
	workDir := t.TempDir()
	script := writeScript(t, scriptDir, "postbuild.sh", "ls; printf part1; echo part2\n")
	require.NoError(t, os.WriteFile(filepath.Join(workDir, "artifact.bin"), nil, 0o600))

	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Info("artifact.bin").Times(1)
	mockLogger.EXPECT().Info("part1part2").Times(1)

	r := shell.NewRunner(mockLogger)
	err := r.Run(context.Background(), script, workDir)

	require.NoError(t, err)
}

func TestRunner_Run_Failure(t *testing.T) {
	t.Setenv("SHELL", "/bin/sh")
	ctrl := gomock.NewController(t)

	dir := t.TempDir()
	script := writeScript(t, dir, "postbuild.sh", "echo oops >&2\nexit 1\n")

	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Warn("oops").Times(1)

	r := shell.NewRunner(mockLogger)
	err := r.Run(context.Background(), script, dir)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrRunFailure)
	assert.Equal(t, "oops", err.(*zerr.Error).Metadata()["stderr"])
}
