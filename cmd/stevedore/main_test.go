package main

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/stevedore/internal/adapters/logger"
	"go.trai.ch/stevedore/internal/app"
)

func TestRun_ProviderError(t *testing.T) {
	stderr := new(bytes.Buffer)

	code := run(context.Background(), []string{"run"}, new(bytes.Buffer), stderr,
		func(context.Context) (*app.Components, error) {
			return nil, errors.New("wiring exploded")
		})

	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "Error: wiring exploded")
}

func TestRun_Version(t *testing.T) {
	stdout := new(bytes.Buffer)

	code := run(context.Background(), []string{"version"}, stdout, new(bytes.Buffer),
		func(context.Context) (*app.Components, error) {
			return &app.Components{Logger: logger.New()}, nil
		})

	assert.Equal(t, 0, code)
	assert.Contains(t, stdout.String(), "stevedore version")
}

func TestRun_MissingConfigExitsNonZero(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("NO_COLOR", "1")

	log := logger.New()
	logOutput := new(bytes.Buffer)
	log.(*logger.Logger).SetOutput(logOutput)

	code := run(context.Background(), []string{"run", "-c", filepath.Join(dir, "missing.yaml")},
		new(bytes.Buffer), new(bytes.Buffer),
		func(ctx context.Context) (*app.Components, error) {
			components, err := defaultProvider(ctx)
			if err != nil {
				return nil, err
			}
			components.Logger = log
			return components, nil
		})

	assert.Equal(t, 1, code)
	assert.Contains(t, logOutput.String(), "missing.yaml")
}
