package env_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/stevedore/internal/adapters/env"
	"go.trai.ch/stevedore/internal/core/domain"
	"go.trai.ch/stevedore/internal/core/ports/mocks"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

func TestResolver_Apply_LiteralAndScript(t *testing.T) {
	ctrl := gomock.NewController(t)
	t.Setenv("STEVEDORE_TEST_VERSION", "")
	t.Setenv("STEVEDORE_TEST_COMMIT", "")

	scripts := mocks.NewMockScriptRunner(ctrl)
	scripts.EXPECT().Output(gomock.Any(), "/src/commit.sh").
		DoAndReturn(func(context.Context, string) ([]byte, error) {
			// Earlier entries are visible to later scripts.
			assert.Equal(t, "1.2.3", os.Getenv("STEVEDORE_TEST_VERSION"))
			return []byte("  abc123\n"), nil
		})

	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Info(gomock.Any()).Times(2)

	r := env.NewResolver(scripts, logger)
	err := r.Apply(context.Background(), []domain.EnvVar{
		{Name: "STEVEDORE_TEST_VERSION", Literal: " 1.2.3 \n"},
		{Name: "STEVEDORE_TEST_COMMIT", Script: "/src/commit.sh"},
	})

	require.NoError(t, err)
	assert.Equal(t, "1.2.3", os.Getenv("STEVEDORE_TEST_VERSION"))
	assert.Equal(t, "abc123", os.Getenv("STEVEDORE_TEST_COMMIT"))
}

func TestResolver_Apply_ScriptFailureStops(t *testing.T) {
	ctrl := gomock.NewController(t)

	scripts := mocks.NewMockScriptRunner(ctrl)
	scripts.EXPECT().Output(gomock.Any(), "/src/bad.sh").
		Return(nil, zerr.Wrap(domain.ErrRunFailure, "script failed"))

	var set []string
	r := env.NewResolver(scripts, mocks.NewMockLogger(ctrl))
	r.SetSetenv(func(k, _ string) error {
		set = append(set, k)
		return nil
	})

	err := r.Apply(context.Background(), []domain.EnvVar{
		{Name: "A", Script: "/src/bad.sh"},
		{Name: "B", Literal: "never"},
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrEnvironmentFailed)
	assert.ErrorIs(t, err, domain.ErrRunFailure)
	assert.Empty(t, set)

	zErr, ok := err.(*zerr.Error)
	require.True(t, ok)
	assert.Equal(t, "A", zErr.Metadata()["variable"])
}

func TestResolver_Apply_SetenvFailure(t *testing.T) {
	ctrl := gomock.NewController(t)

	r := env.NewResolver(mocks.NewMockScriptRunner(ctrl), mocks.NewMockLogger(ctrl))
	r.SetSetenv(func(string, string) error { return errors.New("invalid argument") })

	err := r.Apply(context.Background(), []domain.EnvVar{{Name: "A", Literal: "x"}})

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrEnvironmentFailed)
}
