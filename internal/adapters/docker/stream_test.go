package docker_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/stevedore/internal/adapters/docker"
	"go.trai.ch/stevedore/internal/core/domain"
	"go.trai.ch/zerr"
)

func TestDecodeBuildStream(t *testing.T) {
	input := `{"stream":"Step 1/2 : FROM alpine\n"}
{"status":"Downloading","id":"a1b2","progress":"[=> ] 1MB/9MB"}
{"aux":{"ID":"sha256:abc"}}
`
	var events []domain.BuildEvent
	err := docker.DecodeBuildStream(strings.NewReader(input), func(ev domain.BuildEvent) {
		events = append(events, ev)
	})

	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.Equal(t, "Step 1/2 : FROM alpine", events[0].Line())
	assert.Equal(t, "a1b2: Downloading [=> ] 1MB/9MB", events[1].Line())
	assert.Empty(t, events[2].Line())
}

func TestDecodeBuildStream_ErrorDetail(t *testing.T) {
	input := `{"stream":"Step 2/2 : RUN false\n"}
{"errorDetail":{"code":1,"message":"returned a non-zero code: 1"}}
`
	var lines []string
	err := docker.DecodeBuildStream(strings.NewReader(input), func(ev domain.BuildEvent) {
		lines = append(lines, ev.Line())
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrBuildFailure)
	assert.Equal(t, []string{"Step 2/2 : RUN false", "returned a non-zero code: 1"}, lines)

	var zErr *zerr.Error
	require.ErrorAs(t, err, &zErr)
	assert.Equal(t, "returned a non-zero code: 1", zErr.Metadata()["reason"])
}

func TestDecodeBuildStream_Malformed(t *testing.T) {
	err := docker.DecodeBuildStream(strings.NewReader(`{"stream":`), nil)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrBuildFailure)
}
