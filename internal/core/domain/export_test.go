package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/stevedore/internal/core/domain"
)

func TestArtifact_DisplayPath(t *testing.T) {
	a := domain.Artifact{Path: []string{"bin", "tool"}}
	assert.Equal(t, "bin/tool", a.DisplayPath())
}

func TestBuildEvent_Line(t *testing.T) {
	tests := []struct {
		name     string
		event    domain.BuildEvent
		expected string
	}{
		{"Stream", domain.BuildEvent{Stream: "Step 1/3 : FROM alpine\n"}, "Step 1/3 : FROM alpine"},
		{"Status", domain.BuildEvent{Status: "Pulling fs layer", ID: "a1b2"}, "a1b2: Pulling fs layer"},
		{"Progress", domain.BuildEvent{Status: "Downloading", ID: "a1b2", Progress: "[=>  ]"}, "a1b2: Downloading [=>  ]"},
		{"Error", domain.BuildEvent{Error: "no such file\n", Stream: "ignored"}, "no such file"},
		{"Empty", domain.BuildEvent{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.event.Line())
		})
	}
}
