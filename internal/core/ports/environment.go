package ports

import (
	"context"

	"go.trai.ch/stevedore/internal/core/domain"
)

// EnvironmentResolver applies the env section of a build file to the process environment.
//
//go:generate go run go.uber.org/mock/mockgen -source=environment.go -destination=mocks/mock_environment.go -package=mocks
type EnvironmentResolver interface {
	// Apply resolves each variable in order and sets it, so later script entries observe earlier ones.
	Apply(ctx context.Context, vars []domain.EnvVar) error
}
