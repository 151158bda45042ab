package ports

import "go.trai.ch/stevedore/internal/core/domain"

// ConfigLoader defines the interface for loading the build file.
//
//go:generate go run go.uber.org/mock/mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads the build file at path and returns the resolved specification.
	// Relative paths inside the file are resolved against the project root.
	Load(path string) (*domain.BuildSpecification, error)
}
