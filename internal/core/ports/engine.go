package ports

import (
	"context"
	"io"

	"go.trai.ch/stevedore/internal/core/domain"
)

// Engine is a session with a container engine. Implementations must be safe for concurrent use.
//
// Existence checks return (false, nil) when the object is absent; any other failure is an error.
//
//go:generate go run go.uber.org/mock/mockgen -source=engine.go -destination=mocks/mock_engine.go -package=mocks
type Engine interface {
	// ImageExists reports whether an image with the given tag is present locally.
	ImageExists(ctx context.Context, tag string) (bool, error)

	// BuildImage builds spec under tag, refreshing base images. Progress is reported through onEvent.
	BuildImage(ctx context.Context, tag string, spec domain.ImageSpec, onEvent func(domain.BuildEvent)) error

	// RemoveImage forcibly removes the image with the given tag.
	RemoveImage(ctx context.Context, tag string) error

	// InspectContainer reports whether the named container is missing, created or started.
	InspectContainer(ctx context.Context, name string) (domain.ContainerStatus, error)

	// RunContainer creates and starts a detached container named name from image.
	RunContainer(ctx context.Context, name, image string, spec domain.BuilderSpec) error

	// StreamLogs copies the container's output to stdout and stderr until it terminates.
	StreamLogs(ctx context.Context, name string, stdout, stderr io.Writer) error

	// WaitContainer blocks until the container terminates and returns its exit status.
	WaitContainer(ctx context.Context, name string) (int, error)

	// RemoveContainer forcibly removes the container.
	RemoveContainer(ctx context.Context, name string) error

	// CopyFromContainer writes a tar archive of path inside the container to w.
	CopyFromContainer(ctx context.Context, name, path string, w io.Writer) error
}
