// Package docker implements ports.Engine on top of the Docker Engine API.
package docker

import (
	"bytes"
	"context"
	"errors"
	"io"
	"maps"
	"slices"
	"sync"

	dockerclient "github.com/fsouza/go-dockerclient"
	"go.trai.ch/stevedore/internal/core/domain"
	"go.trai.ch/zerr"
)

// Engine implements ports.Engine. The client is created on first use so that
// commands which never touch the engine do not require a running daemon.
type Engine struct {
	client func() (*dockerclient.Client, error)
}

// NewEngine creates an Engine configured from DOCKER_HOST and related variables.
func NewEngine() *Engine {
	return &Engine{client: sync.OnceValues(dockerclient.NewClientFromEnv)}
}

// NewEngineWithClient creates an Engine that uses client.
func NewEngineWithClient(client *dockerclient.Client) *Engine {
	return &Engine{client: func() (*dockerclient.Client, error) { return client, nil }}
}

func (e *Engine) session() (*dockerclient.Client, error) {
	c, err := e.client()
	if err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrEngineUnavailable, "failed to connect to docker"), "cause", err.Error())
	}
	return c, nil
}

// ImageExists reports whether tag is present locally.
func (e *Engine) ImageExists(ctx context.Context, tag string) (bool, error) {
	c, err := e.session()
	if err != nil {
		return false, err
	}
	if err := ctx.Err(); err != nil {
		return false, err
	}

	_, err = c.InspectImage(tag)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, dockerclient.ErrNoSuchImage):
		return false, nil
	default:
		return false, requestFailed(err, "image inspect", "image", tag)
	}
}

// BuildImage builds spec under tag and reports each decoded stream message to onEvent.
// An error message in the stream fails the build even when the request succeeds.
func (e *Engine) BuildImage(ctx context.Context, tag string, spec domain.ImageSpec, onEvent func(domain.BuildEvent)) error {
	c, err := e.session()
	if err != nil {
		return err
	}

	pr, pw := io.Pipe()
	decoded := make(chan error, 1)
	go func() {
		decoded <- decodeBuildStream(pr, onEvent)
		_, _ = io.Copy(io.Discard, pr)
	}()

	err = c.BuildImage(dockerclient.BuildImageOptions{
		Context:        ctx,
		Name:           tag,
		Dockerfile:     spec.Dockerfile,
		ContextDir:     spec.ContextDir,
		BuildArgs:      buildArgs(spec.BuildArgs),
		Target:         spec.Target,
		Pull:           true,
		RmTmpContainer: true,
		RawJSONStream:  true,
		OutputStream:   pw,
	})
	_ = pw.CloseWithError(err)
	streamErr := <-decoded

	if err != nil {
		return requestFailed(err, "image build", "image", tag)
	}
	if streamErr != nil {
		return zerr.With(streamErr, "image", tag)
	}
	return nil
}

// RemoveImage forcibly removes tag.
func (e *Engine) RemoveImage(ctx context.Context, tag string) error {
	c, err := e.session()
	if err != nil {
		return err
	}
	err = c.RemoveImageExtended(tag, dockerclient.RemoveImageOptions{Force: true, Context: ctx})
	if err != nil {
		return requestFailed(err, "image remove", "image", tag)
	}
	return nil
}

// InspectContainer reports whether the container called name is missing, created or started.
// A container the engine never started carries a zero StartedAt.
func (e *Engine) InspectContainer(ctx context.Context, name string) (domain.ContainerStatus, error) {
	c, err := e.session()
	if err != nil {
		return domain.ContainerMissing, err
	}

	container, err := c.InspectContainerWithOptions(dockerclient.InspectContainerOptions{ID: name, Context: ctx})
	var missing *dockerclient.NoSuchContainer
	switch {
	case errors.As(err, &missing):
		return domain.ContainerMissing, nil
	case err != nil:
		return domain.ContainerMissing, requestFailed(err, "container inspect", "container", name)
	case container.State.StartedAt.IsZero():
		return domain.ContainerCreated, nil
	default:
		return domain.ContainerStarted, nil
	}
}

// RunContainer creates the container name from image and starts it detached.
func (e *Engine) RunContainer(ctx context.Context, name, image string, spec domain.BuilderSpec) error {
	c, err := e.session()
	if err != nil {
		return err
	}

	container, err := c.CreateContainer(dockerclient.CreateContainerOptions{
		Name: name,
		Config: &dockerclient.Config{
			Image:      image,
			Cmd:        spec.Command,
			Entrypoint: spec.Entrypoint,
			Env:        environment(spec.Environment),
			WorkingDir: spec.WorkingDir,
			User:       spec.User,
		},
		HostConfig: &dockerclient.HostConfig{Binds: spec.Volumes},
		Context:    ctx,
	})
	if err != nil {
		return requestFailed(err, "container create", "container", name)
	}

	if err := c.StartContainerWithContext(container.ID, nil, ctx); err != nil {
		return requestFailed(err, "container start", "container", name)
	}
	return nil
}

// StreamLogs follows the container's stdout and stderr until it stops.
func (e *Engine) StreamLogs(ctx context.Context, name string, stdout, stderr io.Writer) error {
	c, err := e.session()
	if err != nil {
		return err
	}

	err = c.Logs(dockerclient.LogsOptions{
		Context:      ctx,
		Container:    name,
		OutputStream: stdout,
		ErrorStream:  stderr,
		Follow:       true,
		Stdout:       true,
		Stderr:       true,
	})
	if err != nil {
		return requestFailed(err, "container logs", "container", name)
	}
	return nil
}

// WaitContainer blocks until the container stops and returns its exit status.
func (e *Engine) WaitContainer(ctx context.Context, name string) (int, error) {
	c, err := e.session()
	if err != nil {
		return 0, err
	}

	code, err := c.WaitContainerWithContext(name, ctx)
	if err != nil {
		return 0, requestFailed(err, "container wait", "container", name)
	}
	return code, nil
}

// RemoveContainer forcibly removes the container.
func (e *Engine) RemoveContainer(ctx context.Context, name string) error {
	c, err := e.session()
	if err != nil {
		return err
	}

	err = c.RemoveContainer(dockerclient.RemoveContainerOptions{ID: name, Force: true, Context: ctx})
	if err != nil {
		return requestFailed(err, "container remove", "container", name)
	}
	return nil
}

// CopyFromContainer writes a tar archive of path inside the container to w.
func (e *Engine) CopyFromContainer(ctx context.Context, name, path string, w io.Writer) error {
	c, err := e.session()
	if err != nil {
		return err
	}

	// Buffer so that a failed request never leaves a partial archive in w.
	var buf bytes.Buffer
	err = c.DownloadFromContainer(name, dockerclient.DownloadFromContainerOptions{
		Context:      ctx,
		Path:         path,
		OutputStream: &buf,
	})
	if err != nil {
		return zerr.With(requestFailed(err, "container archive", "container", name), "path", path)
	}
	_, err = io.Copy(w, &buf)
	return err
}

// requestFailed maps a client error onto the domain sentinels. Missing objects
// become ErrNotFound; everything else is an engine request failure.
func requestFailed(err error, op, kind, name string) error {
	if ctxErr := contextError(err); ctxErr != nil {
		return ctxErr
	}

	sentinel := domain.ErrEngineRequestFailed
	if notFound(err) {
		sentinel = domain.ErrNotFound
	}
	wrapped := zerr.With(zerr.Wrap(sentinel, op+" failed"), kind, name)
	return zerr.With(wrapped, "cause", err.Error())
}

func notFound(err error) bool {
	var missing *dockerclient.NoSuchContainer
	var apiErr *dockerclient.Error
	switch {
	case errors.Is(err, dockerclient.ErrNoSuchImage), errors.As(err, &missing):
		return true
	case errors.As(err, &apiErr):
		return apiErr.Status == 404
	default:
		return false
	}
}

func contextError(err error) error {
	switch {
	case errors.Is(err, context.Canceled):
		return context.Canceled
	case errors.Is(err, context.DeadlineExceeded):
		return context.DeadlineExceeded
	default:
		return nil
	}
}

func buildArgs(args map[string]string) []dockerclient.BuildArg {
	out := make([]dockerclient.BuildArg, 0, len(args))
	for _, k := range slices.Sorted(maps.Keys(args)) {
		out = append(out, dockerclient.BuildArg{Name: k, Value: args[k]})
	}
	return out
}

func environment(env map[string]string) []string {
	out := make([]string, 0, len(env))
	for _, k := range slices.Sorted(maps.Keys(env)) {
		out = append(out, k+"="+env[k])
	}
	return out
}
