package reconciler

import (
	"context"
	"errors"
	"fmt"

	"go.trai.ch/stevedore/internal/core/domain"
	"go.trai.ch/stevedore/internal/core/ports"
	"go.trai.ch/stevedore/internal/engine/fanout"
	"go.trai.ch/zerr"
)

// Images ensures every declared image exists in the engine.
type Images struct {
	engine ports.Engine
	logger ports.Logger
	tracer ports.Tracer
}

// NewImages creates a new image reconciler.
func NewImages(engine ports.Engine, logger ports.Logger, tracer ports.Tracer) *Images {
	return &Images{engine: engine, logger: logger, tracer: tracer}
}

// Ensure reconciles all images concurrently. Every failure is reported, each naming its image.
func (r *Images) Ensure(ctx context.Context, project string, images []domain.ImageSpec, opts Options) error {
	names := make([]string, 0, len(images))
	for _, img := range images {
		names = append(names, domain.ResourceName(project, img.Name))
	}
	r.tracer.EmitPlan(ctx, names)

	err := fanout.ForEach(ctx, images, opts.Jobs,
		func(img domain.ImageSpec) string { return img.Name },
		func(ctx context.Context, img domain.ImageSpec) error {
			return r.ensure(ctx, project, img, opts.Force)
		})
	if err != nil {
		return errors.Join(domain.ErrImageReconciliationFailed, err)
	}
	return nil
}

func (r *Images) ensure(ctx context.Context, project string, spec domain.ImageSpec, force bool) (err error) {
	tag := domain.ResourceName(project, spec.Name)

	ctx, span := r.tracer.Start(ctx, tag, ports.WithAttribute("image", tag))
	defer func() {
		if err != nil {
			span.RecordError(err)
		}
		span.End()
	}()

	state, err := r.observe(ctx, tag)
	if err != nil {
		return err
	}
	span.SetAttribute("state", state.String())

	switch {
	case state == domain.StatePresent && !force:
		r.logger.Info(fmt.Sprintf("image %s is present", tag))
		span.MarkCached()
		return nil
	case state == domain.StatePresent:
		r.logger.Info(fmt.Sprintf("removing image %s", tag))
		if err := r.engine.RemoveImage(ctx, tag); err != nil {
			return err
		}
	}

	return r.build(ctx, tag, spec, span)
}

func (r *Images) observe(ctx context.Context, tag string) (domain.ReconciliationState, error) {
	exists, err := r.engine.ImageExists(ctx, tag)
	if err != nil {
		return domain.StateAbsent, err
	}
	if exists {
		return domain.StatePresent, nil
	}
	return domain.StateAbsent, nil
}

func (r *Images) build(ctx context.Context, tag string, spec domain.ImageSpec, span ports.Span) error {
	r.logger.Info(fmt.Sprintf("building image %s", tag))

	onEvent := func(ev domain.BuildEvent) {
		line := ev.Line()
		if line == "" {
			return
		}
		_, _ = fmt.Fprintln(span, line)
		r.logger.Info("[" + tag + "] " + line)
	}

	if err := r.engine.BuildImage(ctx, tag, spec, onEvent); err != nil {
		return err
	}

	// The engine may report success without producing a tagged image.
	exists, err := r.engine.ImageExists(ctx, tag)
	if err != nil {
		return err
	}
	if !exists {
		return zerr.With(zerr.Wrap(domain.ErrBuildFailure, "build finished without producing the tagged image"), "image", tag)
	}

	r.logger.Info(fmt.Sprintf("built image %s", tag))
	return nil
}
