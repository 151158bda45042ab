package reconciler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"go.trai.ch/stevedore/internal/core/domain"
	"go.trai.ch/stevedore/internal/core/ports"
	"go.trai.ch/stevedore/internal/engine/fanout"
	"go.trai.ch/zerr"
)

// Builders runs every declared builder container to a successful completion.
type Builders struct {
	engine    ports.Engine
	logger    ports.Logger
	tracer    ports.Tracer
	tailLines int
}

// NewBuilders creates a new builder reconciler.
func NewBuilders(engine ports.Engine, logger ports.Logger, tracer ports.Tracer) *Builders {
	return &Builders{engine: engine, logger: logger, tracer: tracer, tailLines: defaultTailLines}
}

// Run reconciles all builders concurrently and returns the final state of each one.
// The report is complete even when an error is returned.
func (r *Builders) Run(
	ctx context.Context,
	project string,
	builders []domain.BuilderSpec,
	opts Options,
) (domain.BuilderReport, error) {
	report := make(domain.BuilderReport, len(builders))
	names := make([]string, 0, len(builders))
	for _, b := range builders {
		report[b.Name] = domain.BuilderNotStarted
		names = append(names, domain.ResourceName(project, b.Name))
	}
	r.tracer.EmitPlan(ctx, names)

	var mu sync.Mutex
	setState := func(name string, state domain.BuilderState) {
		mu.Lock()
		defer mu.Unlock()
		report[name] = state
	}

	err := fanout.ForEach(ctx, builders, opts.Jobs,
		func(b domain.BuilderSpec) string { return b.Name },
		func(ctx context.Context, b domain.BuilderSpec) error {
			return r.reconcile(ctx, project, b, opts.Force, func(s domain.BuilderState) { setState(b.Name, s) })
		})
	if err != nil {
		return report, errors.Join(domain.ErrBuilderReconciliationFailed, err)
	}
	return report, nil
}

func (r *Builders) reconcile(
	ctx context.Context,
	project string,
	spec domain.BuilderSpec,
	force bool,
	setState func(domain.BuilderState),
) (err error) {
	name := domain.ResourceName(project, spec.Name)
	image := domain.ResourceName(project, spec.Image)

	ctx, span := r.tracer.Start(ctx, name, ports.WithAttribute("container", name))
	defer func() {
		if err != nil {
			setState(domain.BuilderFailed)
			span.RecordError(err)
		}
		span.End()
	}()

	state, detail, err := r.observe(ctx, name)
	if err != nil {
		return err
	}
	span.SetAttribute("state", state.String())

	switch state {
	case domain.StatePresent:
		if !force {
			r.logger.Info(fmt.Sprintf("container %s already completed", name))
			span.MarkCached()
			setState(domain.BuilderSucceeded)
			return nil
		}
		r.logger.Info(fmt.Sprintf("removing container %s", name))
	case domain.StatePresentFailed:
		r.logger.Warn(fmt.Sprintf("container %s %s, retrying", name, detail))
	}

	if state != domain.StateAbsent {
		if err := r.engine.RemoveContainer(ctx, name); err != nil {
			return err
		}
	}

	if err := r.run(ctx, name, image, spec, span, setState); err != nil {
		return err
	}
	setState(domain.BuilderSucceeded)
	return nil
}

// observe waits for an existing container to terminate and classifies it by exit status.
// A container that was created but never started counts as failed.
func (r *Builders) observe(ctx context.Context, name string) (domain.ReconciliationState, string, error) {
	status, err := r.engine.InspectContainer(ctx, name)
	switch {
	case err != nil || status == domain.ContainerMissing:
		return domain.StateAbsent, "", err
	case status == domain.ContainerCreated:
		return domain.StatePresentFailed, "was created but never started", nil
	}

	code, err := r.engine.WaitContainer(ctx, name)
	if err != nil {
		return domain.StateAbsent, "", err
	}
	if code != 0 {
		return domain.StatePresentFailed, fmt.Sprintf("previously exited with status %d", code), nil
	}
	return domain.StatePresent, "", nil
}

func (r *Builders) run(
	ctx context.Context,
	name, image string,
	spec domain.BuilderSpec,
	span ports.Span,
	setState func(domain.BuilderState),
) error {
	r.logger.Info(fmt.Sprintf("running container %s", name))

	if err := r.engine.RunContainer(ctx, name, image, spec); err != nil {
		return err
	}
	setState(domain.BuilderRunning)

	stdout := newLineWriter(r.logger, name, false, r.tailLines)
	stderr := newLineWriter(r.logger, name, true, r.tailLines)

	streamErr := r.engine.StreamLogs(ctx, name, io.MultiWriter(stdout, span), io.MultiWriter(stderr, span))
	_ = stdout.Close()
	_ = stderr.Close()
	if streamErr != nil {
		// The container keeps running; its exit status below is what matters.
		r.logger.Warn(fmt.Sprintf("log stream of %s ended early: %v", name, streamErr))
	}

	code, err := r.engine.WaitContainer(ctx, name)
	if err != nil {
		return err
	}
	if code != 0 {
		runErr := zerr.Wrap(domain.ErrRunFailure, "container exited with nonzero status")
		runErr = zerr.With(runErr, "container", name)
		runErr = zerr.With(runErr, "exit_code", code)
		if tail := mergeTails(stdout.Tail(), stderr.Tail()); tail != "" {
			runErr = zerr.With(runErr, "log_tail", tail)
		}
		return runErr
	}

	r.logger.Info(fmt.Sprintf("container %s completed", name))
	return nil
}
