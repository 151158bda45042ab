// Package app implements the application layer for stevedore.
package app

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"go.trai.ch/stevedore/internal/core/domain"
	"go.trai.ch/stevedore/internal/core/ports"
	"go.trai.ch/stevedore/internal/engine/fanout"
	"go.trai.ch/stevedore/internal/engine/reconciler"
	"go.trai.ch/zerr"
)

// ImageReconciler ensures the declared images exist.
type ImageReconciler interface {
	Ensure(ctx context.Context, project string, images []domain.ImageSpec, opts reconciler.Options) error
}

// BuilderReconciler runs the declared builders to completion.
type BuilderReconciler interface {
	Run(
		ctx context.Context,
		project string,
		builders []domain.BuilderSpec,
		opts reconciler.Options,
	) (domain.BuilderReport, error)
}

// ArtifactExporter materializes an export tree below an output directory.
type ArtifactExporter interface {
	Export(
		ctx context.Context,
		project string,
		root domain.ExportNode,
		outputDir string,
		builders domain.BuilderReport,
	) ([]domain.ExportRecord, error)
}

// ProgressView renders pipeline progress while Run executes.
type ProgressView interface {
	// Show starts rendering and returns a function that blocks until rendering stops.
	Show(ctx context.Context) func() error
}

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	environment  ports.EnvironmentResolver
	images       ImageReconciler
	builders     BuilderReconciler
	exporter     ArtifactExporter
	scripts      ports.ScriptRunner
	engine       ports.Engine
	logger       ports.Logger
	tracer       ports.Tracer
	progress     ProgressView
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	environment ports.EnvironmentResolver,
	images ImageReconciler,
	builders BuilderReconciler,
	exporter ArtifactExporter,
	scripts ports.ScriptRunner,
	engine ports.Engine,
	log ports.Logger,
	tracer ports.Tracer,
) *App {
	return &App{
		configLoader: loader,
		environment:  environment,
		images:       images,
		builders:     builders,
		exporter:     exporter,
		scripts:      scripts,
		engine:       engine,
		logger:       log,
		tracer:       tracer,
	}
}

// WithProgress sets the view used when RunOptions.Progress is set.
func (a *App) WithProgress(v ProgressView) *App {
	a.progress = v
	return a
}

// RunOptions configuration for the Run method.
type RunOptions struct {
	ConfigPath string
	OutputDir  string
	Rebuild    bool
	Rerun      bool
	Timeout    time.Duration
	Jobs       int
	Progress   bool
}

// Run executes the pipeline: environment, images, builders, export and the post-build hook.
// Each phase starts only after the previous one succeeded.
func (a *App) Run(ctx context.Context, opts RunOptions) error {
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	var wait func() error
	if opts.Progress && a.progress != nil {
		wait = a.progress.Show(ctx)
	}

	err := a.run(ctx, opts)

	// Shutting the tracer down ends the progress feed.
	_ = a.tracer.Shutdown(context.WithoutCancel(ctx))
	if wait != nil {
		if viewErr := wait(); viewErr != nil && ctx.Err() == nil {
			a.logger.Warn("progress view stopped: " + viewErr.Error())
		}
	}
	return err
}

func (a *App) run(ctx context.Context, opts RunOptions) error {
	// 1. Load the build file
	spec, err := a.configLoader.Load(configPath(opts.ConfigPath))
	if err != nil {
		return zerr.Wrap(err, "failed to load configuration")
	}

	outputDir, err := filepath.Abs(outputPath(opts.OutputDir))
	if err != nil {
		return zerr.With(zerr.Wrap(domain.ErrIO, "failed to resolve output directory"), "path", opts.OutputDir)
	}

	// 2. Environment, before any engine work
	if err := a.environment.Apply(ctx, spec.Env); err != nil {
		return errors.Join(domain.ErrPipelineFailed, err)
	}

	// 3. Images
	imageOpts := reconciler.Options{Force: opts.Rebuild, Jobs: opts.Jobs}
	if err := a.images.Ensure(ctx, spec.Project, spec.Images, imageOpts); err != nil {
		return errors.Join(domain.ErrPipelineFailed, err)
	}

	// 4. Builders
	builderOpts := reconciler.Options{Force: opts.Rerun, Jobs: opts.Jobs}
	report, err := a.builders.Run(ctx, spec.Project, spec.Builders, builderOpts)
	if err != nil {
		return errors.Join(domain.ErrPipelineFailed, err)
	}

	// 5. Export
	records, err := a.exporter.Export(ctx, spec.Project, spec.Exports, outputDir, report)
	if err != nil {
		return errors.Join(domain.ErrPipelineFailed, err)
	}
	a.logger.Info(fmt.Sprintf("exported %d files to %s", len(records), outputDir))

	// 6. Post-build hook
	if err := a.runHook(ctx, spec.Root, outputDir); err != nil {
		return errors.Join(domain.ErrPipelineFailed, err)
	}

	return nil
}

func (a *App) runHook(ctx context.Context, root, outputDir string) error {
	hook := filepath.Join(root, domain.HookScript)
	if _, err := os.Stat(hook); errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	ctx, span := a.tracer.Start(ctx, domain.HookScript, ports.WithAttribute("script", hook))
	defer span.End()

	a.logger.Info("running " + domain.HookScript)
	if err := a.scripts.Run(ctx, hook, outputDir); err != nil {
		span.RecordError(err)
		return errors.Join(domain.ErrHookFailed, err)
	}
	return nil
}

// CleanOptions configuration for the Clean method.
type CleanOptions struct {
	ConfigPath string
	Images     bool
	Jobs       int
}

// Clean force-removes the project's builder containers and, when requested, its images.
// Objects that do not exist are skipped; every other failure is reported.
func (a *App) Clean(ctx context.Context, opts CleanOptions) error {
	spec, err := a.configLoader.Load(configPath(opts.ConfigPath))
	if err != nil {
		return zerr.Wrap(err, "failed to load configuration")
	}

	errs := fanout.ForEach(ctx, spec.Builders, opts.Jobs,
		func(b domain.BuilderSpec) string { return b.Name },
		func(ctx context.Context, b domain.BuilderSpec) error {
			return a.remove(ctx, domain.ResourceName(spec.Project, b.Name), a.engine.RemoveContainer)
		})

	if opts.Images {
		imgErrs := fanout.ForEach(ctx, spec.Images, opts.Jobs,
			func(img domain.ImageSpec) string { return img.Name },
			func(ctx context.Context, img domain.ImageSpec) error {
				return a.remove(ctx, domain.ResourceName(spec.Project, img.Name), a.engine.RemoveImage)
			})
		errs = errors.Join(errs, imgErrs)
	}

	return errs
}

func (a *App) remove(ctx context.Context, name string, remove func(context.Context, string) error) error {
	err := remove(ctx, name)
	switch {
	case err == nil:
		a.logger.Info("removed " + name)
		return nil
	case errors.Is(err, domain.ErrNotFound):
		return nil
	default:
		return err
	}
}

func configPath(p string) string {
	if p == "" {
		return domain.DefaultConfigFile
	}
	return p
}

func outputPath(p string) string {
	if p == "" {
		return domain.DefaultOutputDir
	}
	return p
}
