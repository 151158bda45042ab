package domain

import "go.trai.ch/zerr"

var (
	// ErrSpecification is returned when an entry of the build file has an unrecognized shape.
	ErrSpecification = zerr.New("malformed build specification")

	// ErrBuildFailure is returned when an image build finished but the tagged image is absent.
	ErrBuildFailure = zerr.New("image build failed")

	// ErrRunFailure is returned when a container or script terminates with a nonzero status.
	ErrRunFailure = zerr.New("run failed")

	// ErrNotFound is returned when a referenced image, builder or in-container resource does not exist.
	ErrNotFound = zerr.New("not found")

	// ErrIO is returned when reading or writing a local file fails.
	ErrIO = zerr.New("i/o failure")

	// ErrDuplicateName is returned when two images or two builders share a name.
	ErrDuplicateName = zerr.New("duplicate name")

	// ErrInvalidName is returned when an image or builder name contains invalid characters.
	ErrInvalidName = zerr.New("name can only contain alphanumeric characters, dots, hyphens and underscores")

	// ErrConfigReadFailed is returned when the build file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read build file")

	// ErrConfigParseFailed is returned when the build file is not valid YAML.
	ErrConfigParseFailed = zerr.New("failed to parse build file")

	// ErrEngineUnavailable is returned when no container engine session can be established.
	ErrEngineUnavailable = zerr.New("container engine unavailable")

	// ErrEngineRequestFailed is returned when a container engine call fails.
	ErrEngineRequestFailed = zerr.New("container engine request failed")

	// ErrImageReconciliationFailed is returned when at least one image could not be reconciled.
	ErrImageReconciliationFailed = zerr.New("image reconciliation failed")

	// ErrBuilderReconciliationFailed is returned when at least one builder could not be reconciled.
	ErrBuilderReconciliationFailed = zerr.New("builder reconciliation failed")

	// ErrExportFailed is returned when the export phase aborts.
	ErrExportFailed = zerr.New("export failed")

	// ErrEnvironmentFailed is returned when an environment entry cannot be resolved.
	ErrEnvironmentFailed = zerr.New("failed to resolve environment")

	// ErrHookFailed is returned when the post-build hook exits with a nonzero status.
	ErrHookFailed = zerr.New("post-build hook failed")

	// ErrStoreReadFailed is returned when the export record store cannot be read.
	ErrStoreReadFailed = zerr.New("failed to read export records")

	// ErrStoreWriteFailed is returned when the export record store cannot be written.
	ErrStoreWriteFailed = zerr.New("failed to write export records")

	// ErrPipelineFailed is returned by the run command when any phase fails.
	ErrPipelineFailed = zerr.New("build pipeline failed")
)
