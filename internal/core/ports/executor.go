package ports

import "context"

// ScriptRunner executes local scripts through the user's shell.
//
//go:generate go run go.uber.org/mock/mockgen -source=executor.go -destination=mocks/mock_executor.go -package=mocks
type ScriptRunner interface {
	// Output runs script with its directory as working directory and returns its standard output.
	// A nonzero exit status is returned as an error carrying the captured standard error.
	Output(ctx context.Context, script string) ([]byte, error)

	// Run executes script with dir as working directory, streaming its output to the logger.
	Run(ctx context.Context, script, dir string) error
}
