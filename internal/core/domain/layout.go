package domain

import "path/filepath"

const (
	// DefaultConfigFile is the build file read when no path is given.
	DefaultConfigFile = "build.yaml"
	// DefaultOutputDir is the directory exports are written to.
	DefaultOutputDir = "dist"
	// HookScript is the optional post-build script looked up in the project root.
	HookScript = "postbuild.sh"
	// StateDirName is the directory holding state kept between runs.
	StateDirName = ".stevedore"
)

// DefaultStorePath returns the path of the export record store.
func DefaultStorePath() string {
	return filepath.Join(StateDirName, "exports.json")
}
