package config

import "gopkg.in/yaml.v3"

// Buildfile represents the structure of the build.yaml configuration file.
// Sections whose order matters are kept as raw nodes and decoded by the loader.
type Buildfile struct {
	Project  string    `yaml:"project"`
	Root     string    `yaml:"root"`
	Env      yaml.Node `yaml:"env"`
	Images   yaml.Node `yaml:"images"`
	Builders yaml.Node `yaml:"builders"`
	Exports  yaml.Node `yaml:"exports"`
}

// ImageDTO represents an image definition in the configuration.
type ImageDTO struct {
	Path       string            `yaml:"path"`
	Dockerfile string            `yaml:"dockerfile"`
	BuildArgs  map[string]string `yaml:"buildargs"`
	Target     string            `yaml:"target"`
}

// BuilderDTO represents a builder definition in the configuration.
// Command and Entrypoint accept either a shell-style string or a list.
type BuilderDTO struct {
	Image       string            `yaml:"image"`
	Command     yaml.Node         `yaml:"command"`
	Entrypoint  yaml.Node         `yaml:"entrypoint"`
	Environment map[string]string `yaml:"environment"`
	Volumes     []string          `yaml:"volumes"`
	WorkingDir  string            `yaml:"working_dir"`
	User        string            `yaml:"user"`
}

const (
	keyRun    = "run"
	keyFrom   = "from"
	keyImport = "import"
)
