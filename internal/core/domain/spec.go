package domain

// DefaultProject is the namespace prefix used when the build file does not set one.
const DefaultProject = "builder"

// BuildSpecification is the resolved, immutable description of one build run.
// Images and builders keep their declaration order.
type BuildSpecification struct {
	Project  string
	Root     string
	Env      []EnvVar
	Images   []ImageSpec
	Builders []BuilderSpec
	Exports  ExportNode
}

// Image returns the image declared under name.
func (s *BuildSpecification) Image(name string) (ImageSpec, bool) {
	for _, img := range s.Images {
		if img.Name == name {
			return img, true
		}
	}
	return ImageSpec{}, false
}

// Builder returns the builder declared under name.
func (s *BuildSpecification) Builder(name string) (BuilderSpec, bool) {
	for _, b := range s.Builders {
		if b.Name == name {
			return b, true
		}
	}
	return BuilderSpec{}, false
}

// EnvVar is one entry of the env section. Exactly one of Literal and Script is meaningful:
// when Script is set the value is the script's trimmed standard output.
type EnvVar struct {
	Name    string
	Literal string
	Script  string
}

// IsScript reports whether the value comes from a script.
func (e EnvVar) IsScript() bool {
	return e.Script != ""
}

// ImageSpec holds the build-context parameters of one image.
type ImageSpec struct {
	Name       string
	ContextDir string
	// Dockerfile is relative to ContextDir. Empty means the engine default.
	Dockerfile string
	BuildArgs  map[string]string
	Target     string
}

// BuilderSpec holds the run parameters of one builder container.
// Image names a declared ImageSpec, not an engine reference.
type BuilderSpec struct {
	Name        string
	Image       string
	Command     []string
	Entrypoint  []string
	Environment map[string]string
	Volumes     []string
	WorkingDir  string
	User        string
}
