// Package config provides the build file loader for stevedore.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"github.com/google/shlex"
	"github.com/moby/buildkit/frontend/dockerfile/parser"
	"go.trai.ch/stevedore/internal/core/domain"
	"go.trai.ch/stevedore/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

const defaultDockerfile = "Dockerfile"

var (
	// Image tags must be lowercase, so project and image names are too.
	imageNamePattern   = regexp.MustCompile(`^[a-z0-9][a-z0-9_.-]*$`)
	builderNamePattern = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9_.-]*$`)
	envNamePattern     = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
)

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	logger ports.Logger
}

// NewLoader creates a new Loader.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{logger: logger}
}

// Load reads the build file at path and resolves it into a BuildSpecification.
func (l *Loader) Load(path string) (*domain.BuildSpecification, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		readErr := zerr.Wrap(domain.ErrConfigReadFailed, "failed to read config file")
		return nil, zerr.With(zerr.With(readErr, "path", path), "cause", err.Error())
	}

	var file Buildfile
	if err := yaml.Unmarshal(data, &file); err != nil {
		parseErr := zerr.Wrap(domain.ErrConfigParseFailed, "failed to parse config file")
		return nil, zerr.With(zerr.With(parseErr, "path", path), "cause", err.Error())
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrIO, "failed to resolve config path"), "path", path)
	}

	spec := &domain.BuildSpecification{
		Project: file.Project,
		Root:    resolvePath(filepath.Dir(absPath), file.Root),
	}
	if spec.Project == "" {
		spec.Project = domain.DefaultProject
	}
	if !imageNamePattern.MatchString(spec.Project) {
		return nil, invalidName("project", spec.Project)
	}

	p := &parseState{root: spec.Root}
	if spec.Env, err = p.env(&file.Env); err != nil {
		return nil, err
	}
	if spec.Images, err = p.images(&file.Images); err != nil {
		return nil, err
	}
	if spec.Builders, err = p.builders(&file.Builders); err != nil {
		return nil, err
	}
	if spec.Exports, err = p.exportNode(&file.Exports, nil); err != nil {
		return nil, err
	}

	if err := validateReferences(spec); err != nil {
		return nil, err
	}
	for _, img := range spec.Images {
		if err := validateDockerfile(img); err != nil {
			return nil, err
		}
	}

	l.logger.Info("loaded " + absPath)
	return spec, nil
}

type parseState struct {
	root string
}

func (p *parseState) env(node *yaml.Node) ([]domain.EnvVar, error) {
	pairs, err := mappingPairs(node, "env")
	if err != nil {
		return nil, err
	}

	vars := make([]domain.EnvVar, 0, len(pairs))
	for _, kv := range pairs {
		if !envNamePattern.MatchString(kv.key) {
			return nil, invalidName("env", kv.key)
		}
		where := "env." + kv.key
		switch {
		case isLiteral(kv.value):
			vars = append(vars, domain.EnvVar{Name: kv.key, Literal: kv.value.Value})
		case kv.value.Kind == yaml.MappingNode:
			script, err := p.runScript(kv.value, where)
			if err != nil {
				return nil, err
			}
			vars = append(vars, domain.EnvVar{Name: kv.key, Script: script})
		default:
			return nil, badFormat(where, "expected a string or a mapping with a single 'run' key")
		}
	}
	return vars, nil
}

func (p *parseState) images(node *yaml.Node) ([]domain.ImageSpec, error) {
	pairs, err := mappingPairs(node, "images")
	if err != nil {
		return nil, err
	}

	images := make([]domain.ImageSpec, 0, len(pairs))
	for _, kv := range pairs {
		if !imageNamePattern.MatchString(kv.key) {
			return nil, invalidName("image", kv.key)
		}
		var dto ImageDTO
		if err := kv.value.Decode(&dto); err != nil {
			return nil, badFormat("images."+kv.key, err.Error())
		}
		images = append(images, domain.ImageSpec{
			Name:       kv.key,
			ContextDir: resolvePath(p.root, dto.Path),
			Dockerfile: dto.Dockerfile,
			BuildArgs:  dto.BuildArgs,
			Target:     dto.Target,
		})
	}
	return images, nil
}

func (p *parseState) builders(node *yaml.Node) ([]domain.BuilderSpec, error) {
	pairs, err := mappingPairs(node, "builders")
	if err != nil {
		return nil, err
	}

	builders := make([]domain.BuilderSpec, 0, len(pairs))
	for _, kv := range pairs {
		if !builderNamePattern.MatchString(kv.key) {
			return nil, invalidName("builder", kv.key)
		}
		where := "builders." + kv.key
		var dto BuilderDTO
		if err := kv.value.Decode(&dto); err != nil {
			return nil, badFormat(where, err.Error())
		}
		if dto.Image == "" {
			return nil, badFormat(where+".image", "missing image")
		}
		command, err := argv(&dto.Command, where+".command")
		if err != nil {
			return nil, err
		}
		entrypoint, err := argv(&dto.Entrypoint, where+".entrypoint")
		if err != nil {
			return nil, err
		}
		volumes := make([]string, 0, len(dto.Volumes))
		for _, v := range dto.Volumes {
			volumes = append(volumes, p.volume(v))
		}
		builders = append(builders, domain.BuilderSpec{
			Name:        kv.key,
			Image:       dto.Image,
			Command:     command,
			Entrypoint:  entrypoint,
			Environment: dto.Environment,
			Volumes:     volumes,
			WorkingDir:  dto.WorkingDir,
			User:        dto.User,
		})
	}
	return builders, nil
}

// exportNode decodes one node of the exports tree. path holds the output
// segments leading to node.
func (p *parseState) exportNode(node *yaml.Node, path []string) (domain.ExportNode, error) {
	where := dotted(path)
	if len(path) == 0 && node.Kind != yaml.MappingNode {
		if node.Kind == 0 || isNull(node) {
			return &domain.Subtree{}, nil
		}
		return nil, badFormat(where, "expected a mapping")
	}
	switch {
	case node.Kind == 0 || isNull(node):
		return &domain.FileCopy{Path: filepath.Join(append([]string{p.root}, path...)...)}, nil
	case isLiteral(node) && node.Tag == "!!str":
		return &domain.FileCopy{Path: resolvePath(p.root, node.Value)}, nil
	case node.Kind == yaml.MappingNode:
		return p.exportMapping(node, path)
	default:
		return nil, badFormat(where, "expected null, a path, or a mapping")
	}
}

func (p *parseState) exportMapping(node *yaml.Node, path []string) (domain.ExportNode, error) {
	where := dotted(path)
	pairs, err := mappingPairs(node, where)
	if err != nil {
		return nil, err
	}

	keys := make(map[string]*yaml.Node, len(pairs))
	for _, kv := range pairs {
		keys[kv.key] = kv.value
	}
	_, hasRun := keys[keyRun]
	from, hasFrom := keys[keyFrom]
	resource, hasImport := keys[keyImport]

	if len(path) == 0 && (hasRun || hasFrom || hasImport) {
		return nil, badFormat(where, "the exports root must be a directory")
	}

	switch {
	case hasRun:
		script, err := p.runScript(node, where)
		if err != nil {
			return nil, err
		}
		return &domain.ScriptRun{Script: script}, nil
	case hasFrom || hasImport:
		if !hasFrom || !hasImport || len(pairs) != 2 {
			return nil, badFormat(where, "container artifacts need exactly 'from' and 'import'")
		}
		if !isLiteral(from) || !isLiteral(resource) || from.Value == "" || resource.Value == "" {
			return nil, badFormat(where, "'from' and 'import' must be non-empty strings")
		}
		return &domain.ContainerArtifact{Builder: from.Value, Resource: resource.Value}, nil
	}

	subtree := &domain.Subtree{Entries: make([]domain.ExportEntry, 0, len(pairs))}
	for _, kv := range pairs {
		if kv.key == "" || kv.key == "." || kv.key == ".." || strings.ContainsAny(kv.key, `/\`) {
			return nil, badFormat(dotted(append(path, kv.key)), "invalid output name")
		}
		child, err := p.exportNode(kv.value, append(slices.Clone(path), kv.key))
		if err != nil {
			return nil, err
		}
		subtree.Entries = append(subtree.Entries, domain.ExportEntry{Name: kv.key, Node: child})
	}
	return subtree, nil
}

// runScript decodes a mapping holding a single 'run' key into an absolute script path.
func (p *parseState) runScript(node *yaml.Node, where string) (string, error) {
	if len(node.Content) != 2 || node.Content[0].Value != keyRun {
		return "", badFormat(where, "expected a mapping with a single 'run' key")
	}
	script := node.Content[1]
	if !isLiteral(script) || script.Value == "" {
		return "", badFormat(where+"."+keyRun, "expected a script path")
	}
	return resolvePath(p.root, script.Value), nil
}

// volume resolves a relative host path of a bind mount against the root.
// Named volumes are left untouched.
func (p *parseState) volume(v string) string {
	host, rest, ok := strings.Cut(v, ":")
	if !ok || !(host == "." || strings.HasPrefix(host, "./") || strings.HasPrefix(host, "../")) {
		return v
	}
	return resolvePath(p.root, host) + ":" + rest
}

type pair struct {
	key   string
	value *yaml.Node
}

// mappingPairs returns the entries of a mapping node in declaration order.
// An absent or null node is an empty mapping.
func mappingPairs(node *yaml.Node, where string) ([]pair, error) {
	if node.Kind == 0 || isNull(node) {
		return nil, nil
	}
	if node.Kind != yaml.MappingNode {
		return nil, badFormat(where, "expected a mapping")
	}

	pairs := make([]pair, 0, len(node.Content)/2)
	seen := make(map[string]bool, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i].Value
		if seen[key] {
			return nil, zerr.With(zerr.With(zerr.Wrap(domain.ErrDuplicateName, "duplicate key"), "section", where), "name", key)
		}
		seen[key] = true
		pairs = append(pairs, pair{key: key, value: node.Content[i+1]})
	}
	return pairs, nil
}

func argv(node *yaml.Node, where string) ([]string, error) {
	switch {
	case node.Kind == 0 || isNull(node):
		return nil, nil
	case isLiteral(node):
		args, err := shlex.Split(node.Value)
		if err != nil {
			return nil, badFormat(where, err.Error())
		}
		return args, nil
	case node.Kind == yaml.SequenceNode:
		var args []string
		if err := node.Decode(&args); err != nil {
			return nil, badFormat(where, err.Error())
		}
		return args, nil
	default:
		return nil, badFormat(where, "expected a string or a list of strings")
	}
}

func validateReferences(spec *domain.BuildSpecification) error {
	for _, b := range spec.Builders {
		if _, ok := spec.Image(b.Image); !ok {
			err := zerr.With(zerr.Wrap(domain.ErrNotFound, "builder references an undeclared image"), "builder", b.Name)
			return zerr.With(err, "image", b.Image)
		}
	}
	return validateArtifacts(spec, spec.Exports, nil)
}

func validateArtifacts(spec *domain.BuildSpecification, node domain.ExportNode, path []string) error {
	switch n := node.(type) {
	case *domain.Subtree:
		for _, e := range n.Entries {
			if err := validateArtifacts(spec, e.Node, append(slices.Clone(path), e.Name)); err != nil {
				return err
			}
		}
	case *domain.ContainerArtifact:
		if _, ok := spec.Builder(n.Builder); !ok {
			err := zerr.With(zerr.Wrap(domain.ErrNotFound, "export references an undeclared builder"), "export", dotted(path))
			return zerr.With(err, "builder", n.Builder)
		}
	}
	return nil
}

// validateDockerfile parses the image's Dockerfile when it exists locally.
// A missing file is left for the engine to report.
func validateDockerfile(img domain.ImageSpec) error {
	name := img.Dockerfile
	if name == "" {
		name = defaultDockerfile
	}
	path := resolvePath(img.ContextDir, name)

	f, err := os.Open(path) //nolint:gosec // path comes from the build file
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return zerr.With(zerr.With(zerr.Wrap(domain.ErrIO, "failed to open Dockerfile"), "path", path), "cause", err.Error())
	}
	defer func() { _ = f.Close() }()

	if _, err := parser.Parse(f); err != nil {
		specErr := zerr.With(zerr.Wrap(domain.ErrSpecification, "invalid Dockerfile"), "image", img.Name)
		return zerr.With(zerr.With(specErr, "path", path), "cause", err.Error())
	}
	return nil
}

func resolvePath(base, p string) string {
	if p == "" {
		return base
	}
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(base, p)
}

func isNull(node *yaml.Node) bool {
	return node.Kind == yaml.ScalarNode && node.Tag == "!!null"
}

func isLiteral(node *yaml.Node) bool {
	return node.Kind == yaml.ScalarNode && !isNull(node)
}

func dotted(path []string) string {
	if len(path) == 0 {
		return "exports"
	}
	return "exports." + strings.Join(path, ".")
}

func invalidName(kind, name string) error {
	return zerr.With(zerr.With(zerr.Wrap(domain.ErrInvalidName, "invalid "+kind+" name"), "kind", kind), "name", name)
}

func badFormat(where, reason string) error {
	return zerr.With(zerr.With(zerr.Wrap(domain.ErrSpecification, "bad format"), "at", where), "reason", reason)
}
