// Package exporter resolves the export tree into artifacts and materializes them in the output directory.
package exporter

import (
	"archive/tar"
	"bytes"
	"context"
	"errors"
	"io"
	"iter"
	"os"
	"path"
	"strings"

	"go.trai.ch/stevedore/internal/core/domain"
	"go.trai.ch/stevedore/internal/core/ports"
	"go.trai.ch/zerr"
)

// Resolver walks an export tree and produces the contents of every leaf.
type Resolver struct {
	engine  ports.Engine
	scripts ports.ScriptRunner
}

// NewResolver creates a new Resolver.
func NewResolver(engine ports.Engine, scripts ports.ScriptRunner) *Resolver {
	return &Resolver{engine: engine, scripts: scripts}
}

// Resolve returns the artifacts of root depth-first in declaration order.
// Container artifacts may only reference builders reported as succeeded.
// The sequence stops after the first error, which is yielded with the path of the failing leaf.
func (r *Resolver) Resolve(
	ctx context.Context,
	project string,
	root domain.ExportNode,
	builders domain.BuilderReport,
) iter.Seq2[domain.Artifact, error] {
	return func(yield func(domain.Artifact, error) bool) {
		if root == nil {
			return
		}
		w := walker{r: r, ctx: ctx, project: project, builders: builders, yield: yield}
		w.walk(root, nil)
	}
}

type walker struct {
	r        *Resolver
	ctx      context.Context
	project  string
	builders domain.BuilderReport
	yield    func(domain.Artifact, error) bool
}

// walk returns false once the consumer stops or an error was yielded.
func (w *walker) walk(node domain.ExportNode, prefix []string) bool {
	if err := w.ctx.Err(); err != nil {
		w.yield(domain.Artifact{Path: prefix}, err)
		return false
	}

	if sub, ok := node.(*domain.Subtree); ok {
		for _, entry := range sub.Entries {
			if !w.walk(entry.Node, appendSegment(prefix, entry.Name)) {
				return false
			}
		}
		return true
	}

	artifact, err := w.r.leaf(w.ctx, w.project, node, w.builders)
	artifact.Path = prefix
	if err != nil {
		err = annotate(err, "export", strings.Join(prefix, "/"))
		w.yield(artifact, err)
		return false
	}
	return w.yield(artifact, nil)
}

func appendSegment(prefix []string, name string) []string {
	out := make([]string, len(prefix), len(prefix)+1)
	copy(out, prefix)
	return append(out, name)
}

func (r *Resolver) leaf(
	ctx context.Context,
	project string,
	node domain.ExportNode,
	builders domain.BuilderReport,
) (domain.Artifact, error) {
	switch n := node.(type) {
	case *domain.FileCopy:
		data, err := readFile(n.Path)
		return domain.Artifact{Contents: data, Source: domain.SourceFile}, err
	case *domain.ScriptRun:
		data, err := r.scripts.Output(ctx, n.Script)
		return domain.Artifact{Contents: data, Source: domain.SourceScript}, err
	case *domain.ContainerArtifact:
		data, err := r.extract(ctx, project, n, builders)
		return domain.Artifact{Contents: data, Source: domain.SourceContainer}, err
	default:
		return domain.Artifact{}, zerr.Wrap(domain.ErrSpecification, "unrecognized export node")
	}
}

func readFile(p string) ([]byte, error) {
	//nolint:gosec // Paths come from the build file
	data, err := os.ReadFile(p)
	if err != nil {
		ioErr := zerr.Wrap(domain.ErrIO, "failed to read export source")
		return nil, zerr.With(zerr.With(ioErr, "path", p), "cause", err.Error())
	}
	return data, nil
}

func (r *Resolver) extract(
	ctx context.Context,
	project string,
	n *domain.ContainerArtifact,
	builders domain.BuilderReport,
) ([]byte, error) {
	if !builders.Succeeded(n.Builder) {
		notFound := zerr.Wrap(domain.ErrNotFound, "builder has not completed successfully")
		return nil, zerr.With(notFound, "builder", n.Builder)
	}

	name := domain.ResourceName(project, n.Builder)
	var archive bytes.Buffer
	if err := r.engine.CopyFromContainer(ctx, name, n.Resource, &archive); err != nil {
		return nil, err
	}

	data, err := entryFromArchive(&archive, path.Base(n.Resource))
	if err != nil {
		return nil, zerr.With(zerr.With(err, "container", name), "resource", n.Resource)
	}
	return data, nil
}

// entryFromArchive returns the regular file named base, or the only regular file in the archive.
func entryFromArchive(r io.Reader, base string) ([]byte, error) {
	tr := tar.NewReader(r)

	var (
		only  []byte
		count int
	)
	for {
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			ioErr := zerr.Wrap(domain.ErrIO, "failed to read container archive")
			return nil, zerr.With(ioErr, "cause", err.Error())
		}
		if hdr.Typeflag != tar.TypeReg {
			continue
		}

		data, err := io.ReadAll(tr)
		if err != nil {
			ioErr := zerr.Wrap(domain.ErrIO, "failed to read container archive entry")
			return nil, zerr.With(ioErr, "entry", hdr.Name)
		}
		if path.Base(hdr.Name) == base {
			return data, nil
		}
		only = data
		count++
	}

	if count == 1 {
		return only, nil
	}
	return nil, zerr.Wrap(domain.ErrNotFound, "resource not found in container archive")
}

// annotate attaches metadata, wrapping foreign errors so the key is not lost.
func annotate(err error, key string, value any) error {
	if _, ok := err.(*zerr.Error); !ok {
		err = zerr.Wrap(err, "export step failed")
	}
	return zerr.With(err, key, value)
}
