// Package fs implements output materialization and content hashing on the local filesystem.
package fs

import (
	"os"
	"path/filepath"

	securejoin "github.com/cyphar/filepath-securejoin"
	"go.trai.ch/stevedore/internal/core/domain"
	"go.trai.ch/stevedore/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.OutputWriter = (*Writer)(nil)

const (
	dirPerm  = 0o750
	filePerm = 0o644
)

// Writer writes export artifacts below an output root.
type Writer struct{}

// NewWriter creates a new Writer.
func NewWriter() *Writer {
	return &Writer{}
}

// Write stores data at root/segments..., creating parent directories and truncating any
// existing file. Segments cannot escape root.
func (w *Writer) Write(root string, segments []string, data []byte) (string, error) {
	if len(segments) == 0 {
		return "", zerr.Wrap(domain.ErrSpecification, "export leaf has an empty path")
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return "", ioError(err, "failed to resolve output directory", root)
	}

	target, err := securejoin.SecureJoin(absRoot, filepath.Join(segments...))
	if err != nil {
		return "", ioError(err, "failed to resolve output path", filepath.Join(segments...))
	}
	if target == absRoot {
		return "", zerr.With(zerr.Wrap(domain.ErrSpecification, "export path resolves to the output directory"),
			"path", filepath.Join(segments...))
	}

	if err := os.MkdirAll(filepath.Dir(target), dirPerm); err != nil {
		return "", ioError(err, "failed to create output directory", filepath.Dir(target))
	}

	//nolint:gosec // target is confined to the output root
	if err := os.WriteFile(target, data, filePerm); err != nil {
		return "", ioError(err, "failed to write output file", target)
	}

	return target, nil
}

func ioError(err error, msg, path string) error {
	ioErr := zerr.With(zerr.Wrap(domain.ErrIO, msg), "path", path)
	return zerr.With(ioErr, "cause", err.Error())
}
