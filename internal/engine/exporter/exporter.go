package exporter

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.trai.ch/stevedore/internal/core/domain"
	"go.trai.ch/stevedore/internal/core/ports"
)

// Exporter writes resolved artifacts under an output directory and records what was written.
type Exporter struct {
	resolver *Resolver
	writer   ports.OutputWriter
	hasher   ports.Hasher
	store    ports.ExportRecordStore
	logger   ports.Logger
	now      func() time.Time
}

// NewExporter creates a new Exporter.
func NewExporter(
	resolver *Resolver,
	writer ports.OutputWriter,
	hasher ports.Hasher,
	store ports.ExportRecordStore,
	logger ports.Logger,
) *Exporter {
	return &Exporter{
		resolver: resolver,
		writer:   writer,
		hasher:   hasher,
		store:    store,
		logger:   logger,
		now:      time.Now,
	}
}

// Export resolves root and writes every artifact below outputDir, overwriting existing files.
// The first failing leaf aborts the export; files already written are left in place.
func (e *Exporter) Export(
	ctx context.Context,
	project string,
	root domain.ExportNode,
	outputDir string,
	builders domain.BuilderReport,
) ([]domain.ExportRecord, error) {
	var records []domain.ExportRecord

	for artifact, err := range e.resolver.Resolve(ctx, project, root, builders) {
		if err != nil {
			return records, errors.Join(domain.ErrExportFailed, err)
		}

		record, err := e.write(outputDir, artifact)
		if err != nil {
			return records, errors.Join(domain.ErrExportFailed, err)
		}
		records = append(records, record)
	}

	return records, nil
}

func (e *Exporter) write(outputDir string, artifact domain.Artifact) (domain.ExportRecord, error) {
	written, err := e.writer.Write(outputDir, artifact.Path, artifact.Contents)
	if err != nil {
		return domain.ExportRecord{}, annotate(err, "export", artifact.DisplayPath())
	}

	record := domain.ExportRecord{
		Path:      written,
		Digest:    e.hasher.Sum(artifact.Contents),
		Size:      len(artifact.Contents),
		Source:    artifact.Source,
		Timestamp: e.now(),
	}

	prev, err := e.store.Get(written)
	switch {
	case err != nil:
		e.logger.Warn(fmt.Sprintf("export records unavailable: %v", err))
	case prev != nil && prev.Digest == record.Digest:
		e.logger.Info(fmt.Sprintf("%s unchanged", artifact.DisplayPath()))
	default:
		e.logger.Info(fmt.Sprintf("exported %s (%d bytes)", artifact.DisplayPath(), record.Size))
	}

	if err := e.store.Put(record); err != nil {
		return record, err
	}
	return record, nil
}
