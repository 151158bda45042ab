package exporter_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/stevedore/internal/core/domain"
	"go.trai.ch/stevedore/internal/core/ports/mocks"
	"go.trai.ch/stevedore/internal/engine/exporter"
	"go.uber.org/mock/gomock"
)

func TestExporter_Export_WritesAndRecords(t *testing.T) {
	ctrl := gomock.NewController(t)

	scripts := mocks.NewMockScriptRunner(ctrl)
	scripts.EXPECT().Output(gomock.Any(), "one.sh").Return([]byte("1"), nil)
	scripts.EXPECT().Output(gomock.Any(), "two.sh").Return([]byte("22"), nil)

	writer := mocks.NewMockOutputWriter(ctrl)
	writer.EXPECT().Write("/out", []string{"a", "one.txt"}, []byte("1")).Return("/out/a/one.txt", nil)
	writer.EXPECT().Write("/out", []string{"a", "two.txt"}, []byte("22")).Return("/out/a/two.txt", nil)

	hasher := mocks.NewMockHasher(ctrl)
	hasher.EXPECT().Sum([]byte("1")).Return("h1")
	hasher.EXPECT().Sum([]byte("22")).Return("h2")

	store := mocks.NewMockExportRecordStore(ctrl)
	store.EXPECT().Get("/out/a/one.txt").Return(&domain.ExportRecord{Digest: "h1"}, nil)
	store.EXPECT().Get("/out/a/two.txt").Return(nil, nil)
	store.EXPECT().Put(gomock.Any()).Return(nil).Times(2)

	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Info("a/one.txt unchanged")
	logger.EXPECT().Info("exported a/two.txt (2 bytes)")

	root := &domain.Subtree{Entries: []domain.ExportEntry{
		{Name: "a", Node: &domain.Subtree{Entries: []domain.ExportEntry{
			{Name: "one.txt", Node: &domain.ScriptRun{Script: "one.sh"}},
			{Name: "two.txt", Node: &domain.ScriptRun{Script: "two.sh"}},
		}}},
	}}

	e := exporter.NewExporter(exporter.NewResolver(nil, scripts), writer, hasher, store, logger)
	records, err := e.Export(context.Background(), "acme", root, "/out", nil)

	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "/out/a/one.txt", records[0].Path)
	assert.Equal(t, "h2", records[1].Digest)
	assert.Equal(t, 2, records[1].Size)
	assert.Equal(t, domain.SourceScript, records[1].Source)
}

func TestExporter_Export_WriteFailureAborts(t *testing.T) {
	ctrl := gomock.NewController(t)

	scripts := mocks.NewMockScriptRunner(ctrl)
	scripts.EXPECT().Output(gomock.Any(), "one.sh").Return([]byte("1"), nil)

	writeErr := errors.New("read-only file system")
	writer := mocks.NewMockOutputWriter(ctrl)
	writer.EXPECT().Write("/out", []string{"one"}, []byte("1")).Return("", writeErr)

	root := &domain.Subtree{Entries: []domain.ExportEntry{
		{Name: "one", Node: &domain.ScriptRun{Script: "one.sh"}},
		{Name: "two", Node: &domain.ScriptRun{Script: "two.sh"}},
	}}

	e := exporter.NewExporter(exporter.NewResolver(nil, scripts), writer,
		mocks.NewMockHasher(ctrl), mocks.NewMockExportRecordStore(ctrl), mocks.NewMockLogger(ctrl))
	records, err := e.Export(context.Background(), "acme", root, "/out", nil)

	require.Error(t, err)
	assert.Empty(t, records)
	assert.ErrorIs(t, err, writeErr)
	assert.ErrorIs(t, err, domain.ErrExportFailed)
}

func TestExporter_Export_StoreReadFailureIsNotFatal(t *testing.T) {
	ctrl := gomock.NewController(t)

	scripts := mocks.NewMockScriptRunner(ctrl)
	scripts.EXPECT().Output(gomock.Any(), "one.sh").Return([]byte("1"), nil)

	writer := mocks.NewMockOutputWriter(ctrl)
	writer.EXPECT().Write("/out", []string{"one"}, []byte("1")).Return("/out/one", nil)

	hasher := mocks.NewMockHasher(ctrl)
	hasher.EXPECT().Sum(gomock.Any()).Return("h1")

	store := mocks.NewMockExportRecordStore(ctrl)
	store.EXPECT().Get("/out/one").Return(nil, errors.New("corrupt"))
	store.EXPECT().Put(gomock.Any()).Return(nil)

	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Warn(gomock.Any())

	root := &domain.Subtree{Entries: []domain.ExportEntry{
		{Name: "one", Node: &domain.ScriptRun{Script: "one.sh"}},
	}}

	e := exporter.NewExporter(exporter.NewResolver(nil, scripts), writer, hasher, store, logger)
	records, err := e.Export(context.Background(), "acme", root, "/out", nil)

	require.NoError(t, err)
	assert.Len(t, records, 1)
}
