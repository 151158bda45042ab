package cas_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/stevedore/internal/adapters/cas"
	"go.trai.ch/stevedore/internal/core/domain"
)

func TestStore_PutAndGet(t *testing.T) {
	store, err := cas.NewStore(filepath.Join(t.TempDir(), "exports.json"))
	require.NoError(t, err)

	record := domain.ExportRecord{
		Path:      "/out/a/one.txt",
		Digest:    "0123456789abcdef",
		Size:      3,
		Source:    domain.SourceContainer,
		Timestamp: time.Now().UTC().Truncate(time.Second),
	}
	require.NoError(t, store.Put(record))

	got, err := store.Get("/out/a/one.txt")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, record, *got)
}

func TestStore_GetMissing(t *testing.T) {
	store, err := cas.NewStore(filepath.Join(t.TempDir(), "exports.json"))
	require.NoError(t, err)

	got, err := store.Get("/nope")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestStore_Persistence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "exports.json")

	store1, err := cas.NewStore(path)
	require.NoError(t, err)
	require.NoError(t, store1.Put(domain.ExportRecord{Path: "/out/x", Digest: "d1", Source: domain.SourceFile}))

	store2, err := cas.NewStore(path)
	require.NoError(t, err)

	got, err := store2.Get("/out/x")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "d1", got.Digest)
	assert.Equal(t, domain.SourceFile, got.Source)
}

func TestStore_EmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "exports.json")
	require.NoError(t, os.WriteFile(path, nil, 0o600))

	_, err := cas.NewStore(path)
	require.NoError(t, err)
}

func TestStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "exports.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := cas.NewStore(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrStoreReadFailed)
}
