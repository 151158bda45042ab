package ports

import "go.trai.ch/stevedore/internal/core/domain"

// ExportRecordStore persists the records of files written by previous exports.
//
//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type ExportRecordStore interface {
	// Get retrieves the record for an output path.
	// Returns nil, nil if not found.
	Get(path string) (*domain.ExportRecord, error)

	// Put stores the record.
	Put(record domain.ExportRecord) error
}
