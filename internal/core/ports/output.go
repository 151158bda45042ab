package ports

//go:generate go run go.uber.org/mock/mockgen -source=output.go -destination=mocks/mock_output.go -package=mocks

// OutputWriter materializes exported files under an output root.
type OutputWriter interface {
	// Write stores data at the path formed by segments below root, creating parents.
	// It returns the absolute path written.
	Write(root string, segments []string, data []byte) (string, error)
}

// Hasher computes content digests.
type Hasher interface {
	// Sum returns a stable digest of data.
	Sum(data []byte) string
}
