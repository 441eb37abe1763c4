package ports

// Hasher defines the interface for computing content hashes.
//
//go:generate mockgen -destination=mocks/mock_hasher.go -package=mocks -source=hasher.go
type Hasher interface {
	// ContentHash digests the file bytes together with the operation-relevant configuration.
	// The configuration is serialized canonically so equal settings always hash equally.
	ContentHash(content []byte, config any) (string, error)
}
