package interfaces

// RepositoryInterface is the whole-document persistence boundary. Each
// named document maps to one durable blob; Save rewrites it completely.
// Load returns (nil, nil) when the document does not exist yet.
type RepositoryInterface interface {
	Save(name string, v any) error
	Load(name string) ([]byte, error)
	Close()
}
