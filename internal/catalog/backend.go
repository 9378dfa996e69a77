package catalog

// Backend is the key-value layer under the run catalog. Values are raw bytes;
// the catalog chooses the encoding.
type Backend interface {
	// EnsureBucket creates the bucket if it does not exist
	EnsureBucket(name []byte) error

	Put(bucket, key, value []byte) error
	// Get returns nil, nil when the key is absent
	Get(bucket, key []byte) ([]byte, error)
	ForEach(bucket []byte, fn func(k, v []byte) error) error

	Close() error
}
