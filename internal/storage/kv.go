package storage

import "context"

// Collection keys. They mirror the keys the data lived under before, so
// an exported dump stays recognizable.
const (
	KeyFlashcards = "flashflow_flashcards"
	KeyProgress   = "flashflow_progress"
)

// KV is the durable key-value collaborator the store persists through.
// Each collection round-trips as one opaque JSON value; there are no
// partial updates at this layer.
//
// Load returns (nil, nil) when the key has never been written.
type KV interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}
