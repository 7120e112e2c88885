package kv

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a collection key has never been written.
var ErrNotFound = errors.New("kv key not found")

// Repository is a key-value store holding one JSON document per logical
// collection. Callers address collections by string key and never see the
// storage mechanism.
type Repository interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, value []byte) error
}
