package kv

import (
	"context"
	"encoding/json"
	"fmt"
)

// LoadJSON loads the document at key and decodes it into v.
// POST: v holds the decoded document, or ErrNotFound if the key is absent
// Malformed stored content is rejected with an error rather than silently
// coerced into a zero value.
func LoadJSON(ctx context.Context, r Repository, key string, v any) error {
	raw, err := r.Load(ctx, key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("decode kv collection %q: %w", key, err)
	}
	return nil
}

// SaveJSON encodes v and writes it at key.
// POST: the document at key is replaced
func SaveJSON(ctx context.Context, r Repository, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode kv collection %q: %w", key, err)
	}
	return r.Save(ctx, key, raw)
}
