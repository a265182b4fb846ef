package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/Domenick1991/carrental/internal/kvstore"
)

// loadJSON decodes one slot. found is false for an absent or unparseable
// value; only backend failures are returned as errors.
func loadJSON[T any](ctx context.Context, store kvstore.Store, log *zap.Logger, key string) (T, bool, error) {
	var out T
	data, found, err := store.Get(ctx, key)
	if err != nil {
		return out, false, fmt.Errorf("%w: %w", ErrPersistenceUnavailable, err)
	}
	if !found {
		return out, false, nil
	}
	if err := json.Unmarshal(data, &out); err != nil {
		log.Warn("malformed state, ignoring", zap.String("key", key), zap.Error(err))
		var zero T
		return zero, false, nil
	}
	return out, true, nil
}

func saveJSON(ctx context.Context, store kvstore.Store, key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := kvstore.Set(ctx, store, key, data); err != nil {
		return fmt.Errorf("%w: %w", ErrPersistenceUnavailable, err)
	}
	return nil
}
