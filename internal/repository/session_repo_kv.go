package repository

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/Domenick1991/carrental/internal/kvstore"
)

// SessionRepository keeps the signed-in username and its token.
type SessionRepository interface {
	Username(ctx context.Context) (string, error)
	SetUsername(ctx context.Context, username string) error
	SetToken(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}

// CounterRepository holds the editable dashboard counters.
type CounterRepository interface {
	Get(ctx context.Context, key string, fallback int) (int, error)
	Set(ctx context.Context, key string, value int) error
}

type KVSessionRepository struct {
	store kvstore.Store
	log   *zap.Logger
}

func NewSessionRepository(store kvstore.Store, log *zap.Logger) *KVSessionRepository {
	return &KVSessionRepository{store: store, log: log}
}

func (r *KVSessionRepository) Username(ctx context.Context) (string, error) {
	name, _, err := loadJSON[string](ctx, r.store, r.log, kvstore.KeyUsername)
	return name, err
}

func (r *KVSessionRepository) SetUsername(ctx context.Context, username string) error {
	return saveJSON(ctx, r.store, kvstore.KeyUsername, username)
}

func (r *KVSessionRepository) SetToken(ctx context.Context, token string) error {
	return saveJSON(ctx, r.store, kvstore.KeyAuthToken, token)
}

func (r *KVSessionRepository) Clear(ctx context.Context) error {
	for _, key := range []string{kvstore.KeyUsername, kvstore.KeyAuthToken} {
		if err := r.store.Delete(ctx, key); err != nil {
			return fmt.Errorf("%w: %w", ErrPersistenceUnavailable, err)
		}
	}
	return nil
}

type KVCounterRepository struct {
	store kvstore.Store
	log   *zap.Logger
}

func NewCounterRepository(store kvstore.Store, log *zap.Logger) *KVCounterRepository {
	return &KVCounterRepository{store: store, log: log}
}

func (r *KVCounterRepository) Get(ctx context.Context, key string, fallback int) (int, error) {
	n, found, err := loadJSON[int](ctx, r.store, r.log, key)
	if err != nil {
		return 0, err
	}
	if !found {
		return fallback, nil
	}
	return n, nil
}

func (r *KVCounterRepository) Set(ctx context.Context, key string, value int) error {
	return saveJSON(ctx, r.store, key, value)
}

var (
	_ SessionRepository = (*KVSessionRepository)(nil)
	_ CounterRepository = (*KVCounterRepository)(nil)
)
