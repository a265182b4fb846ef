package kvstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Domenick1991/carrental/config"
)

func TestNewRedis(t *testing.T) {
	store := NewRedis(config.RedisConfig{Addr: "localhost:6379", KeyPrefix: "carrental:"})
	assert.NotNil(t, store)
	assert.Equal(t, "carrental:bookings", store.key(KeyBookings))
	assert.NoError(t, store.Close())
}

func TestOpen_Memory(t *testing.T) {
	cfg := &config.Config{Storage: config.StorageConfig{Driver: "memory"}}
	store, closeFn, err := Open(context.Background(), cfg)
	assert.NoError(t, err)
	assert.IsType(t, &Memory{}, store)
	closeFn()
}

func TestOpen_UnknownDriver(t *testing.T) {
	cfg := &config.Config{Storage: config.StorageConfig{Driver: "etcd"}}
	_, _, err := Open(context.Background(), cfg)
	assert.Error(t, err)
}
