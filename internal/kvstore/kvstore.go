// Package kvstore is the persisted key-value slot layer that the booking
// store and the admin views share. Values are JSON documents keyed by fixed
// string names; every write replaces a whole value.
package kvstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// Fixed key names of the persisted layout.
const (
	KeyBookings      = "bookings"
	KeyTotalBookings = "totalBookings"
	KeyUsername      = "username"
	KeyAuthToken     = "authToken"
	KeyCars          = "cars"
	KeyTotalCars     = "totalCars"
	KeyTotalUsers    = "totalUsers"
	KeyPayments      = "payments"
)

type Store interface {
	// Get returns found=false with a nil error when the key is absent.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// SetMany writes all pairs or none of them.
	SetMany(ctx context.Context, values map[string][]byte) error
	Delete(ctx context.Context, key string) error
}

// ErrConflict means the watched key no longer held the expected value.
var ErrConflict = errors.New("watched key changed")

// ConditionalSetter is implemented by stores that can guard a batch on the
// current value of one key. A nil expected value means the key is absent.
type ConditionalSetter interface {
	SetManyIf(ctx context.Context, watched string, expected []byte, values map[string][]byte) error
}

func Set(ctx context.Context, s Store, key string, value []byte) error {
	return s.SetMany(ctx, map[string][]byte{key: value})
}

// Encode marshals several values into a SetMany batch.
func Encode(values map[string]interface{}) (map[string][]byte, error) {
	batch := make(map[string][]byte, len(values))
	for key, v := range values {
		data, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", key, err)
		}
		batch[key] = data
	}
	return batch, nil
}
