package repository

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/Domenick1991/carrental/internal/domain"
	"github.com/Domenick1991/carrental/internal/kvstore"
)

// CarRepository holds the admin-managed cars that extend the built-in catalog.
type CarRepository interface {
	List(ctx context.Context) ([]domain.Car, error)
	Add(ctx context.Context, car domain.Car) (*domain.Car, error)
	Update(ctx context.Context, car domain.Car) (*domain.Car, error)
	Delete(ctx context.Context, id int64) error
}

type KVCarRepository struct {
	mu      sync.Mutex
	store   kvstore.Store
	log     *zap.Logger
	firstID int64
}

type CarRepositoryOption func(*KVCarRepository)

// WithFirstCarID keeps managed ids at or above id, clear of ids owned elsewhere.
func WithFirstCarID(id int64) CarRepositoryOption {
	return func(r *KVCarRepository) {
		if id > 0 {
			r.firstID = id
		}
	}
}

func NewCarRepository(store kvstore.Store, log *zap.Logger, opts ...CarRepositoryOption) *KVCarRepository {
	r := &KVCarRepository{store: store, log: log, firstID: 1}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *KVCarRepository) List(ctx context.Context) ([]domain.Car, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.load(ctx)
}

func (r *KVCarRepository) Add(ctx context.Context, car domain.Car) (*domain.Car, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cars, err := r.load(ctx)
	if err != nil {
		return nil, err
	}

	next := r.firstID
	for _, c := range cars {
		if c.ID >= next {
			next = c.ID + 1
		}
	}
	car.ID = next
	cars = append(cars, car)

	if err := saveJSON(ctx, r.store, kvstore.KeyCars, cars); err != nil {
		return nil, err
	}
	return &car, nil
}

func (r *KVCarRepository) Update(ctx context.Context, car domain.Car) (*domain.Car, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cars, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range cars {
		if cars[i].ID == car.ID {
			cars[i] = car
			if err := saveJSON(ctx, r.store, kvstore.KeyCars, cars); err != nil {
				return nil, err
			}
			return &car, nil
		}
	}
	return nil, fmt.Errorf("car %d: %w", car.ID, ErrNotFound)
}

func (r *KVCarRepository) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cars, err := r.load(ctx)
	if err != nil {
		return err
	}
	kept := make([]domain.Car, 0, len(cars))
	for _, c := range cars {
		if c.ID != id {
			kept = append(kept, c)
		}
	}
	if len(kept) == len(cars) {
		return fmt.Errorf("car %d: %w", id, ErrNotFound)
	}
	return saveJSON(ctx, r.store, kvstore.KeyCars, kept)
}

func (r *KVCarRepository) load(ctx context.Context) ([]domain.Car, error) {
	cars, _, err := loadJSON[[]domain.Car](ctx, r.store, r.log, kvstore.KeyCars)
	if err != nil {
		return nil, err
	}
	if cars == nil {
		cars = []domain.Car{}
	}
	return cars, nil
}

var _ CarRepository = (*KVCarRepository)(nil)
