package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Domenick1991/carrental/internal/domain"
	"github.com/Domenick1991/carrental/internal/kvstore"
)

const (
	dateLayout        = "2006-01-02"
	reconcileAttempts = 3
)

type BookingRepository interface {
	List(ctx context.Context) ([]domain.Booking, error)
	Create(ctx context.Context, booking domain.NewBooking) (*domain.Booking, error)
	Transition(ctx context.Context, id domain.BookingID, status domain.BookingStatus) ([]domain.Booking, error)
	ConfirmedCount(ctx context.Context) (int, error)
	// CachedConfirmedCount reads the totalBookings slot without loading the
	// collection, falling back to a recount when the slot is unusable.
	CachedConfirmedCount(ctx context.Context) (int, error)
	ReconcileConfirmedCount(ctx context.Context) (int, error)
}

// KVBookingRepository keeps the whole booking collection in one slot and the
// confirmed count in another. Every mutation rewrites both in one SetMany.
type KVBookingRepository struct {
	mu    sync.Mutex
	store kvstore.Store
	log   *zap.Logger
	now   func() time.Time
}

func NewBookingRepository(store kvstore.Store, log *zap.Logger) *KVBookingRepository {
	return &KVBookingRepository{store: store, log: log, now: time.Now}
}

func (r *KVBookingRepository) List(ctx context.Context) ([]domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.load(ctx)
}

func (r *KVBookingRepository) Create(ctx context.Context, in domain.NewBooking) (*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	bookings, err := r.load(ctx)
	if err != nil {
		return nil, err
	}

	booking := domain.Booking{
		ID:         nextBookingID(bookings),
		User:       in.User,
		Car:        in.Car,
		Status:     domain.BookingStatusPending,
		TotalPrice: in.TotalPrice,
		Date:       in.Date,
		Registered: r.now().Format(dateLayout),
	}
	bookings = append(bookings, booking)

	if err := r.persist(ctx, bookings); err != nil {
		return nil, err
	}

	r.log.Info("booking created", zap.Int64("booking_id", int64(booking.ID)), zap.String("car", booking.Car), zap.String("user", booking.User))
	return &booking, nil
}

func (r *KVBookingRepository) Transition(ctx context.Context, id domain.BookingID, status domain.BookingStatus) ([]domain.Booking, error) {
	if status != domain.BookingStatusConfirmed && status != domain.BookingStatusCancelled {
		return nil, fmt.Errorf("%w: target status %q", ErrInvalidTransition, status)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	bookings, err := r.load(ctx)
	if err != nil {
		return nil, err
	}

	pos, ok := indexByID(bookings)[id]
	if !ok {
		return nil, fmt.Errorf("booking %d: %w", id, ErrNotFound)
	}
	current := bookings[pos]
	if !current.CanTransitionTo(status) {
		return nil, fmt.Errorf("%w: booking %d is %s, cannot become %s", ErrInvalidTransition, id, current.Status, status)
	}

	bookings[pos].Status = status
	if err := r.persist(ctx, bookings); err != nil {
		return nil, err
	}

	r.log.Info("booking transitioned", zap.Int64("booking_id", int64(id)), zap.String("from", string(current.Status)), zap.String("to", string(status)))
	return bookings, nil
}

func (r *KVBookingRepository) ConfirmedCount(ctx context.Context) (int, error) {
	bookings, err := r.List(ctx)
	if err != nil {
		return 0, err
	}
	return domain.CountByStatus(bookings, domain.BookingStatusConfirmed), nil
}

func (r *KVBookingRepository) CachedConfirmedCount(ctx context.Context) (int, error) {
	data, found, err := r.store.Get(ctx, kvstore.KeyTotalBookings)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrPersistenceUnavailable, err)
	}
	if found {
		var n int
		if err := json.Unmarshal(data, &n); err == nil && n >= 0 {
			return n, nil
		}
		r.log.Warn("malformed confirmed count, recounting", zap.ByteString("value", data))
	}
	return r.ConfirmedCount(ctx)
}

// ReconcileConfirmedCount rewrites totalBookings from the collection. On
// stores that support it the write is guarded on bookings being unchanged
// since the read, and retried a few times if another writer got in first.
func (r *KVBookingRepository) ReconcileConfirmedCount(ctx context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	guarded, ok := r.store.(kvstore.ConditionalSetter)
	for attempt := 1; ; attempt++ {
		data, found, err := r.read(ctx)
		if err != nil {
			return 0, err
		}
		count := domain.CountByStatus(r.decode(data, found), domain.BookingStatusConfirmed)

		value, err := json.Marshal(count)
		if err != nil {
			return 0, err
		}
		batch := map[string][]byte{kvstore.KeyTotalBookings: value}

		if !ok {
			if err := r.store.SetMany(ctx, batch); err != nil {
				return 0, fmt.Errorf("%w: %w", ErrPersistenceUnavailable, err)
			}
			return count, nil
		}

		var expected []byte
		if found {
			expected = data
		}
		err = guarded.SetManyIf(ctx, kvstore.KeyBookings, expected, batch)
		switch {
		case err == nil:
			return count, nil
		case !errors.Is(err, kvstore.ErrConflict):
			return 0, fmt.Errorf("%w: %w", ErrPersistenceUnavailable, err)
		case attempt == reconcileAttempts:
			return 0, fmt.Errorf("reconcile confirmed count: %w", err)
		}
		r.log.Debug("bookings changed during reconcile, retrying", zap.Int("attempt", attempt))
	}
}

// load never fails on bad data: an unparseable collection reads as empty.
func (r *KVBookingRepository) load(ctx context.Context) ([]domain.Booking, error) {
	data, found, err := r.read(ctx)
	if err != nil {
		return nil, err
	}
	return r.decode(data, found), nil
}

func (r *KVBookingRepository) read(ctx context.Context) ([]byte, bool, error) {
	data, found, err := r.store.Get(ctx, kvstore.KeyBookings)
	if err != nil {
		return nil, false, fmt.Errorf("%w: %w", ErrPersistenceUnavailable, err)
	}
	return data, found, nil
}

func (r *KVBookingRepository) decode(data []byte, found bool) []domain.Booking {
	if !found {
		return []domain.Booking{}
	}
	var bookings []domain.Booking
	if err := json.Unmarshal(data, &bookings); err != nil {
		r.log.Warn("malformed bookings state, treating as empty", zap.Error(err))
		return []domain.Booking{}
	}
	if bookings == nil {
		bookings = []domain.Booking{}
	}
	return bookings
}

func (r *KVBookingRepository) persist(ctx context.Context, bookings []domain.Booking) error {
	batch, err := kvstore.Encode(map[string]interface{}{
		kvstore.KeyBookings:      bookings,
		kvstore.KeyTotalBookings: domain.CountByStatus(bookings, domain.BookingStatusConfirmed),
	})
	if err != nil {
		return err
	}
	if err := r.store.SetMany(ctx, batch); err != nil {
		return fmt.Errorf("%w: %w", ErrPersistenceUnavailable, err)
	}
	return nil
}

// indexByID maps each id to its first position; later duplicates from legacy
// data are never addressed.
func indexByID(bookings []domain.Booking) map[domain.BookingID]int {
	idx := make(map[domain.BookingID]int, len(bookings))
	for i, b := range bookings {
		if _, seen := idx[b.ID]; !seen {
			idx[b.ID] = i
		}
	}
	return idx
}

func nextBookingID(bookings []domain.Booking) domain.BookingID {
	var highest domain.BookingID
	for _, b := range bookings {
		if b.ID > highest {
			highest = b.ID
		}
	}
	return highest + 1
}

var _ BookingRepository = (*KVBookingRepository)(nil)
