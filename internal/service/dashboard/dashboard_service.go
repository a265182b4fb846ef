package dashboard

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Domenick1991/carrental/internal/domain"
	"github.com/Domenick1991/carrental/internal/kvstore"
	"github.com/Domenick1991/carrental/internal/repository"
	"github.com/Domenick1991/carrental/internal/service/catalog"
)

const defaultTotalUsers = 17

var (
	ErrUnknownField = errors.New("unknown dashboard field")
	ErrInvalidValue = errors.New("dashboard value must be a positive integer")
)

type DashboardUseCase interface {
	Stats(ctx context.Context) (*domain.Stats, error)
	SetCounter(ctx context.Context, field string, value int) (*domain.Stats, error)
}

type DashboardService struct {
	bookings repository.BookingRepository
	counters repository.CounterRepository
	log      *zap.Logger
}

func NewDashboardService(bookings repository.BookingRepository, counters repository.CounterRepository, log *zap.Logger) *DashboardService {
	return &DashboardService{bookings: bookings, counters: counters, log: log}
}

func (s *DashboardService) Stats(ctx context.Context) (*domain.Stats, error) {
	confirmed, err := s.bookings.CachedConfirmedCount(ctx)
	if err != nil {
		return nil, err
	}
	cars, err := s.counters.Get(ctx, kvstore.KeyTotalCars, catalog.BuiltinCarCount)
	if err != nil {
		return nil, err
	}
	users, err := s.counters.Get(ctx, kvstore.KeyTotalUsers, defaultTotalUsers)
	if err != nil {
		return nil, err
	}
	bookings, err := s.bookings.List(ctx)
	if err != nil {
		return nil, err
	}

	var revenue float64
	for _, b := range bookings {
		if b.Status == domain.BookingStatusConfirmed {
			revenue += b.TotalPrice
		}
	}

	return &domain.Stats{
		TotalBookings: confirmed,
		TotalCars:     cars,
		TotalUsers:    users,
		TotalRevenue:  revenue,
	}, nil
}

// SetCounter overwrites one of the hand-maintained counters, totalCars or
// totalUsers.
func (s *DashboardService) SetCounter(ctx context.Context, field string, value int) (*domain.Stats, error) {
	if field != kvstore.KeyTotalCars && field != kvstore.KeyTotalUsers {
		return nil, fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	if value < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidValue, value)
	}
	if err := s.counters.Set(ctx, field, value); err != nil {
		return nil, err
	}
	s.log.Info("dashboard counter updated", zap.String("field", field), zap.Int("value", value))
	return s.Stats(ctx)
}

var _ DashboardUseCase = (*DashboardService)(nil)
