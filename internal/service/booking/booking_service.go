package booking

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Domenick1991/carrental/internal/domain"
	"github.com/Domenick1991/carrental/internal/kafka"
	"github.com/Domenick1991/carrental/internal/repository"
)

type BookingUseCase interface {
	ListBookings(ctx context.Context) ([]domain.Booking, error)
	CreateBooking(ctx context.Context, input CreateBookingInput) (*domain.Booking, error)
	ConfirmBooking(ctx context.Context, id domain.BookingID) ([]domain.Booking, error)
	CancelBooking(ctx context.Context, id domain.BookingID) ([]domain.Booking, error)
	ConfirmedCount(ctx context.Context) (int, error)
	ReconcileConfirmedCount(ctx context.Context) (int, error)
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type BookingService struct {
	bookings           repository.BookingRepository
	producer           Producer
	bookingTopic       string
	notificationsTopic string
	log                *zap.Logger
}

type CreateBookingInput struct {
	User       string  `json:"user"`
	Car        string  `json:"car"`
	TotalPrice float64 `json:"totalPrice"`
	Date       string  `json:"date"`
}

type BookingServiceOption func(*BookingService)

func WithNotificationsTopic(topic string) BookingServiceOption {
	return func(s *BookingService) {
		s.notificationsTopic = topic
	}
}

// WithProducer enables event publishing on bookingTopic.
func WithProducer(producer Producer, bookingTopic string) BookingServiceOption {
	return func(s *BookingService) {
		s.producer = producer
		s.bookingTopic = bookingTopic
	}
}

func NewBookingService(bookings repository.BookingRepository, log *zap.Logger, opts ...BookingServiceOption) *BookingService {
	service := &BookingService{
		bookings: bookings,
		log:      log,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

func (s *BookingService) ListBookings(ctx context.Context) ([]domain.Booking, error) {
	return s.bookings.List(ctx)
}

func (s *BookingService) CreateBooking(ctx context.Context, input CreateBookingInput) (*domain.Booking, error) {
	booking, err := s.bookings.Create(ctx, domain.NewBooking{
		User:       input.User,
		Car:        input.Car,
		TotalPrice: input.TotalPrice,
		Date:       input.Date,
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, kafka.EventBookingCreated, *booking)
	return booking, nil
}

func (s *BookingService) ConfirmBooking(ctx context.Context, id domain.BookingID) ([]domain.Booking, error) {
	return s.transition(ctx, id, domain.BookingStatusConfirmed, kafka.EventBookingConfirmed)
}

func (s *BookingService) CancelBooking(ctx context.Context, id domain.BookingID) ([]domain.Booking, error) {
	return s.transition(ctx, id, domain.BookingStatusCancelled, kafka.EventBookingCancelled)
}

func (s *BookingService) ConfirmedCount(ctx context.Context) (int, error) {
	return s.bookings.ConfirmedCount(ctx)
}

func (s *BookingService) ReconcileConfirmedCount(ctx context.Context) (int, error) {
	return s.bookings.ReconcileConfirmedCount(ctx)
}

func (s *BookingService) transition(ctx context.Context, id domain.BookingID, status domain.BookingStatus, eventType string) ([]domain.Booking, error) {
	updated, err := s.bookings.Transition(ctx, id, status)
	if err != nil {
		s.log.Info("booking transition rejected", zap.Int64("booking_id", int64(id)), zap.String("to", string(status)), zap.Error(err))
		return nil, err
	}

	for _, b := range updated {
		if b.ID == id {
			s.publish(ctx, eventType, b)
			break
		}
	}
	return updated, nil
}

// publish never fails the caller; the booking is already persisted.
func (s *BookingService) publish(ctx context.Context, eventType string, booking domain.Booking) {
	if s.producer == nil || s.bookingTopic == "" {
		return
	}
	event := kafka.BookingEvent{
		ID:         uuid.NewString(),
		Type:       eventType,
		BookingID:  int64(booking.ID),
		User:       booking.User,
		Car:        booking.Car,
		Status:     string(booking.Status),
		TotalPrice: booking.TotalPrice,
		OccurredAt: time.Now().UTC(),
	}
	key := strconv.FormatInt(event.BookingID, 10)
	if err := s.producer.Publish(ctx, s.bookingTopic, key, event); err != nil {
		s.log.Warn("failed to publish booking event", zap.String("type", eventType), zap.Int64("booking_id", event.BookingID), zap.Error(err))
		return
	}
	if s.notificationsTopic != "" {
		if err := s.producer.Publish(ctx, s.notificationsTopic, key, event); err != nil {
			s.log.Warn("failed to publish notification", zap.String("type", eventType), zap.Int64("booking_id", event.BookingID), zap.Error(err))
		}
	}
}

var _ BookingUseCase = (*BookingService)(nil)
