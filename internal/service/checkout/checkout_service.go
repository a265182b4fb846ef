package checkout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Domenick1991/carrental/internal/domain"
	"github.com/Domenick1991/carrental/internal/repository"
	"github.com/Domenick1991/carrental/internal/service/booking"
	"github.com/Domenick1991/carrental/internal/service/catalog"
)

var (
	ErrPaymentFailed = errors.New("payment failed")
	ErrInvalidMethod = errors.New("unsupported payment method")
)

const dateLayout = "2006-01-02"

type CheckoutInput struct {
	User    string               `json:"user"`
	CarSlug string               `json:"car"`
	Days    int                  `json:"days"`
	Method  domain.PaymentMethod `json:"method"`
}

type CheckoutResult struct {
	Quote   domain.Quote    `json:"quote"`
	Booking *domain.Booking `json:"booking"`
	Payment *domain.Payment `json:"payment,omitempty"`
}

type CheckoutUseCase interface {
	Checkout(ctx context.Context, input CheckoutInput) (*CheckoutResult, error)
}

type CheckoutService struct {
	catalog  catalog.CatalogUseCase
	bookings booking.BookingUseCase
	payments repository.PaymentRepository
	sessions repository.SessionRepository
	gateway  PaymentGateway
	log      *zap.Logger
	now      func() time.Time
}

func NewCheckoutService(
	catalog catalog.CatalogUseCase,
	bookings booking.BookingUseCase,
	payments repository.PaymentRepository,
	sessions repository.SessionRepository,
	gateway PaymentGateway,
	log *zap.Logger,
) *CheckoutService {
	return &CheckoutService{
		catalog:  catalog,
		bookings: bookings,
		payments: payments,
		sessions: sessions,
		gateway:  gateway,
		log:      log,
		now:      time.Now,
	}
}

// Checkout prices the rental, charges it and books it. Nothing is booked
// unless the gateway accepts the charge.
func (s *CheckoutService) Checkout(ctx context.Context, input CheckoutInput) (*CheckoutResult, error) {
	method, err := paymentMethod(input.Method)
	if err != nil {
		return nil, err
	}

	quote, err := s.catalog.Quote(ctx, input.CarSlug, input.Days)
	if err != nil {
		return nil, err
	}

	user := input.User
	if user == "" {
		user, err = s.sessions.Username(ctx)
		if err != nil {
			return nil, err
		}
	}

	today := s.now().Format(dateLayout)
	receipt, chargeErr := s.gateway.Charge(ctx, domain.Charge{
		User:   user,
		Car:    quote.Car,
		Amount: quote.Total,
		Method: method,
	})
	if chargeErr != nil {
		s.log.Warn("charge declined",
			zap.String("car", quote.Car),
			zap.Float64("amount", quote.Total),
			zap.Error(chargeErr),
		)
		s.record(ctx, domain.Payment{Name: user, Method: method, Amount: quote.Total, Status: domain.PaymentStatusFailed, Date: today})
		return nil, fmt.Errorf("%w: %w", ErrPaymentFailed, chargeErr)
	}

	created, err := s.bookings.CreateBooking(ctx, booking.CreateBookingInput{
		User:       user,
		Car:        quote.Car,
		TotalPrice: quote.Total,
		Date:       today,
	})
	if err != nil {
		s.log.Error("charge accepted but booking not stored",
			zap.String("order_id", receipt.OrderID),
			zap.Error(err),
		)
		return nil, err
	}

	payment := s.record(ctx, domain.Payment{
		Name:      user,
		Method:    method,
		Amount:    quote.Total,
		Status:    domain.PaymentStatusSuccess,
		Date:      today,
		Reference: receipt.OrderID,
	})

	return &CheckoutResult{Quote: *quote, Booking: created, Payment: payment}, nil
}

// record appends to the ledger. A ledger failure does not undo the checkout.
func (s *CheckoutService) record(ctx context.Context, payment domain.Payment) *domain.Payment {
	saved, err := s.payments.Add(ctx, payment)
	if err != nil {
		s.log.Warn("payment not recorded", zap.String("status", string(payment.Status)), zap.Error(err))
		return nil
	}
	return saved
}

func paymentMethod(m domain.PaymentMethod) (domain.PaymentMethod, error) {
	switch m {
	case "":
		return domain.PaymentMethodRazorpay, nil
	case domain.PaymentMethodRazorpay, domain.PaymentMethodCard, domain.PaymentMethodPayPal:
		return m, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidMethod, m)
}

var _ CheckoutUseCase = (*CheckoutService)(nil)
