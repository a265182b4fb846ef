package checkout

import (
	"context"

	"github.com/google/uuid"

	"github.com/Domenick1991/carrental/internal/domain"
)

// PaymentGateway collects money for a rental. A nil error means the charge
// went through.
type PaymentGateway interface {
	Charge(ctx context.Context, charge domain.Charge) (*domain.Receipt, error)
}

// StubGateway accepts every charge.
type StubGateway struct{}

func (StubGateway) Charge(_ context.Context, charge domain.Charge) (*domain.Receipt, error) {
	return &domain.Receipt{
		OrderID:  "order_" + uuid.NewString(),
		Amount:   charge.Amount,
		Currency: "INR",
	}, nil
}

var _ PaymentGateway = StubGateway{}
