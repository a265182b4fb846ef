package repository

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/Domenick1991/carrental/internal/domain"
	"github.com/Domenick1991/carrental/internal/kvstore"
)

type PaymentRepository interface {
	List(ctx context.Context) ([]domain.Payment, error)
	Add(ctx context.Context, payment domain.Payment) (*domain.Payment, error)
}

// DemoPayments seed an empty ledger.
var DemoPayments = []domain.Payment{
	{ID: 1, Name: "Jenil Donga", Method: domain.PaymentMethodUPI, Amount: 10000, Status: domain.PaymentStatusSuccess, Date: "2025-04-01"},
	{ID: 2, Name: "Kunj Patel", Method: domain.PaymentMethodPayPal, Amount: 7000, Status: domain.PaymentStatusPending, Date: "2025-04-02"},
	{ID: 3, Name: "Deep Nimbark", Method: domain.PaymentMethodCard, Amount: 5000, Status: domain.PaymentStatusFailed, Date: "2025-04-03"},
	{ID: 4, Name: "Dipesh Suliya", Method: domain.PaymentMethodUPI, Amount: 12000, Status: domain.PaymentStatusSuccess, Date: "2025-04-04"},
	{ID: 5, Name: "Meet Patoliya", Method: domain.PaymentMethodUPI, Amount: 15000, Status: domain.PaymentStatusSuccess, Date: "2025-04-05"},
	{ID: 6, Name: "Ansh Sojitra", Method: domain.PaymentMethodPayPal, Amount: 8000, Status: domain.PaymentStatusPending, Date: "2025-04-06"},
	{ID: 7, Name: "Kuldip Zarmariya", Method: domain.PaymentMethodCard, Amount: 13000, Status: domain.PaymentStatusFailed, Date: "2025-04-07"},
	{ID: 8, Name: "Sahil Bedi", Method: domain.PaymentMethodUPI, Amount: 9000, Status: domain.PaymentStatusSuccess, Date: "2025-04-08"},
}

type KVPaymentRepository struct {
	mu    sync.Mutex
	store kvstore.Store
	log   *zap.Logger
	seed  []domain.Payment
}

func NewPaymentRepository(store kvstore.Store, log *zap.Logger) *KVPaymentRepository {
	return &KVPaymentRepository{store: store, log: log, seed: DemoPayments}
}

func (r *KVPaymentRepository) List(ctx context.Context) ([]domain.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.load(ctx)
}

func (r *KVPaymentRepository) Add(ctx context.Context, payment domain.Payment) (*domain.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	payments, err := r.load(ctx)
	if err != nil {
		return nil, err
	}

	var highest int64
	for _, p := range payments {
		if p.ID > highest {
			highest = p.ID
		}
	}
	payment.ID = highest + 1
	payments = append(payments, payment)

	if err := saveJSON(ctx, r.store, kvstore.KeyPayments, payments); err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *KVPaymentRepository) load(ctx context.Context) ([]domain.Payment, error) {
	payments, found, err := loadJSON[[]domain.Payment](ctx, r.store, r.log, kvstore.KeyPayments)
	if err != nil {
		return nil, err
	}
	if !found {
		payments = make([]domain.Payment, len(r.seed))
		copy(payments, r.seed)
	}
	if payments == nil {
		payments = []domain.Payment{}
	}
	return payments, nil
}

var _ PaymentRepository = (*KVPaymentRepository)(nil)
