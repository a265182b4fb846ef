package payments

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/Domenick1991/carrental/internal/domain"
	"github.com/Domenick1991/carrental/internal/repository"
)

var (
	ErrInvalidPayment = errors.New("invalid payment")
	ErrUnknownSortKey = errors.New("unknown sort key")
)

// CSVHeader is the first row of every export.
var CSVHeader = []string{"ID", "Name", "Method", "Amount (₹)", "Status", "Date"}

// Filter narrows and orders the ledger. Status "all" or "" keeps every row;
// an empty SortKey sorts by date.
type Filter struct {
	Query   string
	Status  string
	SortKey string
	Desc    bool
}

type AddPaymentInput struct {
	Name   string               `json:"name" validate:"required"`
	Method domain.PaymentMethod `json:"method" validate:"omitempty,oneof=Razorpay Card PayPal UPI"`
	Amount float64              `json:"amount" validate:"gt=0"`
	Status domain.PaymentStatus `json:"status" validate:"omitempty,oneof=Success Pending Failed"`
	Date   string               `json:"date" validate:"omitempty,datetime=2006-01-02"`
}

type PaymentUseCase interface {
	List(ctx context.Context, filter Filter) ([]domain.Payment, error)
	Add(ctx context.Context, input AddPaymentInput) (*domain.Payment, error)
	ExportCSV(ctx context.Context, w io.Writer, filter Filter) error
}

type PaymentService struct {
	payments repository.PaymentRepository
	validate *validator.Validate
	log      *zap.Logger
	now      func() time.Time
}

func NewPaymentService(payments repository.PaymentRepository, log *zap.Logger) *PaymentService {
	return &PaymentService{
		payments: payments,
		validate: validator.New(),
		log:      log,
		now:      time.Now,
	}
}

func (s *PaymentService) List(ctx context.Context, filter Filter) ([]domain.Payment, error) {
	less, err := comparator(filter.SortKey)
	if err != nil {
		return nil, err
	}

	all, err := s.payments.List(ctx)
	if err != nil {
		return nil, err
	}

	query := strings.ToLower(strings.TrimSpace(filter.Query))
	status := strings.ToLower(strings.TrimSpace(filter.Status))
	out := make([]domain.Payment, 0, len(all))
	for _, p := range all {
		if status != "" && status != "all" && strings.ToLower(string(p.Status)) != status {
			continue
		}
		if query != "" && !matches(p, query) {
			continue
		}
		out = append(out, p)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if filter.Desc {
			return less(out[j], out[i])
		}
		return less(out[i], out[j])
	})
	return out, nil
}

func (s *PaymentService) Add(ctx context.Context, input AddPaymentInput) (*domain.Payment, error) {
	input.Name = strings.TrimSpace(input.Name)
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidPayment, err.Error())
	}

	payment := domain.Payment{
		Name:   input.Name,
		Method: input.Method,
		Amount: input.Amount,
		Status: input.Status,
		Date:   input.Date,
	}
	if payment.Method == "" {
		payment.Method = domain.PaymentMethodUPI
	}
	if payment.Status == "" {
		payment.Status = domain.PaymentStatusSuccess
	}
	if payment.Date == "" {
		payment.Date = s.now().Format("2006-01-02")
	}

	added, err := s.payments.Add(ctx, payment)
	if err != nil {
		return nil, err
	}
	s.log.Info("payment added", zap.Int64("payment_id", added.ID), zap.String("status", string(added.Status)))
	return added, nil
}

// ExportCSV writes the filtered ledger, header first.
func (s *PaymentService) ExportCSV(ctx context.Context, w io.Writer, filter Filter) error {
	rows, err := s.List(ctx, filter)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return err
	}
	for _, p := range rows {
		record := []string{
			strconv.FormatInt(p.ID, 10),
			p.Name,
			string(p.Method),
			strconv.FormatFloat(p.Amount, 'f', -1, 64),
			string(p.Status),
			p.Date,
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func matches(p domain.Payment, query string) bool {
	fields := []string{
		strconv.FormatInt(p.ID, 10),
		p.Name,
		string(p.Method),
		string(p.Status),
		p.Date,
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), query) {
			return true
		}
	}
	return false
}

func comparator(key string) (func(a, b domain.Payment) bool, error) {
	switch key {
	case "", "date":
		return func(a, b domain.Payment) bool { return a.Date < b.Date }, nil
	case "id":
		return func(a, b domain.Payment) bool { return a.ID < b.ID }, nil
	case "name":
		return func(a, b domain.Payment) bool { return a.Name < b.Name }, nil
	case "method":
		return func(a, b domain.Payment) bool { return a.Method < b.Method }, nil
	case "amount":
		return func(a, b domain.Payment) bool { return a.Amount < b.Amount }, nil
	case "status":
		return func(a, b domain.Payment) bool { return a.Status < b.Status }, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownSortKey, key)
}

var _ PaymentUseCase = (*PaymentService)(nil)
