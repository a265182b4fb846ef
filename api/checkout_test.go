package api

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/Domenick1991/carrental/internal/domain"
	"github.com/Domenick1991/carrental/internal/service/catalog"
	"github.com/Domenick1991/carrental/internal/service/checkout"
)

type MockCheckoutUseCase struct {
	mock.Mock
}

func (m *MockCheckoutUseCase) Checkout(ctx context.Context, input checkout.CheckoutInput) (*checkout.CheckoutResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*checkout.CheckoutResult), args.Error(1)
}

func TestCheckoutHandler_checkout(t *testing.T) {
	tests := []struct {
		name   string
		result *checkout.CheckoutResult
		err    error
		status int
	}{
		{
			name:   "booked",
			result: &checkout.CheckoutResult{Booking: &domain.Booking{ID: 1, Status: domain.BookingStatusPending}},
			status: http.StatusCreated,
		},
		{"declined", nil, fmt.Errorf("%w: %w", checkout.ErrPaymentFailed, errors.New("card declined")), http.StatusPaymentRequired},
		{"unknown car", nil, catalog.ErrCarNotFound, http.StatusNotFound},
		{"too long", nil, catalog.ErrInvalidDuration, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := &MockCheckoutUseCase{}
			handler := NewCheckoutHandler(mockService)

			gin.SetMode(gin.TestMode)
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest("POST", "/api/checkout", bytes.NewReader([]byte(`{"car":"swift","days":2,"method":"Card"}`)))
			c.Request.Header.Set("Content-Type", "application/json")

			input := checkout.CheckoutInput{CarSlug: "swift", Days: 2, Method: domain.PaymentMethodCard}
			if tt.result != nil {
				mockService.On("Checkout", c.Request.Context(), input).Return(tt.result, nil)
			} else {
				mockService.On("Checkout", c.Request.Context(), input).Return(nil, tt.err)
			}

			handler.checkout(c)

			assert.Equal(t, tt.status, w.Code)
			mockService.AssertExpectations(t)
		})
	}
}
