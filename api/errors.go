package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Domenick1991/carrental/internal/account"
	"github.com/Domenick1991/carrental/internal/repository"
	"github.com/Domenick1991/carrental/internal/service/auth"
	"github.com/Domenick1991/carrental/internal/service/catalog"
	"github.com/Domenick1991/carrental/internal/service/checkout"
	"github.com/Domenick1991/carrental/internal/service/dashboard"
	"github.com/Domenick1991/carrental/internal/service/payments"
)

// statusFor maps service errors onto HTTP codes. Order matters: wrapped
// errors can match more than one sentinel.
func statusFor(err error) int {
	switch {
	case errors.Is(err, repository.ErrNotFound), errors.Is(err, catalog.ErrCarNotFound):
		return http.StatusNotFound
	case errors.Is(err, repository.ErrInvalidTransition):
		return http.StatusConflict
	case errors.Is(err, checkout.ErrPaymentFailed):
		return http.StatusPaymentRequired
	case errors.Is(err, auth.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, catalog.ErrInvalidDuration),
		errors.Is(err, catalog.ErrInvalidCar),
		errors.Is(err, checkout.ErrInvalidMethod),
		errors.Is(err, dashboard.ErrUnknownField),
		errors.Is(err, dashboard.ErrInvalidValue),
		errors.Is(err, payments.ErrInvalidPayment),
		errors.Is(err, payments.ErrUnknownSortKey),
		errors.Is(err, account.ErrRejected):
		return http.StatusBadRequest
	case errors.Is(err, repository.ErrPersistenceUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, account.ErrUnavailable):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

func respondError(c *gin.Context, err error) {
	c.JSON(statusFor(err), gin.H{"error": err.Error()})
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}
