package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Domenick1991/carrental/internal/domain"
	"github.com/Domenick1991/carrental/internal/service/booking"
)

type BookingHandler struct {
	service booking.BookingUseCase
}

type createBookingRequest struct {
	User       string  `json:"user" binding:"required"`
	Car        string  `json:"car" binding:"required"`
	Date       string  `json:"date" binding:"required"`
	TotalPrice float64 `json:"totalPrice" binding:"gte=0"`
}

type bookingsResponse struct {
	Bookings       []domain.Booking `json:"bookings"`
	ConfirmedCount int              `json:"confirmedCount"`
}

func NewBookingHandler(service booking.BookingUseCase) *BookingHandler {
	return &BookingHandler{service: service}
}

func (h *BookingHandler) Register(router *gin.RouterGroup) {
	router.GET("", h.list)
	router.POST("", h.create)
	router.PUT("/:id/confirm", h.confirm)
	router.PUT("/:id/cancel", h.cancel)
}

func (h *BookingHandler) list(c *gin.Context) {
	bookings, err := h.service.ListBookings(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookingsResponse{
		Bookings:       bookings,
		ConfirmedCount: domain.CountByStatus(bookings, domain.BookingStatusConfirmed),
	})
}

func (h *BookingHandler) create(c *gin.Context) {
	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	created, err := h.service.CreateBooking(c.Request.Context(), booking.CreateBookingInput{
		User:       req.User,
		Car:        req.Car,
		TotalPrice: req.TotalPrice,
		Date:       req.Date,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *BookingHandler) confirm(c *gin.Context) {
	h.transition(c, h.service.ConfirmBooking)
}

func (h *BookingHandler) cancel(c *gin.Context) {
	h.transition(c, h.service.CancelBooking)
}

func (h *BookingHandler) transition(c *gin.Context, apply func(ctx context.Context, id domain.BookingID) ([]domain.Booking, error)) {
	id, err := domain.ParseBookingID(c.Param("id"))
	if err != nil {
		badRequest(c, errors.New("invalid booking id"))
		return
	}

	bookings, err := apply(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookingsResponse{
		Bookings:       bookings,
		ConfirmedCount: domain.CountByStatus(bookings, domain.BookingStatusConfirmed),
	})
}
