package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Domenick1991/carrental/internal/domain"
	"github.com/Domenick1991/carrental/internal/service/checkout"
)

type CheckoutHandler struct {
	service checkout.CheckoutUseCase
}

type checkoutRequest struct {
	User   string               `json:"user"`
	Car    string               `json:"car" binding:"required"`
	Days   int                  `json:"days" binding:"required"`
	Method domain.PaymentMethod `json:"method"`
}

func NewCheckoutHandler(service checkout.CheckoutUseCase) *CheckoutHandler {
	return &CheckoutHandler{service: service}
}

func (h *CheckoutHandler) Register(router *gin.RouterGroup) {
	router.POST("", h.checkout)
}

func (h *CheckoutHandler) checkout(c *gin.Context) {
	var req checkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	result, err := h.service.Checkout(c.Request.Context(), checkout.CheckoutInput{
		User:    req.User,
		CarSlug: req.Car,
		Days:    req.Days,
		Method:  req.Method,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}
