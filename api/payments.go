package api

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Domenick1991/carrental/internal/service/payments"
)

type PaymentHandler struct {
	service payments.PaymentUseCase
}

func NewPaymentHandler(service payments.PaymentUseCase) *PaymentHandler {
	return &PaymentHandler{service: service}
}

func (h *PaymentHandler) Register(router *gin.RouterGroup) {
	router.GET("", h.list)
	router.POST("", h.add)
	router.GET("/export", h.export)
}

// filterFrom reads q, status, sort and dir; the default order is newest first.
func filterFrom(c *gin.Context) payments.Filter {
	return payments.Filter{
		Query:   c.Query("q"),
		Status:  c.DefaultQuery("status", "all"),
		SortKey: c.DefaultQuery("sort", "date"),
		Desc:    c.DefaultQuery("dir", "desc") == "desc",
	}
}

func (h *PaymentHandler) list(c *gin.Context) {
	rows, err := h.service.List(c.Request.Context(), filterFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (h *PaymentHandler) add(c *gin.Context) {
	var req payments.AddPaymentInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	payment, err := h.service.Add(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, payment)
}

func (h *PaymentHandler) export(c *gin.Context) {
	var buf bytes.Buffer
	if err := h.service.ExportCSV(c.Request.Context(), &buf, filterFrom(c)); err != nil {
		respondError(c, err)
		return
	}
	name := fmt.Sprintf("payments_%s.csv", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}
