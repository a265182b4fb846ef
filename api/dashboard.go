package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Domenick1991/carrental/internal/service/dashboard"
)

type DashboardHandler struct {
	service dashboard.DashboardUseCase
}

type counterRequest struct {
	Value int `json:"value"`
}

func NewDashboardHandler(service dashboard.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{service: service}
}

func (h *DashboardHandler) Register(router *gin.RouterGroup) {
	router.GET("", h.stats)
	router.PUT("/:field", h.setCounter)
}

func (h *DashboardHandler) stats(c *gin.Context) {
	stats, err := h.service.Stats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *DashboardHandler) setCounter(c *gin.Context) {
	var req counterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	stats, err := h.service.SetCounter(c.Request.Context(), c.Param("field"), req.Value)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
