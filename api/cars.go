package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Domenick1991/carrental/internal/domain"
	"github.com/Domenick1991/carrental/internal/service/catalog"
)

type CarHandler struct {
	service catalog.CatalogUseCase
}

type carRequest struct {
	Name     string          `json:"name"`
	Type     string          `json:"type"`
	Category domain.Category `json:"category"`
	Price    float64         `json:"price"`
	Mileage  string          `json:"mileage"`
	Features []string        `json:"features"`
	Image    string          `json:"image"`
}

func (r carRequest) car() domain.Car {
	return domain.Car{
		Name:      r.Name,
		Type:      r.Type,
		Category:  r.Category,
		DailyRate: r.Price,
		Mileage:   r.Mileage,
		Features:  r.Features,
		Image:     r.Image,
	}
}

func NewCarHandler(service catalog.CatalogUseCase) *CarHandler {
	return &CarHandler{service: service}
}

// Register mounts the public catalog.
func (h *CarHandler) Register(router *gin.RouterGroup) {
	router.GET("", h.list)
	router.GET("/categories", h.categories)
	router.GET("/:slug", h.get)
	router.GET("/:slug/quote", h.quote)
}

// RegisterAdmin mounts management of admin-added cars.
func (h *CarHandler) RegisterAdmin(router *gin.RouterGroup) {
	router.GET("", h.listManaged)
	router.POST("", h.add)
	router.PUT("/:id", h.update)
	router.DELETE("/:id", h.remove)
}

func (h *CarHandler) categories(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.ListCategories(c.Request.Context()))
}

func (h *CarHandler) list(c *gin.Context) {
	cars, err := h.service.ListCars(c.Request.Context(), domain.Category(c.Query("category")))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cars)
}

func (h *CarHandler) get(c *gin.Context) {
	car, err := h.service.GetCar(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, car)
}

func (h *CarHandler) quote(c *gin.Context) {
	days, err := strconv.Atoi(c.DefaultQuery("days", "1"))
	if err != nil {
		badRequest(c, errors.New("invalid days"))
		return
	}
	quote, err := h.service.Quote(c.Request.Context(), c.Param("slug"), days)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, quote)
}

func (h *CarHandler) listManaged(c *gin.Context) {
	cars, err := h.service.ListManagedCars(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cars)
}

func (h *CarHandler) add(c *gin.Context) {
	var req carRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	car, err := h.service.AddCar(c.Request.Context(), req.car())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, car)
}

func (h *CarHandler) update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequest(c, errors.New("invalid id"))
		return
	}
	var req carRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	car := req.car()
	car.ID = id
	updated, err := h.service.UpdateCar(c.Request.Context(), car)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *CarHandler) remove(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequest(c, errors.New("invalid id"))
		return
	}
	if err := h.service.DeleteCar(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
