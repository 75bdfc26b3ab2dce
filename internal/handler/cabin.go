package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cabin-reservation/internal/model"
	"github.com/iliyamo/cabin-reservation/internal/service"
)

// CabinHandler exposes the cabin catalog.
type CabinHandler struct {
	Cabins *service.CabinService
}

func NewCabinHandler(s *service.CabinService) *CabinHandler {
	return &CabinHandler{Cabins: s}
}

type cabinReq struct {
	Name            string  `json:"name"`
	PersonQty       int     `json:"person_qty"`
	CoupleBedNumber int     `json:"couple_bed_number"`
	SingleBedNumber int     `json:"single_bed_number"`
	CurrentPrice    float64 `json:"current_price"`
	Description     string  `json:"description"`
}

type priceReq struct {
	Price float64 `json:"price"`
}

// Create handles POST /v1/cabins.
func (h *CabinHandler) Create(c echo.Context) error {
	var req cabinReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	cabin := model.Cabin{
		Name:            req.Name,
		PersonQty:       req.PersonQty,
		CoupleBedNumber: req.CoupleBedNumber,
		SingleBedNumber: req.SingleBedNumber,
		CurrentPrice:    req.CurrentPrice,
		Description:     req.Description,
	}
	if err := h.Cabins.Create(c.Request().Context(), cabin); err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusCreated, cabin)
}

// List handles GET /v1/cabins.
func (h *CabinHandler) List(c echo.Context) error {
	items, err := h.Cabins.List(c.Request().Context())
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"items": items})
}

// Get handles GET /v1/cabins/:name.
func (h *CabinHandler) Get(c echo.Context) error {
	cabin, err := h.Cabins.Get(c.Request().Context(), c.Param("name"))
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, cabin)
}

// UpdatePrice handles PATCH /v1/cabins/:name/price.
func (h *CabinHandler) UpdatePrice(c echo.Context) error {
	var req priceReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := h.Cabins.UpdatePrice(c.Request().Context(), c.Param("name"), req.Price); err != nil {
		return writeErr(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Delete handles DELETE /v1/cabins/:name.
func (h *CabinHandler) Delete(c echo.Context) error {
	if err := h.Cabins.Delete(c.Request().Context(), c.Param("name")); err != nil {
		return writeErr(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
