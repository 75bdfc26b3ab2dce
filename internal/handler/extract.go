package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cabin-reservation/internal/service"
)

// ExtractHandler exposes the financial audit trail.
type ExtractHandler struct {
	Extracts *service.ExtractService
}

func NewExtractHandler(s *service.ExtractService) *ExtractHandler {
	return &ExtractHandler{Extracts: s}
}

type extractReq struct {
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	ClientID    string  `json:"client_id"`
}

// Create handles POST /v1/extracts.
func (h *ExtractHandler) Create(c echo.Context) error {
	var req extractReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	entry, err := h.Extracts.Create(c.Request().Context(), req.Description, req.Amount, req.ClientID)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusCreated, entry)
}

// List handles GET /v1/extracts.
func (h *ExtractHandler) List(c echo.Context) error {
	items, err := h.Extracts.List(c.Request().Context())
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"items": items})
}

// Last50 handles GET /v1/extracts/recent.
func (h *ExtractHandler) Last50(c echo.Context) error {
	items, err := h.Extracts.Last50(c.Request().Context())
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"items": items})
}

// Get handles GET /v1/extracts/:id.
func (h *ExtractHandler) Get(c echo.Context) error {
	entry, err := h.Extracts.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, entry)
}

// ByClient handles GET /v1/clients/:id/extracts. The optional
// ?recent=true flag limits the answer to the last 50 entries.
func (h *ExtractHandler) ByClient(c echo.Context) error {
	clientID := c.Param("id")
	var err error
	var items any
	if c.QueryParam("recent") == "true" {
		items, err = h.Extracts.Last50ByClient(c.Request().Context(), clientID)
	} else {
		items, err = h.Extracts.ByClient(c.Request().Context(), clientID)
	}
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"items": items})
}

// Search handles GET /v1/extracts/search?q=.
func (h *ExtractHandler) Search(c echo.Context) error {
	items, err := h.Extracts.Search(c.Request().Context(), c.QueryParam("q"))
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"items": items})
}

// Delete handles DELETE /v1/extracts/:id.
func (h *ExtractHandler) Delete(c echo.Context) error {
	if err := h.Extracts.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return writeErr(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
