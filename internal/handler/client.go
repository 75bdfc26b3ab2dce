package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cabin-reservation/internal/model"
	"github.com/iliyamo/cabin-reservation/internal/publisher"
	"github.com/iliyamo/cabin-reservation/internal/queue"
	"github.com/iliyamo/cabin-reservation/internal/service"
)

// ClientHandler exposes the client registry and the balance ledger.
type ClientHandler struct {
	Clients        *service.ClientService
	Balances       *service.BalanceService
	ReservationSvc *service.ReservationService
}

func NewClientHandler(cl *service.ClientService, b *service.BalanceService, r *service.ReservationService) *ClientHandler {
	return &ClientHandler{Clients: cl, Balances: b, ReservationSvc: r}
}

type clientReq struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Email   string  `json:"email"`
	Phone   string  `json:"phone"`
	Balance float64 `json:"balance"`
	Address model.Address `json:"address"`
}

type amountReq struct {
	Amount float64 `json:"amount"`
}

type nameReq struct {
	Name string `json:"name"`
}

type emailReq struct {
	Email string `json:"email"`
}

type phoneReq struct {
	Phone string `json:"phone"`
}

// Register handles POST /v1/clients.
func (h *ClientHandler) Register(c echo.Context) error {
	var req clientReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	client := model.Client{
		ID:      req.ID,
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Balance: req.Balance,
		Address: req.Address,
	}
	created, err := h.Clients.Register(c.Request().Context(), client)
	if err != nil {
		return writeErr(c, err)
	}

	event := queue.ClientRegisteredEvent{
		EventID:      uuid.NewString(),
		ClientID:     created.ID,
		ClientName:   created.Name,
		ClientEmail:  created.Email,
		RegisteredAt: created.DateCreated.Format(time.RFC3339),
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = publisher.PublishClientRegistered(ctx, event)
	}()

	return c.JSON(http.StatusCreated, created)
}

// Get handles GET /v1/clients/:id.
func (h *ClientHandler) Get(c echo.Context) error {
	client, err := h.Clients.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, client)
}

// List handles GET /v1/clients.
func (h *ClientHandler) List(c echo.Context) error {
	items, err := h.Clients.List(c.Request().Context())
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"items": items})
}

// ListRecent handles GET /v1/clients/recent?days=.
func (h *ClientHandler) ListRecent(c echo.Context) error {
	days, err := strconv.Atoi(c.QueryParam("days"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "days required"})
	}
	items, err := h.Clients.ListCreatedWithinDays(c.Request().Context(), days)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"items": items})
}

// Reservations handles GET /v1/clients/:id/reservations.
func (h *ClientHandler) Reservations(c echo.Context) error {
	items, err := h.ReservationSvc.GetByClient(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"items": items})
}

// Credit handles POST /v1/clients/:id/balance/credit.
func (h *ClientHandler) Credit(c echo.Context) error {
	var req amountReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := h.Balances.Credit(c.Request().Context(), c.Param("id"), req.Amount); err != nil {
		return writeErr(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Debit handles POST /v1/clients/:id/balance/debit.
func (h *ClientHandler) Debit(c echo.Context) error {
	var req amountReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := h.Balances.Debit(c.Request().Context(), c.Param("id"), req.Amount); err != nil {
		return writeErr(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// UpdateName handles PATCH /v1/clients/:id/name.
func (h *ClientHandler) UpdateName(c echo.Context) error {
	var req nameReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := h.Clients.UpdateName(c.Request().Context(), c.Param("id"), req.Name); err != nil {
		return writeErr(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// UpdateEmail handles PATCH /v1/clients/:id/email.
func (h *ClientHandler) UpdateEmail(c echo.Context) error {
	var req emailReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := h.Clients.UpdateEmail(c.Request().Context(), c.Param("id"), req.Email); err != nil {
		return writeErr(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// UpdatePhone handles PATCH /v1/clients/:id/phone.
func (h *ClientHandler) UpdatePhone(c echo.Context) error {
	var req phoneReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := h.Clients.UpdatePhone(c.Request().Context(), c.Param("id"), req.Phone); err != nil {
		return writeErr(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Exclude handles POST /v1/clients/:id/exclude.
func (h *ClientHandler) Exclude(c echo.Context) error {
	if err := h.Clients.Exclude(c.Request().Context(), c.Param("id")); err != nil {
		return writeErr(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Delete handles DELETE /v1/clients/:id.
func (h *ClientHandler) Delete(c echo.Context) error {
	if err := h.Clients.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return writeErr(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
