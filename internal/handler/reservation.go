package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cabin-reservation/internal/model"
	"github.com/iliyamo/cabin-reservation/internal/publisher"
	"github.com/iliyamo/cabin-reservation/internal/queue"
	"github.com/iliyamo/cabin-reservation/internal/service"
	"github.com/iliyamo/cabin-reservation/internal/utils"
)

// ReservationHandler exposes the reservation lifecycle and the
// availability query.
type ReservationHandler struct {
	Reservations *service.ReservationService
	Availability *service.AvailabilityService
	Clients      *service.ClientService
}

func NewReservationHandler(r *service.ReservationService, a *service.AvailabilityService, cl *service.ClientService) *ReservationHandler {
	return &ReservationHandler{Reservations: r, Availability: a, Clients: cl}
}

// ----- DTOs -----

type reservationReq struct {
	ClientID    string   `json:"client_id"`
	PersonQty   int      `json:"person_qty"`
	TotalPrice  float64  `json:"total_price"`
	AmountPaid  float64  `json:"amount_paid"`
	Discount    float64  `json:"discount"`
	Checkin     string   `json:"checkin"`
	Checkout    string   `json:"checkout"`
	Description string   `json:"description"`
	Cabins      []string `json:"cabins"`
}

type statusReq struct {
	Status int `json:"status"`
}

type paymentReq struct {
	Amount float64 `json:"amount"`
}

type totalPriceReq struct {
	TotalPrice float64 `json:"total_price"`
}

func (req reservationReq) toModel() (model.Reservation, error) {
	checkin, err := parseDate(req.Checkin)
	if err != nil {
		return model.Reservation{}, err
	}
	checkout, err := parseDate(req.Checkout)
	if err != nil {
		return model.Reservation{}, err
	}
	return model.Reservation{
		ClientID:    req.ClientID,
		PersonQty:   req.PersonQty,
		TotalPrice:  req.TotalPrice,
		AmountPaid:  req.AmountPaid,
		Discount:    req.Discount,
		Checkin:     checkin,
		Checkout:    checkout,
		Description: req.Description,
		CabinNames:  req.Cabins,
	}, nil
}

// Create handles POST /v1/reservations.
func (h *ReservationHandler) Create(c echo.Context) error {
	var req reservationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	res, err := req.toModel()
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "checkin/checkout must be yyyy-MM-dd or RFC 3339"})
	}

	created, err := h.Reservations.Create(c.Request().Context(), res)
	if err != nil {
		return writeErr(c, err)
	}
	if created.Status == model.StatusConfirmed {
		h.publishConfirmed(c.Request().Context(), created)
	}
	return c.JSON(http.StatusCreated, created)
}

// CreateWithBalance handles POST /v1/reservations/balance. The
// client's entire spendable balance is folded into the paid amount.
func (h *ReservationHandler) CreateWithBalance(c echo.Context) error {
	var req reservationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	res, err := req.toModel()
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "checkin/checkout must be yyyy-MM-dd or RFC 3339"})
	}

	created, err := h.Reservations.CreateWithBalance(c.Request().Context(), res)
	if err != nil {
		return writeErr(c, err)
	}
	if created.Status == model.StatusConfirmed {
		h.publishConfirmed(c.Request().Context(), created)
	}
	return c.JSON(http.StatusCreated, created)
}

// GetAll handles GET /v1/reservations.
func (h *ReservationHandler) GetAll(c echo.Context) error {
	items, err := h.Reservations.GetAll(c.Request().Context())
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"items": items})
}

// GetByID handles GET /v1/reservations/:id.
func (h *ReservationHandler) GetByID(c echo.Context) error {
	res, err := h.Reservations.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

// GetByPeriod handles GET /v1/reservations/period?start=&end=.
func (h *ReservationHandler) GetByPeriod(c echo.Context) error {
	start, err := parseDate(c.QueryParam("start"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "start must be yyyy-MM-dd or RFC 3339"})
	}
	end, err := parseDate(c.QueryParam("end"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "end must be yyyy-MM-dd or RFC 3339"})
	}
	items, err := h.Reservations.GetByPeriod(c.Request().Context(), start, end)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"items": items})
}

// CabinAvailability handles GET /v1/availability?start=&end=.
func (h *ReservationHandler) CabinAvailability(c echo.Context) error {
	start, err := parseDate(c.QueryParam("start"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "start must be yyyy-MM-dd or RFC 3339"})
	}
	end, err := parseDate(c.QueryParam("end"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "end must be yyyy-MM-dd or RFC 3339"})
	}
	if !start.Before(end) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "start must precede end"})
	}
	items, err := h.Availability.Availability(c.Request().Context(), start, end)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"items": items})
}

// SetStatus handles PATCH /v1/reservations/:id/status.
func (h *ReservationHandler) SetStatus(c echo.Context) error {
	var req statusReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := h.Reservations.SetStatus(c.Request().Context(), c.Param("id"), req.Status); err != nil {
		return writeErr(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// AddPayment handles POST /v1/reservations/:id/payments.
func (h *ReservationHandler) AddPayment(c echo.Context) error {
	var req paymentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	res, err := h.Reservations.AddPayment(c.Request().Context(), c.Param("id"), req.Amount)
	if err != nil {
		return writeErr(c, err)
	}
	if res.Status == model.StatusConfirmed {
		h.publishConfirmed(c.Request().Context(), res)
	}
	return c.JSON(http.StatusOK, res)
}

// EditTotalPrice handles PATCH /v1/reservations/:id/total-price.
func (h *ReservationHandler) EditTotalPrice(c echo.Context) error {
	var req totalPriceReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	res, err := h.Reservations.EditTotalPrice(c.Request().Context(), c.Param("id"), req.TotalPrice)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

// CancelAndRefund handles POST /v1/reservations/:id/cancel.
func (h *ReservationHandler) CancelAndRefund(c echo.Context) error {
	if err := h.Reservations.CancelAndRefund(c.Request().Context(), c.Param("id")); err != nil {
		return writeErr(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Delete handles DELETE /v1/reservations/:id.
func (h *ReservationHandler) Delete(c echo.Context) error {
	if err := h.Reservations.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return writeErr(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// DeleteAll handles DELETE /v1/reservations.
func (h *ReservationHandler) DeleteAll(c echo.Context) error {
	if err := h.Reservations.DeleteAll(c.Request().Context()); err != nil {
		return writeErr(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Voucher handles GET /v1/reservations/:id/voucher and streams a QR
// image encoding the reservation summary.
func (h *ReservationHandler) Voucher(c echo.Context) error {
	res, err := h.Reservations.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeErr(c, err)
	}
	payload := res.ID + "|" + res.ClientName + "|" +
		res.Checkin.Format("2006-01-02") + "|" + res.Checkout.Format("2006-01-02")
	img, err := utils.VoucherQR(payload)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "voucher render failed"})
	}
	return c.Blob(http.StatusOK, "image/jpeg", img)
}

// publishConfirmed emits a reservation.confirmed event. Publishing is
// best effort; failures are logged by the publisher and ignored here.
func (h *ReservationHandler) publishConfirmed(ctx context.Context, res model.Reservation) {
	email := ""
	if client, err := h.Clients.Get(ctx, res.ClientID); err == nil {
		email = client.Email
	}
	event := queue.ReservationConfirmedEvent{
		EventID:       uuid.NewString(),
		ReservationID: res.ID,
		ClientID:      res.ClientID,
		ClientName:    res.ClientName,
		ClientEmail:   email,
		Cabins:        res.CabinNames,
		Checkin:       res.Checkin.Format("2006-01-02"),
		Checkout:      res.Checkout.Format("2006-01-02"),
		TotalPrice:    res.TotalPrice,
		AmountPaid:    res.AmountPaid,
		ConfirmedAt:   time.Now().UTC().Format(time.RFC3339),
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = publisher.PublishReservationConfirmed(ctx, event)
	}()
}
