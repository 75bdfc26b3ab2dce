package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cabin-reservation/internal/service"
)

// ReportHandler exposes the aggregate reporting queries.
type ReportHandler struct {
	Reports *service.ReportService
}

func NewReportHandler(r *service.ReportService) *ReportHandler {
	return &ReportHandler{Reports: r}
}

func yearMonthParams(c echo.Context) (int, time.Month, bool) {
	year, err := strconv.Atoi(c.QueryParam("year"))
	if err != nil || year < 1 {
		return 0, 0, false
	}
	month, err := strconv.Atoi(c.QueryParam("month"))
	if err != nil || month < 1 || month > 12 {
		return 0, 0, false
	}
	return year, time.Month(month), true
}

// ReservedDates handles GET /v1/reports/reserved-dates?year=&month=.
func (h *ReportHandler) ReservedDates(c echo.Context) error {
	year, month, ok := yearMonthParams(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "year and month (1-12) required"})
	}
	items, err := h.Reports.ReservedDatesByMonth(c.Request().Context(), year, month)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"items": items})
}

// ReservationsOnDay handles GET /v1/reports/reserved-dates/day?year=&month=&day=.
func (h *ReportHandler) ReservationsOnDay(c echo.Context) error {
	year, month, ok := yearMonthParams(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "year and month (1-12) required"})
	}
	day, err := strconv.Atoi(c.QueryParam("day"))
	if err != nil || day < 1 || day > 31 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "day (1-31) required"})
	}
	items, err := h.Reports.ReservationsOnDay(c.Request().Context(), year, month, day)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"items": items})
}

// TotalByMonth handles GET /v1/reports/totals/month?year=&month=.
func (h *ReportHandler) TotalByMonth(c echo.Context) error {
	year, month, ok := yearMonthParams(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "year and month (1-12) required"})
	}
	total, err := h.Reports.TotalByMonth(c.Request().Context(), year, month)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"total": total})
}

// TotalForCurrentYear handles GET /v1/reports/totals/year.
func (h *ReportHandler) TotalForCurrentYear(c echo.Context) error {
	total, err := h.Reports.TotalForCurrentYear(c.Request().Context())
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"total": total})
}

// Counts handles GET /v1/reports/counts.
func (h *ReportHandler) Counts(c echo.Context) error {
	counts, err := h.Reports.Counts(c.Request().Context())
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, counts)
}
