// Package router registers the HTTP routes and their middleware.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/cabin-reservation/internal/config"
	"github.com/iliyamo/cabin-reservation/internal/handler"
	"github.com/iliyamo/cabin-reservation/internal/middleware"
)

// RegisterRoutes registers routes that do not require authentication.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the auth endpoints. Unauthenticated
// operations live under /v1/auth, the protected /v1/me sits behind
// the JWT middleware.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	g.POST("/logout", a.Logout)

	auth := e.Group("/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("ADMIN", "STAFF"),
	)
	auth.GET("/me", a.Me)
}

// RegisterAPI registers every business endpoint under /v1. All routes
// require a valid token; destructive operations additionally require
// the ADMIN role. The Redis-backed token bucket throttles the whole
// group and the response cache fronts the read-heavy report routes.
func RegisterAPI(e *echo.Echo, cfg config.Config, rdb *redis.Client,
	res *handler.ReservationHandler, cab *handler.CabinHandler,
	cl *handler.ClientHandler, ext *handler.ExtractHandler, rep *handler.ReportHandler) {

	g := e.Group(
		"/v1",
		middleware.JWTAuth(cfg.JWTSecret),
		middleware.RequireRole("ADMIN", "STAFF"),
		middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb),
	)
	admin := middleware.RequireRole("ADMIN")
	cached := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	// ---- Reservations ----
	g.POST("/reservations", res.Create)
	g.POST("/reservations/balance", res.CreateWithBalance)
	g.GET("/reservations", res.GetAll)
	g.GET("/reservations/period", res.GetByPeriod)
	g.GET("/reservations/:id", res.GetByID)
	g.GET("/reservations/:id/voucher", res.Voucher)
	g.PATCH("/reservations/:id/status", res.SetStatus)
	g.PATCH("/reservations/:id/total-price", res.EditTotalPrice)
	g.POST("/reservations/:id/payments", res.AddPayment)
	g.POST("/reservations/:id/cancel", res.CancelAndRefund)
	g.DELETE("/reservations/:id", res.Delete, admin)
	g.DELETE("/reservations", res.DeleteAll, admin)

	// ---- Availability ----
	g.GET("/availability", res.CabinAvailability)

	// ---- Cabins ----
	g.POST("/cabins", cab.Create, admin)
	g.GET("/cabins", cab.List)
	g.GET("/cabins/:name", cab.Get)
	g.PATCH("/cabins/:name/price", cab.UpdatePrice, admin)
	g.DELETE("/cabins/:name", cab.Delete, admin)

	// ---- Clients ----
	g.POST("/clients", cl.Register)
	g.GET("/clients", cl.List)
	g.GET("/clients/recent", cl.ListRecent)
	g.GET("/clients/:id", cl.Get)
	g.GET("/clients/:id/reservations", cl.Reservations)
	g.GET("/clients/:id/extracts", ext.ByClient)
	g.POST("/clients/:id/balance/credit", cl.Credit)
	g.POST("/clients/:id/balance/debit", cl.Debit)
	g.PATCH("/clients/:id/name", cl.UpdateName)
	g.PATCH("/clients/:id/email", cl.UpdateEmail)
	g.PATCH("/clients/:id/phone", cl.UpdatePhone)
	g.POST("/clients/:id/exclude", cl.Exclude, admin)
	g.DELETE("/clients/:id", cl.Delete, admin)

	// ---- Extracts ----
	g.POST("/extracts", ext.Create)
	g.GET("/extracts", ext.List)
	g.GET("/extracts/recent", ext.Last50)
	g.GET("/extracts/search", ext.Search)
	g.GET("/extracts/:id", ext.Get)
	g.DELETE("/extracts/:id", ext.Delete, admin)

	// ---- Reports ----
	g.GET("/reports/reserved-dates", rep.ReservedDates, cached)
	g.GET("/reports/reserved-dates/day", rep.ReservationsOnDay, cached)
	g.GET("/reports/totals/month", rep.TotalByMonth, cached)
	g.GET("/reports/totals/year", rep.TotalForCurrentYear, cached)
	g.GET("/reports/counts", rep.Counts, cached)
}
