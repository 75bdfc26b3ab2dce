package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cabin-reservation/internal/config"
	"github.com/iliyamo/cabin-reservation/internal/database"
	"github.com/iliyamo/cabin-reservation/internal/handler"
	"github.com/iliyamo/cabin-reservation/internal/mailer"
	"github.com/iliyamo/cabin-reservation/internal/queue"
	"github.com/iliyamo/cabin-reservation/internal/repository"
	"github.com/iliyamo/cabin-reservation/internal/router"
	"github.com/iliyamo/cabin-reservation/internal/service"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Redis is optional; a nil client disables caching and rate limiting.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable; cache and rate limiting disabled")
	}

	// Repositories.
	seqRepo := repository.NewSequenceRepo(db)
	reservationRepo := repository.NewReservationRepo(db)
	cabinRepo := repository.NewCabinRepo(db)
	clientRepo := repository.NewClientRepo(db)
	extractRepo := repository.NewExtractRepo(db)
	userRepo := repository.NewUserRepo(db)
	tokenRepo := repository.NewTokenRepo(db)

	// Engine.
	extracts := service.NewExtractService(seqRepo, extractRepo, cfg.BusinessTZ)
	balances := service.NewBalanceService(clientRepo)
	reservations := service.NewReservationService(seqRepo, reservationRepo, clientRepo, balances, extracts)
	availability := service.NewAvailabilityService(reservationRepo, cabinRepo)
	cabins := service.NewCabinService(cabinRepo)
	clients := service.NewClientService(clientRepo, reservations)
	reports := service.NewReportService(reservationRepo, cfg.BusinessTZ)

	// Handlers.
	authH := handler.NewAuthHandler(cfg, userRepo, tokenRepo)
	reservationH := handler.NewReservationHandler(reservations, availability, clients)
	cabinH := handler.NewCabinHandler(cabins)
	clientH := handler.NewClientHandler(clients, balances, reservations)
	extractH := handler.NewExtractHandler(extracts)
	reportH := handler.NewReportHandler(reports)

	// Background consumers for guest notifications.
	m, err := mailer.NewFromEnv()
	if err != nil {
		log.Printf("mailer disabled: %v", err)
	}
	queue.StartConsumers(m)

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterAuth(e, authH, cfg.JWTSecret)
	router.RegisterAPI(e, cfg, rdb, reservationH, cabinH, clientH, extractH, reportH)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
