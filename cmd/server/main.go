package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"rental-backend/internal/config"
	"rental-backend/internal/database"
	"rental-backend/internal/db"
	"rental-backend/internal/handlers"
	"rental-backend/internal/health"
	h "rental-backend/internal/http"
	"rental-backend/internal/logger"
	"rental-backend/internal/middleware"
	"rental-backend/internal/repositories"
	"rental-backend/internal/services"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.Environment)

	pool := db.Connect(cfg, log)
	defer pool.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	migrator := database.NewMigrator(pool, log)
	if err := migrator.RunMigrations(ctx); err != nil {
		log.Fatal().Err(err).Msg("migrations failed")
	}

	// Repositories
	leaseRepo := repositories.NewLeaseRepository(pool)
	propertyRepo := repositories.NewPropertyRepository(pool)
	documentRepo := repositories.NewDocumentRepository(pool)
	chargeShareRepo := repositories.NewChargeShareRepository(pool)
	waterReadingRepo := repositories.NewWaterReadingRepository(pool)

	// Services
	shareTolerance := decimal.NewFromFloat(cfg.Settlement.ShareTolerance)
	rentService := services.NewRentService(leaseRepo, log)
	settlementService := services.NewSettlementService(
		propertyRepo, documentRepo, chargeShareRepo, waterReadingRepo, shareTolerance, log)
	chargeShareService := services.NewChargeShareService(chargeShareRepo, propertyRepo, shareTolerance, log)
	waterReadingService := services.NewWaterReadingService(waterReadingRepo, propertyRepo, log)

	// Handlers
	rentHandler := handlers.NewRentHandler(rentService)
	settlementHandler := handlers.NewSettlementHandler(settlementService)
	chargeShareHandler := handlers.NewChargeShareHandler(chargeShareService)
	waterReadingHandler := handlers.NewWaterReadingHandler(waterReadingService)
	healthHandler := handlers.NewHealthHandler(health.NewChecker(pool, log))

	router := h.NewRouter(
		rentHandler,
		settlementHandler,
		chargeShareHandler,
		waterReadingHandler,
		healthHandler,
	)

	var handler http.Handler = router
	handler = middleware.RequestLogging(log)(handler)
	handler = middleware.NewCORS(cfg)(handler)
	handler = middleware.PanicRecovery(log)(handler)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	log.Info().Str("addr", addr).Str("environment", cfg.Environment).Msg("server listening")
	if err := server.ListenAndServe(); err != nil {
		log.Fatal().Err(err).Msg("server failed")
	}
}
