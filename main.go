package main

import (
	"context"
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"medihealth-backend/internal/api"
	"medihealth-backend/internal/config"
	"medihealth-backend/internal/database"
	"medihealth-backend/internal/payments"
	"medihealth-backend/internal/repository"
)

func main() {
	cfg := config.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	db, err := database.Connect(ctx, cfg.MongoURI, cfg.DBName)
	if err != nil {
		logger.Fatal("mongodb connection failed", zap.Error(err))
	}
	logger.Info("connected to MongoDB", zap.String("database", cfg.DBName))

	handler := api.New(api.Repositories{
		Users:          repository.NewUserRepository(db),
		Medicines:      repository.NewMedicineRepository(db),
		Carts:          repository.NewCartRepository(db),
		Payments:       repository.NewPaymentRepository(db),
		Advertisements: repository.NewAdvertisementRepository(db),
	}, payments.NewStripeGateway(cfg.StripeSecretKey), cfg.AccessSecret, logger)

	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))
	handler.Register(r)

	logger.Info("mediHealth listening", zap.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
