package main

import (
	"context"
	"os"
	"strconv"

	"github.com/Ricky0403/SoftwareProject/internal/auction/application"
	auctionhttp "github.com/Ricky0403/SoftwareProject/internal/auction/infra/http"
	auctionpg "github.com/Ricky0403/SoftwareProject/internal/auction/infra/repository/postgres"
	auctionws "github.com/Ricky0403/SoftwareProject/internal/auction/infra/websocket"
	"github.com/Ricky0403/SoftwareProject/internal/shared/cache"
	"github.com/Ricky0403/SoftwareProject/internal/shared/db"
	"github.com/Ricky0403/SoftwareProject/internal/shared/db/migrations"
	"github.com/Ricky0403/SoftwareProject/internal/shared/httpserver"
	"github.com/Ricky0403/SoftwareProject/internal/shared/logger"
	sharedws "github.com/Ricky0403/SoftwareProject/internal/shared/websocket"
	userapp "github.com/Ricky0403/SoftwareProject/internal/user/application"
	userhttp "github.com/Ricky0403/SoftwareProject/internal/user/infra/http"
	userpg "github.com/Ricky0403/SoftwareProject/internal/user/infra/repository/postgres"
	"go.uber.org/zap"
)

func main() {
	log := logger.GetLogger()
	defer log.Sync()

	log.Info("Starting bidding server...")

	log.Info("Running database migrations...")
	if err := migrations.RunMigrations(); err != nil {
		log.Fatal("Database migration failed", zap.Error(err))
	}
	log.Info("Database migrations completed successfully.")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := db.GetPostgresDBPool(ctx)
	if err != nil {
		log.Fatal("Database connection failed", zap.Error(err))
	}
	defer pool.Close()

	// Redis is optional: without REDIS_ADDR the listing endpoints read
	// straight from Postgres.
	var listingCache *application.ListingCache
	var invalidator application.AuctionCacheInvalidator
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		redisDB, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
		listingCache = application.NewListingCache(
			cache.New(addr, os.Getenv("REDIS_PASSWORD"), redisDB),
		)
		invalidator = listingCache
		log.Info("Listing cache enabled", zap.String("redisAddr", addr))
	}

	auctionRepo := auctionpg.NewAuctionRepository(pool)
	bidRepo := auctionpg.NewBidRepository(pool)
	txRunner := auctionpg.NewTxRunner(pool)
	userRepo := userpg.NewUserRepository(pool)

	auctionService := application.NewAuctionService(
		application.NewCreateAuctionUseCase(auctionRepo, invalidator),
		application.NewPlaceBidUseCase(auctionRepo, bidRepo, txRunner, invalidator),
		application.NewGetAuctionStateUseCase(auctionRepo, txRunner),
		application.NewListAuctionsUseCase(auctionRepo, listingCache),
		application.NewCancelAuctionUseCase(auctionRepo, txRunner, invalidator),
		application.NewUserViewsUseCase(auctionRepo, bidRepo),
	)
	userService := userapp.NewUserService(userRepo)

	server := httpserver.NewServer()

	hub := sharedws.NewHub()
	go hub.Run(ctx)

	wsHandler := auctionws.NewAuctionWSHandler(auctionService, hub)
	go wsHandler.ListenForMessages(ctx)
	wsHandler.RegisterRoutes(server.App(), server)

	userhttp.NewUserHandler(userService, server).RegisterRoutes(server.App())
	auctionhttp.NewAuctionHandler(auctionService, server, wsHandler).RegisterRoutes(server.App())

	addr := ":9000"
	if port := os.Getenv("PORT"); port != "" {
		addr = ":" + port
	}
	if err := server.Start(addr); err != nil {
		log.Fatal("HTTP server failed", zap.Error(err))
	}
}
