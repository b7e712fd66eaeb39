// File: leasely/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/panjf2000/ants/v2"

	"leasely/config"
	"leasely/database"
	"leasely/database/repository"
	"leasely/handlers"
	"leasely/middleware"
	"leasely/routes"
	"leasely/services/search"
	"leasely/utils"
	"leasely/vocabulary"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()

	// The gazetteer is loaded once and read-only from then on.
	vocab := vocabulary.WithExtraSynonyms(config.ExtraCategorySynonyms())

	pool, err := ants.NewPool(config.AppConfig.WorkerPoolSize)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to create worker pool: %v", err)
	}
	defer pool.Release()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	catalogRepo := repository.NewMongoCatalogRepo()
	bookingRepo := repository.NewMongoBookingRepo()

	// services.
	searchSvc := &search.DefaultSearchService{
		Parser: search.NewParser(vocab),
		Resolver: &search.CandidateResolver{
			Catalog: catalogRepo,
			Pool:    pool,
			Logger:  logger,
		},
		Availability: &search.AvailabilityEngine{Bookings: bookingRepo},
		Scorer:       &search.Scorer{Vocab: vocab},
		Suggestions: &search.SuggestionService{
			Catalog:        catalogRepo,
			MaxDistancePct: config.AppConfig.FuzzyMaxDistancePct,
			Logger:         logger,
		},
		Analytics: search.NewMongoAnalyticsRecorder(
			database.MongoClient.Database("leasely").Collection("search_events"), logger),
		Pool:              pool,
		Logger:            logger,
		AutocompleteLimit: config.AppConfig.AutocompleteLimit,
		SuggestionLimit:   config.AppConfig.SuggestionLimit,
	}

	searchHandler := handlers.NewSearchHandler(
		searchSvc,
		utils.GetCacheClient(),
		logger,
		time.Duration(config.AppConfig.SearchCacheTTLSeconds)*time.Second,
		time.Duration(config.AppConfig.SearchTimeoutMS)*time.Millisecond,
	)

	// Register routes.
	routes.RegisterRoutes(router, searchHandler)
	utils.StartHealthMonitor(utils.GetCacheClient(), database.MongoClient)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
