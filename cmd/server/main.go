package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/RAGUL-MADHAVAN/AbstractSummarizer/internal/config"
	"github.com/RAGUL-MADHAVAN/AbstractSummarizer/internal/db"
	"github.com/RAGUL-MADHAVAN/AbstractSummarizer/internal/handler"
	transport "github.com/RAGUL-MADHAVAN/AbstractSummarizer/internal/http"
	"github.com/RAGUL-MADHAVAN/AbstractSummarizer/internal/logger"
	"github.com/RAGUL-MADHAVAN/AbstractSummarizer/internal/repository"
	"github.com/RAGUL-MADHAVAN/AbstractSummarizer/internal/service"
	"github.com/RAGUL-MADHAVAN/AbstractSummarizer/internal/service/summarizer"
	"github.com/RAGUL-MADHAVAN/AbstractSummarizer/internal/snowflake"
)

// @title Abstract Summarizer API
// @version 1.0.0
// @description Text and batch abstract summarization service
func main() {
	cfg := config.Load()
	logger.Init(logger.ParseLevel(cfg.LogLevel))

	if err := snowflake.Init(cfg.SnowflakeNode); err != nil {
		log.Fatalf("init snowflake node: %v", err)
	}

	dbConn, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer dbConn.Close()

	artifacts, err := service.NewArtifactStore(cfg.DownloadsDir)
	if err != nil {
		log.Fatalf("open artifact store: %v", err)
	}

	gateway := summarizer.NewGateway(summarizer.GatewayConfig{
		Provider: summarizer.Config{
			Provider: cfg.Summarizer.Provider,
			APIKey:   cfg.Summarizer.APIKey,
			BaseURL:  cfg.Summarizer.BaseURL,
			Model:    cfg.Summarizer.Model,
		},
		MaxLength:     cfg.Summarizer.MaxLength,
		MinLength:     cfg.Summarizer.MinLength,
		RateLimit:     cfg.Summarizer.RateLimit,
		MaxConcurrent: cfg.Summarizer.MaxConcurrent,
	})

	userRepo := repository.NewUserRepository(dbConn)
	summaryRepo := repository.NewSummaryRepository(dbConn)

	authService := service.NewAuthService(userRepo, cfg.JWTSecret)
	summaryService := service.NewSummaryService(summaryRepo, gateway)
	batchService := service.NewBatchService(dbConn, gateway, artifacts)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(authService, summaryService)
	summarizeHandler := handler.NewSummarizeHandler(summaryService, batchService, gateway)

	router, err := transport.NewRouter(authService, authHandler, userHandler, summarizeHandler)
	if err != nil {
		log.Fatalf("build router: %v", err)
	}

	// Handle graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Println("shutting down...")
		dbConn.Close()
		os.Exit(0)
	}()

	if err := router.Start(cfg.Addr); err != nil {
		log.Fatalf("start server: %v", err)
	}
}
