package main

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"

	"github.com/popcrumbs-alex/silver2ctfunnel/internal/client"
	"github.com/popcrumbs-alex/silver2ctfunnel/internal/config"
	"github.com/popcrumbs-alex/silver2ctfunnel/internal/logger"
	"github.com/popcrumbs-alex/silver2ctfunnel/internal/repository"
	"github.com/popcrumbs-alex/silver2ctfunnel/internal/server"
	"github.com/popcrumbs-alex/silver2ctfunnel/internal/service"
)

func main() {
	// load .env into os.Environ
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found (ok in prod)")
	}

	cfg := &config.Config{}
	if err := env.Parse(cfg); err != nil {
		fmt.Printf("Failed to parse config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Options{
		Service: "silver2ctfunnel",
		Env:     cfg.Environment.Name,
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
	})

	db := client.InitSqliteClient(cfg.DatabasePath)

	cardCharger := client.NewBraintreeCharger(&cfg.BrainTree)

	orderRepo := repository.NewOrderRepository(db)
	orderService := service.NewOrderService(orderRepo, cardCharger, log)

	serverAddr := cfg.HTTP.Host + ":" + cfg.HTTP.Port

	srv := server.NewServer(orderService)

	log.Info("starting HTTP server", "addr", serverAddr)
	go func() {
		if err := srv.Start(serverAddr); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error", "error", err)
			os.Exit(1)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	<-sigChan
	log.Info("signal received, starting graceful shutdown")

	if err := srv.Shutdown(); err != nil {
		log.Error("HTTP server shutdown error", "error", err)
		os.Exit(1)
	}
}
