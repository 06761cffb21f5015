package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"

	"github.com/popcrumbs-alex/silver2ctfunnel/internal/checkout"
	"github.com/popcrumbs-alex/silver2ctfunnel/internal/client"
	"github.com/popcrumbs-alex/silver2ctfunnel/internal/config"
	"github.com/popcrumbs-alex/silver2ctfunnel/internal/logger"
)

// Headless funnel runtime: composes the checkout pipeline against the
// order gateway and the live PayPal API, and surfaces alerts. The
// embedding surface drives the pipeline's draft store, adapters and
// controller.
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
		Service: "silver2ctfunnel-client",
		Env:     cfg.Environment.Name,
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
	})

	gateway := client.NewGatewayClient(cfg.BaseURL)
	provider := client.NewPaypalClient(&cfg.Paypal)

	catalog := checkout.DefaultCatalog()
	catalog.FunnelName = cfg.Funnel.Name

	pipeline := checkout.NewPipeline(
		gateway,
		provider,
		checkout.NewMemoryStorage(),
		catalog,
		cfg.Funnel.SubscriptionPlanID,
	)

	log.Info("funnel session ready",
		"funnel", catalog.FunnelName,
		"gateway", cfg.BaseURL,
		"stage", pipeline.Controller.Stage().String())

	// single consumer of the fire-and-forget alert channel
	go func() {
		for alert := range pipeline.Alerts.Alerts() {
			log.Warn("alert",
				"message", alert.Message,
				"type", string(alert.Type),
				"field", alert.Field)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	<-sigChan
	log.Info("funnel session shutting down")
}
