package main

import (
	"context"
	"net/http"
	"os"

	webAdapter "invoice-desk/internal/adapters/web"
	"invoice-desk/internal/ai"
	"invoice-desk/internal/app"
	"invoice-desk/internal/config"
	"invoice-desk/internal/core"
	"invoice-desk/internal/db"
	"invoice-desk/internal/logger"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config")
	}

	if err := logger.Setup(cfg.LogLevel, cfg.LogFormat); err != nil {
		log.Fatal().Err(err).Msg("logger")
	}

	ctx := context.Background()
	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("database")
	}
	defer pool.Close()

	customerService := core.NewCustomerService(pool)
	productService := core.NewProductService(pool)
	companyService := core.NewCompanyService(pool)
	invoiceService := core.NewInvoiceService(pool, logger.WithComponent("invoices"))

	if cfg.OpenAIAPIKey == "" {
		log.Warn().Msg("OPENAI_API_KEY is not set; invoice drafting will fail")
	}
	drafter := ai.NewDrafter(cfg.OpenAIAPIKey)

	svc := app.NewAppService(customerService, productService, companyService, invoiceService, drafter)

	handler := webAdapter.NewHandler(svc, cfg.AllowedOrigins, cfg.JWTSecret, logger.WithComponent("http"))

	log.Info().Str("port", cfg.ServerPort).Msg("server starting")
	if err := http.ListenAndServe(":"+cfg.ServerPort, handler); err != nil {
		log.Error().Err(err).Msg("server")
		os.Exit(1)
	}
}
