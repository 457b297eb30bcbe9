package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/AfaqKhan6007007/zatca-full/internal/application/auth"
	"github.com/AfaqKhan6007007/zatca-full/internal/application/billing"
	infrapdf "github.com/AfaqKhan6007007/zatca-full/internal/infrastructure/pdf"
	"github.com/AfaqKhan6007007/zatca-full/internal/infrastructure/postgres"
	infrazatca "github.com/AfaqKhan6007007/zatca-full/internal/infrastructure/zatca"
	httpRouter "github.com/AfaqKhan6007007/zatca-full/internal/interfaces/http"
	"github.com/AfaqKhan6007007/zatca-full/pkg/config"
	"github.com/AfaqKhan6007007/zatca-full/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("load configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("starting application")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("connect to PostgreSQL")
	}
	defer pool.Close()

	companyRepo := postgres.NewCompanyRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	invoiceRepo := postgres.NewInvoiceRepository(pool)
	logRepo := postgres.NewZATCALogRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	zatcaClient := infrazatca.NewHTTPClient(infrazatca.Config{
		BaseURL: cfg.ZATCA.APIURL,
		APIKey:  cfg.ZATCA.APIKey,
		Timeout: cfg.ZATCA.Timeout,
	})

	invoiceUC := billing.NewInvoiceUseCase(txRunner, invoiceRepo, companyRepo, customerRepo, logRepo)
	zatcaUC := billing.NewZATCAUseCase(invoiceRepo, companyRepo, customerRepo, logRepo, zatcaClient, log)
	exportUC := billing.NewExportUseCase(invoiceRepo, companyRepo, customerRepo,
		infrapdf.NewMarotoPDFGenerator(), infrazatca.NewUBLBuilder())
	companyUC := billing.NewCompanyUseCase(companyRepo)
	customerUC := billing.NewCustomerUseCase(customerRepo)
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "ZATCA E-Invoicing API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:     authUC,
		CompanyUC:  companyUC,
		CustomerUC: customerUC,
		InvoiceUC:  invoiceUC,
		ZATCAUC:    zatcaUC,
		ExportUC:   exportUC,
		JWTSecret:  cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("HTTP server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutdown signal received, stopping server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}

	log.Info().Msg("application stopped")
}
