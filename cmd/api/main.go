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

	"github.com/gstdesk/gstdesk-api/internal/application/auth"
	"github.com/gstdesk/gstdesk-api/internal/application/billing"
	infrapdf "github.com/gstdesk/gstdesk-api/internal/infrastructure/pdf"
	"github.com/gstdesk/gstdesk-api/internal/infrastructure/postgres"
	httpRouter "github.com/gstdesk/gstdesk-api/internal/interfaces/http"
	"github.com/gstdesk/gstdesk-api/pkg/config"
	"github.com/gstdesk/gstdesk-api/pkg/jwt"
	"github.com/gstdesk/gstdesk-api/pkg/logger"
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

	if err := postgres.Migrate(cfg.DB.ConnectionString(), log); err != nil {
		log.Fatal().Err(err).Msg("run migrations")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("connect to PostgreSQL")
	}
	defer pool.Close()

	// Converge schema drift left behind by older installs.
	postgres.EnsureColumns(ctx, pool, log)

	companyRepo := postgres.NewCompanyRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	partyRepo := postgres.NewPartyRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	invoiceRepo := postgres.NewInvoiceRepository(pool)
	paymentRepo := postgres.NewPaymentRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	companyUC := billing.NewCompanyUseCase(companyRepo)
	partyUC := billing.NewPartyUseCase(partyRepo, invoiceRepo, paymentRepo)
	productUC := billing.NewProductUseCase(productRepo)
	invoiceUC := billing.NewInvoiceUseCase(
		txRunner, invoiceRepo, partyRepo, productRepo, companyRepo, paymentRepo,
		cfg.Billing.InvoicePrefix, log.Component("invoices"),
	)
	paymentUC := billing.NewPaymentUseCase(txRunner, paymentRepo, invoiceRepo, partyRepo, log.Component("payments"))
	ledgerUC := billing.NewLedgerUseCase(partyRepo, invoiceRepo, paymentRepo)

	pdfGenerator := infrapdf.NewMarotoPDFGenerator()
	pdfUC := billing.NewPDFUseCase(invoiceUC, companyRepo, pdfGenerator)

	tokens := jwt.NewSigner(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.Expiration)
	authUC := auth.NewAuthUseCase(userRepo, companyRepo, tokens)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI in local runs: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "GSTDesk API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		CompanyUC: companyUC,
		PartyUC:   partyUC,
		ProductUC: productUC,
		InvoiceUC: invoiceUC,
		PaymentUC: paymentUC,
		LedgerUC:  ledgerUC,
		PDFUC:     pdfUC,
		AuthUC:    authUC,
		Tokens:    tokens,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("HTTP server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutdown signal received, closing server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}

	log.Info().Msg("application stopped")
}
