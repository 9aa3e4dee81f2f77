package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gstdesk/gstdesk-api/internal/application/auth"
	"github.com/gstdesk/gstdesk-api/internal/application/billing"
	"github.com/gstdesk/gstdesk-api/internal/domain/entity"
	"github.com/gstdesk/gstdesk-api/pkg/jwt"
)

// RouterDeps dependencies for the router.
type RouterDeps struct {
	CompanyUC *billing.CompanyUseCase
	PartyUC   *billing.PartyUseCase
	ProductUC *billing.ProductUseCase
	InvoiceUC *billing.InvoiceUseCase
	PaymentUC *billing.PaymentUseCase
	LedgerUC  *billing.LedgerUseCase
	PDFUC     *billing.PDFUseCase
	AuthUC    *auth.AuthUseCase
	Tokens    *jwt.Signer
}

// Router registers the API routes.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (public)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Company creation stays public so the first run can bootstrap a
	// profile before any user exists.
	companyHandler := NewCompanyHandler(deps.CompanyUC)
	api.Post("/companies", companyHandler.Create)

	// Protected routes (require Bearer token)
	protected := api.Group("/", AuthMiddleware(deps.Tokens))

	// Deleting records rewrites ledger history, so it stays off-limits to
	// operators.
	canDelete := RequireRole(entity.RoleOwner, entity.RoleAccountant)

	// Own company profile (protected)
	protected.Get("/company", companyHandler.Get)
	protected.Put("/company", RequireRole(entity.RoleOwner), companyHandler.Update)

	// Parties (protected)
	parties := protected.Group("/parties")
	partyHandler := NewPartyHandler(deps.PartyUC)
	ledgerHandler := NewLedgerHandler(deps.LedgerUC)
	parties.Post("/", partyHandler.Create)
	parties.Get("/", partyHandler.List)
	parties.Get("/:id", partyHandler.GetByID)
	parties.Put("/:id", partyHandler.Update)
	parties.Delete("/:id", canDelete, partyHandler.Delete)
	parties.Get("/:id/balance", ledgerHandler.Balance)
	parties.Get("/:id/statement", ledgerHandler.Statement)

	// Products (protected)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", canDelete, productHandler.Delete)

	// Invoices (protected)
	invoices := protected.Group("/invoices")
	invoiceHandler := NewInvoiceHandler(deps.InvoiceUC, deps.PDFUC)
	invoices.Post("/", invoiceHandler.Create)
	invoices.Get("/", invoiceHandler.List)
	invoices.Get("/number-exists", invoiceHandler.NumberExists)
	invoices.Get("/by-number/:no", invoiceHandler.GetByNumber)
	invoices.Get("/:id", invoiceHandler.GetByID)
	invoices.Put("/:id", invoiceHandler.Update)
	invoices.Delete("/:id", canDelete, invoiceHandler.Delete)
	invoices.Get("/:id/hsn-summary", invoiceHandler.HSNSummary)
	invoices.Get("/:id/pdf", invoiceHandler.PDF)

	// Payments (protected)
	payments := protected.Group("/payments")
	paymentHandler := NewPaymentHandler(deps.PaymentUC)
	payments.Post("/", paymentHandler.Create)
	payments.Get("/", paymentHandler.List)
	payments.Get("/:id", paymentHandler.GetByID)
	payments.Put("/:id", paymentHandler.Update)
	payments.Delete("/:id", canDelete, paymentHandler.Delete)

	// Ledger (protected)
	ledger := protected.Group("/ledger")
	ledger.Get("/summary", ledgerHandler.Summary)
	ledger.Get("/payment-summary", ledgerHandler.PaymentSummary)
}
