package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gstdesk/gstdesk-api/internal/application/billing"
)

// LedgerHandler handles party balances and statements (protected).
type LedgerHandler struct {
	uc *billing.LedgerUseCase
}

// NewLedgerHandler builds the handler.
func NewLedgerHandler(uc *billing.LedgerUseCase) *LedgerHandler {
	return &LedgerHandler{uc: uc}
}

// Balance GET /api/parties/:id/balance
func (h *LedgerHandler) Balance(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	balance, err := h.uc.PartyBalance(companyID, c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(balance)
}

// Statement GET /api/parties/:id/statement
func (h *LedgerHandler) Statement(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	statement, err := h.uc.Statement(companyID, c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(statement)
}

// PaymentSummary GET /api/ledger/payment-summary
func (h *LedgerHandler) PaymentSummary(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	summary, err := h.uc.PaymentSummary(companyID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(summary)
}

// Summary GET /api/ledger/summary
func (h *LedgerHandler) Summary(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	summary, err := h.uc.Summary(companyID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(summary)
}
