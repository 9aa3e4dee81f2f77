package billing

import (
	"context"

	"github.com/gstdesk/gstdesk-api/internal/domain/entity"
	"github.com/gstdesk/gstdesk-api/internal/domain/repository"
)

// TxRunner executes a function inside one transaction with repos bound to it.
// Invoice writes (header plus lines) and payment-driven balance recomputes
// must go through it.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		invoiceRepo repository.InvoiceRepository,
		paymentRepo repository.PaymentRepository,
		partyRepo repository.PartyRepository,
	) error) error
}

// InvoicePDFGenerator renders a printable invoice document.
type InvoicePDFGenerator interface {
	Generate(company *entity.Company, inv *repository.InvoiceWithItems) ([]byte, error)
}
