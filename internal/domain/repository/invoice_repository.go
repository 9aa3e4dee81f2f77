package repository

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/gstdesk/gstdesk-api/internal/domain/entity"
)

// InvoiceListFilter narrows List results. Zero values mean "no filter".
type InvoiceListFilter struct {
	Status   string
	PartyID  string
	DateFrom time.Time
	DateTo   time.Time
}

// InvoiceWithItems is the join the UI renders: the invoice, its party and the
// lines in original insertion order.
type InvoiceWithItems struct {
	Invoice entity.Invoice
	Party   entity.Party
	Items   []entity.InvoiceItem
}

// InvoiceRepository is the persistence port for Invoice and its items.
// Create and the item rewrite in Update run inside one transaction so a crash
// can never leave a header without its lines.
type InvoiceRepository interface {
	Create(invoice *entity.Invoice) error
	CreateItem(item *entity.InvoiceItem) error
	GetByID(id string) (*entity.Invoice, error)
	GetByNumber(companyID, invoiceNo string) (*entity.Invoice, error)
	// GetItems returns the invoice's lines ordered by line number.
	GetItems(invoiceID string) ([]entity.InvoiceItem, error)
	Update(invoice *entity.Invoice) error
	// DeleteItems removes every line of the invoice (full-replace updates).
	DeleteItems(invoiceID string) error
	Delete(id string) error
	NumberExists(companyID, invoiceNo string) (bool, error)
	ListByCompany(companyID string, filter InvoiceListFilter) ([]*entity.Invoice, error)
	// SumGrandTotalByParty totals all invoice amounts billed to a party,
	// for the ledger balance.
	SumGrandTotalByParty(partyID string) (decimal.Decimal, error)
	// LastInvoiceNumber returns the highest existing invoice_no with the
	// given prefix, "" when none, for sequential number generation.
	LastInvoiceNumber(companyID, prefix string) (string, error)
	CountByParty(partyID string) (int, error)
}
