package billing

import (
	"github.com/gstdesk/gstdesk-api/internal/domain"
	"github.com/gstdesk/gstdesk-api/internal/domain/repository"
)

// PDFUseCase renders an invoice as a printable document.
type PDFUseCase struct {
	invoiceUC   *InvoiceUseCase
	companyRepo repository.CompanyRepository
	generator   InvoicePDFGenerator
}

// NewPDFUseCase builds the use case.
func NewPDFUseCase(invoiceUC *InvoiceUseCase, companyRepo repository.CompanyRepository, generator InvoicePDFGenerator) *PDFUseCase {
	return &PDFUseCase{invoiceUC: invoiceUC, companyRepo: companyRepo, generator: generator}
}

// Render produces the PDF bytes for one invoice.
func (uc *PDFUseCase) Render(companyID, invoiceID string) ([]byte, error) {
	full, err := uc.invoiceUC.GetWithItems(companyID, invoiceID)
	if err != nil {
		return nil, err
	}
	company, err := uc.companyRepo.GetByID(companyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	return uc.generator.Generate(company, full)
}
