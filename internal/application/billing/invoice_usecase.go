package billing

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gstdesk/gstdesk-api/internal/application/dto"
	"github.com/gstdesk/gstdesk-api/internal/domain"
	"github.com/gstdesk/gstdesk-api/internal/domain/entity"
	"github.com/gstdesk/gstdesk-api/internal/domain/gst"
	"github.com/gstdesk/gstdesk-api/internal/domain/repository"
	"github.com/gstdesk/gstdesk-api/pkg/logger"
)

const invoiceNumberWidth = 4

// InvoiceUseCase creates, rewrites and deletes invoices. Header and lines are
// always written in one transaction; totals are derived from the lines and
// never accepted from the client.
type InvoiceUseCase struct {
	txRunner    TxRunner
	invoiceRepo repository.InvoiceRepository
	partyRepo   repository.PartyRepository
	productRepo repository.ProductRepository
	companyRepo repository.CompanyRepository
	paymentRepo repository.PaymentRepository
	prefix      string
	log         *logger.Logger
}

// NewInvoiceUseCase builds the use case. prefix is the invoice number base,
// e.g. "INV".
func NewInvoiceUseCase(
	txRunner TxRunner,
	invoiceRepo repository.InvoiceRepository,
	partyRepo repository.PartyRepository,
	productRepo repository.ProductRepository,
	companyRepo repository.CompanyRepository,
	paymentRepo repository.PaymentRepository,
	prefix string,
	log *logger.Logger,
) *InvoiceUseCase {
	return &InvoiceUseCase{
		txRunner:    txRunner,
		invoiceRepo: invoiceRepo,
		partyRepo:   partyRepo,
		productRepo: productRepo,
		companyRepo: companyRepo,
		paymentRepo: paymentRepo,
		prefix:      prefix,
		log:         log,
	}
}

// buildLines resolves products, fills defaults and computes the monetary
// fields of every line at full precision. Rounding to paise happens once,
// here, when the stored fields are set.
func (uc *InvoiceUseCase) buildLines(companyID, invoiceID string, items []dto.InvoiceItemRequest, breakdown gst.Breakdown) ([]entity.InvoiceItem, error) {
	lines := make([]entity.InvoiceItem, 0, len(items))
	for i, item := range items {
		if !item.Quantity.GreaterThan(decimal.Zero) {
			return nil, fmt.Errorf("%w: line %d quantity must be positive", domain.ErrInvalidInput, i+1)
		}
		if item.Rate.IsNegative() || item.DiscountPercent.IsNegative() {
			return nil, fmt.Errorf("%w: line %d rate and discount cannot be negative", domain.ErrInvalidInput, i+1)
		}
		if item.DiscountPercent.GreaterThan(decimal.NewFromInt(100)) {
			return nil, fmt.Errorf("%w: line %d discount cannot exceed 100%%", domain.ErrInvalidInput, i+1)
		}
		product, err := uc.productRepo.GetByID(item.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, fmt.Errorf("%w: product on line %d", domain.ErrNotFound, i+1)
		}
		if product.CompanyID != companyID {
			return nil, domain.ErrForbidden
		}
		rate := item.Rate
		if rate.IsZero() {
			rate = product.SalesRate
		}
		taxPercent := product.TaxRate
		if item.TaxPercent != nil {
			taxPercent = *item.TaxPercent
		}
		if breakdown == gst.BreakdownNonGST {
			taxPercent = decimal.Zero
		}
		if taxPercent.IsNegative() || taxPercent.GreaterThan(decimal.NewFromInt(100)) {
			return nil, fmt.Errorf("%w: line %d tax rate must be between 0 and 100", domain.ErrInvalidInput, i+1)
		}

		lt := gst.ComputeLineTotal(item.Quantity, rate, item.DiscountPercent, taxPercent)
		line := entity.InvoiceItem{
			ID:              uuid.New().String(),
			InvoiceID:       invoiceID,
			LineNo:          i + 1,
			ProductID:       product.ID,
			ProductName:     product.Name,
			HSNCode:         product.HSNCode,
			Quantity:        item.Quantity,
			Unit:            product.Unit,
			Rate:            rate,
			DiscountPercent: item.DiscountPercent,
			DiscountAmount:  gst.RoundMoney(lt.DiscountAmount),
			TaxPercent:      taxPercent,
			TaxAmount:       gst.RoundMoney(lt.TaxAmount),
			Amount:          gst.RoundMoney(lt.Amount),
		}
		switch breakdown {
		case gst.BreakdownIntraState:
			half := lt.TaxAmount.Div(decimal.NewFromInt(2))
			line.CGSTAmount = gst.RoundMoney(half)
			line.SGSTAmount = gst.RoundMoney(half)
		case gst.BreakdownInterState:
			line.IGSTAmount = line.TaxAmount
		}
		lines = append(lines, line)
	}
	return lines, nil
}

// applyTotals fills the invoice header from its lines, including the
// round-off to the nearest rupee.
func applyTotals(inv *entity.Invoice, lines []entity.InvoiceItem, breakdown gst.Breakdown) {
	totals := gst.AggregateInvoiceTotals(lines, breakdown)
	inv.Subtotal = gst.RoundMoney(totals.Subtotal)
	inv.TotalDiscount = gst.RoundMoney(totals.TotalDiscount)
	inv.TotalTax = gst.RoundMoney(totals.TotalTax)
	inv.CGST = gst.RoundMoney(totals.CGST)
	inv.SGST = gst.RoundMoney(totals.SGST)
	inv.IGST = gst.RoundMoney(totals.IGST)
	// Grand total from the already-rounded header fields, so the printed
	// arithmetic always adds up to the paisa.
	grand := inv.Subtotal.Sub(inv.TotalDiscount).Add(inv.TotalTax)
	rounded, roundOff := gst.RoundOffToRupee(grand)
	inv.GrandTotal = rounded
	inv.RoundOff = gst.RoundMoney(roundOff)
}

// Create builds and persists an invoice. When InvoiceNo is empty the next
// sequential number for the financial year is assigned inside the write
// transaction.
func (uc *InvoiceUseCase) Create(ctx context.Context, companyID string, in dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	if err := dto.Validate.Struct(in); err != nil {
		return nil, domain.ErrInvalidInput
	}
	party, err := uc.partyRepo.GetByID(in.PartyID)
	if err != nil {
		return nil, err
	}
	if party == nil {
		return nil, domain.ErrNotFound
	}
	if party.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	company, err := uc.companyRepo.GetByID(companyID)
	if err != nil || company == nil {
		return nil, domain.ErrNotFound
	}

	date, err := parseDate(in.Date)
	if err != nil {
		return nil, err
	}
	breakdown := gst.BreakdownFor(party.GSTNumber, company.GSTIN)

	invoiceID := uuid.New().String()
	lines, err := uc.buildLines(companyID, invoiceID, in.Items, breakdown)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	inv := &entity.Invoice{
		ID:        invoiceID,
		CompanyID: companyID,
		Date:      date,
		PartyID:   party.ID,
		TaxType:   gst.ClassifyTaxType(party.GSTNumber, company.GSTIN),
		BillType:  defaultStr(in.BillType, entity.BillTypeCredit),
		Status:    entity.StatusSent,
		Notes:     in.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	}
	applyTotals(inv, lines, breakdown)
	if inv.BillType == entity.BillTypeCash {
		inv.PaidAmount = inv.GrandTotal
		inv.BalanceDue = decimal.Zero
		inv.Status = entity.StatusPaid
	} else {
		inv.BalanceDue = inv.GrandTotal
	}

	err = uc.txRunner.Run(ctx, func(
		invoiceRepo repository.InvoiceRepository,
		_ repository.PaymentRepository,
		_ repository.PartyRepository,
	) error {
		number := strings.TrimSpace(in.InvoiceNo)
		if number == "" {
			prefix := InvoiceNumberPrefix(uc.prefix, date)
			last, err := invoiceRepo.LastInvoiceNumber(companyID, prefix)
			if err != nil {
				return err
			}
			number = nextSequential(last, prefix, invoiceNumberWidth)
		} else {
			exists, err := invoiceRepo.NumberExists(companyID, number)
			if err != nil {
				return err
			}
			if exists {
				return domain.ErrDuplicateInvoiceNumber
			}
		}
		inv.InvoiceNo = number
		if err := invoiceRepo.Create(inv); err != nil {
			return err
		}
		for i := range lines {
			if err := invoiceRepo.CreateItem(&lines[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("invoice_no", inv.InvoiceNo).
		Str("party", party.Name).
		Str("grand_total", inv.GrandTotal.StringFixed(2)).
		Msg("invoice created")
	return toInvoiceResponse(inv, party.Name, lines), nil
}

// Get fetches an invoice with its lines in original order.
func (uc *InvoiceUseCase) Get(companyID, id string) (*dto.InvoiceResponse, error) {
	inv, err := uc.invoiceRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	if inv.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	items, err := uc.invoiceRepo.GetItems(id)
	if err != nil {
		return nil, err
	}
	partyName := ""
	if party, _ := uc.partyRepo.GetByID(inv.PartyID); party != nil {
		partyName = party.Name
	}
	return toInvoiceResponse(inv, partyName, items), nil
}

// GetByNumber fetches an invoice by its visible number.
func (uc *InvoiceUseCase) GetByNumber(companyID, invoiceNo string) (*dto.InvoiceResponse, error) {
	inv, err := uc.invoiceRepo.GetByNumber(companyID, invoiceNo)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	return uc.Get(companyID, inv.ID)
}

// NumberExists reports whether the invoice number is already taken in the
// company, for pre-save checks in clients.
func (uc *InvoiceUseCase) NumberExists(companyID, invoiceNo string) (bool, error) {
	return uc.invoiceRepo.NumberExists(companyID, invoiceNo)
}

// List returns invoice headers, newest first, with optional filters.
func (uc *InvoiceUseCase) List(companyID string, filter repository.InvoiceListFilter) ([]*dto.InvoiceResponse, error) {
	list, err := uc.invoiceRepo.ListByCompany(companyID, filter)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.InvoiceResponse, 0, len(list))
	for _, inv := range list {
		out = append(out, toInvoiceResponse(inv, "", nil))
	}
	return out, nil
}

// Update rewrites an invoice. Lines are replaced wholesale and all totals
// recomputed; payments already applied stay and the balance follows.
func (uc *InvoiceUseCase) Update(ctx context.Context, companyID, id string, in dto.UpdateInvoiceRequest) (*dto.InvoiceResponse, error) {
	if err := dto.Validate.Struct(in); err != nil {
		return nil, domain.ErrInvalidInput
	}
	inv, err := uc.invoiceRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	if inv.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	if inv.Status == entity.StatusCancelled {
		return nil, fmt.Errorf("%w: invoice is cancelled", domain.ErrConflict)
	}
	party, err := uc.partyRepo.GetByID(in.PartyID)
	if err != nil {
		return nil, err
	}
	if party == nil {
		return nil, domain.ErrNotFound
	}
	if party.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	company, err := uc.companyRepo.GetByID(companyID)
	if err != nil || company == nil {
		return nil, domain.ErrNotFound
	}

	date := inv.Date
	if in.Date != "" {
		if date, err = parseDate(in.Date); err != nil {
			return nil, err
		}
	}
	breakdown := gst.BreakdownFor(party.GSTNumber, company.GSTIN)
	lines, err := uc.buildLines(companyID, id, in.Items, breakdown)
	if err != nil {
		return nil, err
	}

	inv.Date = date
	inv.PartyID = party.ID
	inv.TaxType = gst.ClassifyTaxType(party.GSTNumber, company.GSTIN)
	inv.BillType = defaultStr(in.BillType, inv.BillType)
	inv.Notes = in.Notes
	inv.UpdatedAt = time.Now()
	applyTotals(inv, lines, breakdown)

	err = uc.txRunner.Run(ctx, func(
		invoiceRepo repository.InvoiceRepository,
		paymentRepo repository.PaymentRepository,
		_ repository.PartyRepository,
	) error {
		if in.InvoiceNo != "" && in.InvoiceNo != inv.InvoiceNo {
			exists, err := invoiceRepo.NumberExists(companyID, in.InvoiceNo)
			if err != nil {
				return err
			}
			if exists {
				return domain.ErrDuplicateInvoiceNumber
			}
			inv.InvoiceNo = in.InvoiceNo
		}
		paid, err := paymentRepo.SumForInvoice(id)
		if err != nil {
			return err
		}
		// Cash bills are settled at issue time without a payment row.
		if inv.BillType == entity.BillTypeCash && paid.IsZero() {
			paid = inv.GrandTotal
		}
		settleInvoice(inv, paid)
		if err := invoiceRepo.DeleteItems(id); err != nil {
			return err
		}
		for i := range lines {
			if err := invoiceRepo.CreateItem(&lines[i]); err != nil {
				return err
			}
		}
		return invoiceRepo.Update(inv)
	})
	if err != nil {
		return nil, err
	}
	return toInvoiceResponse(inv, party.Name, lines), nil
}

// Delete removes an invoice. Linked payments survive with the invoice link
// cleared, so the party ledger stays intact.
func (uc *InvoiceUseCase) Delete(companyID, id string) error {
	inv, err := uc.invoiceRepo.GetByID(id)
	if err != nil {
		return err
	}
	if inv == nil {
		return domain.ErrNotFound
	}
	if inv.CompanyID != companyID {
		return domain.ErrForbidden
	}
	if err := uc.invoiceRepo.Delete(id); err != nil {
		return err
	}
	uc.log.Info().Str("invoice_no", inv.InvoiceNo).Msg("invoice deleted")
	return nil
}

// GetWithItems loads the invoice, its party and lines for rendering.
func (uc *InvoiceUseCase) GetWithItems(companyID, id string) (*repository.InvoiceWithItems, error) {
	inv, err := uc.invoiceRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	if inv.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	items, err := uc.invoiceRepo.GetItems(id)
	if err != nil {
		return nil, err
	}
	party, err := uc.partyRepo.GetByID(inv.PartyID)
	if err != nil {
		return nil, err
	}
	out := &repository.InvoiceWithItems{Invoice: *inv, Items: items}
	if party != nil {
		out.Party = *party
	}
	return out, nil
}

// HSNSummary returns the invoice's tax summary grouped by HSN and rate.
func (uc *InvoiceUseCase) HSNSummary(companyID, id string) ([]dto.HSNSummaryLine, error) {
	full, err := uc.GetWithItems(companyID, id)
	if err != nil {
		return nil, err
	}
	breakdown := gst.BreakdownIntraState
	if !full.Invoice.IGST.IsZero() {
		breakdown = gst.BreakdownInterState
	}
	if full.Invoice.TaxType != gst.TaxTypeGST {
		breakdown = gst.BreakdownNonGST
	}
	lines := gst.HSNSummary(full.Items, breakdown)
	out := make([]dto.HSNSummaryLine, 0, len(lines))
	for _, l := range lines {
		out = append(out, dto.HSNSummaryLine{
			HSNCode:      l.HSNCode,
			TaxRate:      l.TaxRate,
			TaxableValue: l.TaxableValue,
			CGST:         l.CGSTAmount,
			SGST:         l.SGSTAmount,
			IGST:         l.IGSTAmount,
			TotalTax:     l.TotalTax,
		})
	}
	return out, nil
}

// settleInvoice recomputes PaidAmount, BalanceDue and Status from the amount
// paid so far. Cancelled invoices are left alone.
func settleInvoice(inv *entity.Invoice, paid decimal.Decimal) {
	if inv.Status == entity.StatusCancelled {
		return
	}
	inv.PaidAmount = paid
	balance := inv.GrandTotal.Sub(paid)
	if balance.IsNegative() {
		balance = decimal.Zero
	}
	inv.BalanceDue = balance
	switch {
	case paid.GreaterThanOrEqual(inv.GrandTotal) && inv.GrandTotal.GreaterThan(decimal.Zero):
		inv.Status = entity.StatusPaid
	case paid.GreaterThan(decimal.Zero):
		inv.Status = entity.StatusPartiallyPaid
	default:
		inv.Status = entity.StatusSent
	}
}

func parseDate(s string) (time.Time, error) {
	if s == "" {
		now := time.Now()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	date, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date must be YYYY-MM-DD", domain.ErrInvalidInput)
	}
	return date, nil
}

func toInvoiceResponse(inv *entity.Invoice, partyName string, items []entity.InvoiceItem) *dto.InvoiceResponse {
	resp := &dto.InvoiceResponse{
		ID:            inv.ID,
		CompanyID:     inv.CompanyID,
		InvoiceNo:     inv.InvoiceNo,
		Date:          inv.Date.Format("2006-01-02"),
		PartyID:       inv.PartyID,
		PartyName:     partyName,
		TaxType:       inv.TaxType,
		BillType:      inv.BillType,
		Subtotal:      inv.Subtotal,
		TotalDiscount: inv.TotalDiscount,
		TotalTax:      inv.TotalTax,
		CGST:          inv.CGST,
		SGST:          inv.SGST,
		IGST:          inv.IGST,
		RoundOff:      inv.RoundOff,
		GrandTotal:    inv.GrandTotal,
		PaidAmount:    inv.PaidAmount,
		BalanceDue:    inv.BalanceDue,
		Status:        inv.Status,
		Notes:         inv.Notes,
	}
	for _, it := range items {
		resp.Items = append(resp.Items, dto.InvoiceItemResponse{
			ID:              it.ID,
			LineNo:          it.LineNo,
			ProductID:       it.ProductID,
			ProductName:     it.ProductName,
			HSNCode:         it.HSNCode,
			Quantity:        it.Quantity,
			Unit:            it.Unit,
			Rate:            it.Rate,
			DiscountPercent: it.DiscountPercent,
			DiscountAmount:  it.DiscountAmount,
			TaxPercent:      it.TaxPercent,
			TaxAmount:       it.TaxAmount,
			Amount:          it.Amount,
		})
	}
	return resp
}
