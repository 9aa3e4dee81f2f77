package billing

import (
	"context"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/gstdesk/gstdesk-api/internal/domain/entity"
	"github.com/gstdesk/gstdesk-api/internal/domain/repository"
	"github.com/gstdesk/gstdesk-api/pkg/logger"
)

// In-memory repositories for use case tests. They mirror the storage
// contracts: nil on not-found, normalized party names, sums excluding
// cancelled invoices.

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Env: "production", Level: "error"})
}

type memPartyRepo struct {
	parties map[string]*entity.Party
	refs    map[string][2]int // partyID -> {invoices, payments}
}

func newMemPartyRepo() *memPartyRepo {
	return &memPartyRepo{parties: map[string]*entity.Party{}, refs: map[string][2]int{}}
}

func (r *memPartyRepo) Create(p *entity.Party) error {
	cp := *p
	cp.Name = strings.ToUpper(strings.TrimSpace(cp.Name))
	r.parties[p.ID] = &cp
	return nil
}

func (r *memPartyRepo) GetByID(id string) (*entity.Party, error) {
	p, ok := r.parties[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *memPartyRepo) FindByName(companyID, name, excludeID string) (*entity.Party, error) {
	want := strings.ToUpper(strings.TrimSpace(name))
	for _, p := range r.parties {
		if p.CompanyID == companyID && p.Name == want && p.ID != excludeID {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memPartyRepo) ListByCompany(companyID, typeFilter string) ([]*entity.Party, error) {
	var out []*entity.Party
	for _, p := range r.parties {
		if p.CompanyID != companyID {
			continue
		}
		if typeFilter != "" && p.Type != typeFilter && p.Type != entity.PartyTypeBoth {
			continue
		}
		cp := *p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *memPartyRepo) Update(p *entity.Party) error {
	cp := *p
	cp.Name = strings.ToUpper(strings.TrimSpace(cp.Name))
	r.parties[p.ID] = &cp
	return nil
}

func (r *memPartyRepo) Delete(id string) error {
	delete(r.parties, id)
	return nil
}

func (r *memPartyRepo) CountReferences(partyID string) (int, int, error) {
	refs := r.refs[partyID]
	return refs[0], refs[1], nil
}

type memProductRepo struct {
	products map[string]*entity.Product
}

func newMemProductRepo() *memProductRepo {
	return &memProductRepo{products: map[string]*entity.Product{}}
}

func (r *memProductRepo) Create(p *entity.Product) error {
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *memProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *memProductRepo) ListByCompany(companyID string) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.products {
		if p.CompanyID == companyID {
			cp := *p
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *memProductRepo) Update(p *entity.Product) error {
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *memProductRepo) Delete(id string) error {
	delete(r.products, id)
	return nil
}

type memCompanyRepo struct {
	companies map[string]*entity.Company
}

func newMemCompanyRepo() *memCompanyRepo {
	return &memCompanyRepo{companies: map[string]*entity.Company{}}
}

func (r *memCompanyRepo) Create(c *entity.Company) error {
	cp := *c
	r.companies[c.ID] = &cp
	return nil
}

func (r *memCompanyRepo) GetByID(id string) (*entity.Company, error) {
	c, ok := r.companies[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *memCompanyRepo) List() ([]*entity.Company, error) {
	var out []*entity.Company
	for _, c := range r.companies {
		cp := *c
		out = append(out, &cp)
	}
	return out, nil
}

func (r *memCompanyRepo) Update(c *entity.Company) error {
	cp := *c
	r.companies[c.ID] = &cp
	return nil
}

type memInvoiceRepo struct {
	invoices map[string]*entity.Invoice
	items    map[string][]entity.InvoiceItem
}

func newMemInvoiceRepo() *memInvoiceRepo {
	return &memInvoiceRepo{invoices: map[string]*entity.Invoice{}, items: map[string][]entity.InvoiceItem{}}
}

func (r *memInvoiceRepo) Create(inv *entity.Invoice) error {
	cp := *inv
	r.invoices[inv.ID] = &cp
	return nil
}

func (r *memInvoiceRepo) CreateItem(item *entity.InvoiceItem) error {
	r.items[item.InvoiceID] = append(r.items[item.InvoiceID], *item)
	return nil
}

func (r *memInvoiceRepo) GetByID(id string) (*entity.Invoice, error) {
	inv, ok := r.invoices[id]
	if !ok {
		return nil, nil
	}
	cp := *inv
	return &cp, nil
}

func (r *memInvoiceRepo) GetByNumber(companyID, invoiceNo string) (*entity.Invoice, error) {
	for _, inv := range r.invoices {
		if inv.CompanyID == companyID && inv.InvoiceNo == invoiceNo {
			cp := *inv
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memInvoiceRepo) GetItems(invoiceID string) ([]entity.InvoiceItem, error) {
	items := append([]entity.InvoiceItem(nil), r.items[invoiceID]...)
	sort.Slice(items, func(i, j int) bool { return items[i].LineNo < items[j].LineNo })
	return items, nil
}

func (r *memInvoiceRepo) Update(inv *entity.Invoice) error {
	cp := *inv
	r.invoices[inv.ID] = &cp
	return nil
}

func (r *memInvoiceRepo) DeleteItems(invoiceID string) error {
	delete(r.items, invoiceID)
	return nil
}

func (r *memInvoiceRepo) Delete(id string) error {
	delete(r.invoices, id)
	delete(r.items, id)
	return nil
}

func (r *memInvoiceRepo) NumberExists(companyID, invoiceNo string) (bool, error) {
	inv, _ := r.GetByNumber(companyID, invoiceNo)
	return inv != nil, nil
}

func (r *memInvoiceRepo) ListByCompany(companyID string, filter repository.InvoiceListFilter) ([]*entity.Invoice, error) {
	var out []*entity.Invoice
	for _, inv := range r.invoices {
		if inv.CompanyID != companyID {
			continue
		}
		if filter.Status != "" && inv.Status != filter.Status {
			continue
		}
		if filter.PartyID != "" && inv.PartyID != filter.PartyID {
			continue
		}
		if !filter.DateFrom.IsZero() && inv.Date.Before(filter.DateFrom) {
			continue
		}
		if !filter.DateTo.IsZero() && inv.Date.After(filter.DateTo) {
			continue
		}
		cp := *inv
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].InvoiceNo > out[j].InvoiceNo })
	return out, nil
}

func (r *memInvoiceRepo) SumGrandTotalByParty(partyID string) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, inv := range r.invoices {
		if inv.PartyID == partyID && inv.Status != entity.StatusCancelled {
			total = total.Add(inv.GrandTotal)
		}
	}
	return total, nil
}

func (r *memInvoiceRepo) LastInvoiceNumber(companyID, prefix string) (string, error) {
	last := ""
	for _, inv := range r.invoices {
		if inv.CompanyID == companyID && strings.HasPrefix(inv.InvoiceNo, prefix) && inv.InvoiceNo > last {
			last = inv.InvoiceNo
		}
	}
	return last, nil
}

func (r *memInvoiceRepo) CountByParty(partyID string) (int, error) {
	n := 0
	for _, inv := range r.invoices {
		if inv.PartyID == partyID {
			n++
		}
	}
	return n, nil
}

type memPaymentRepo struct {
	payments map[string]*entity.Payment
}

func newMemPaymentRepo() *memPaymentRepo {
	return &memPaymentRepo{payments: map[string]*entity.Payment{}}
}

func (r *memPaymentRepo) Create(p *entity.Payment) error {
	cp := *p
	r.payments[p.ID] = &cp
	return nil
}

func (r *memPaymentRepo) GetByID(id string) (*entity.Payment, error) {
	p, ok := r.payments[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *memPaymentRepo) ListByCompany(companyID, typeFilter string) ([]*entity.Payment, error) {
	var out []*entity.Payment
	for _, p := range r.payments {
		if p.CompanyID != companyID {
			continue
		}
		if typeFilter != "" && p.Type != typeFilter {
			continue
		}
		cp := *p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PaymentID > out[j].PaymentID })
	return out, nil
}

func (r *memPaymentRepo) ListByInvoice(invoiceID string) ([]*entity.Payment, error) {
	var out []*entity.Payment
	for _, p := range r.payments {
		if p.InvoiceID == invoiceID {
			cp := *p
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PaymentID < out[j].PaymentID })
	return out, nil
}

func (r *memPaymentRepo) Update(p *entity.Payment) error {
	cp := *p
	r.payments[p.ID] = &cp
	return nil
}

func (r *memPaymentRepo) Delete(id string) error {
	delete(r.payments, id)
	return nil
}

func (r *memPaymentRepo) SumByParty(partyID, typeFilter string) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, p := range r.payments {
		if p.PartyID != partyID {
			continue
		}
		if typeFilter != "" && p.Type != typeFilter {
			continue
		}
		total = total.Add(p.Amount)
	}
	return total, nil
}

func (r *memPaymentRepo) SumForInvoice(invoiceID string) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, p := range r.payments {
		if p.InvoiceID == invoiceID {
			total = total.Add(p.Amount)
		}
	}
	return total, nil
}

func (r *memPaymentRepo) CountByParty(partyID string) (int, error) {
	n := 0
	for _, p := range r.payments {
		if p.PartyID == partyID {
			n++
		}
	}
	return n, nil
}

func (r *memPaymentRepo) LastPaymentID(companyID, prefix string) (string, error) {
	last := ""
	for _, p := range r.payments {
		if p.CompanyID == companyID && strings.HasPrefix(p.PaymentID, prefix) && p.PaymentID > last {
			last = p.PaymentID
		}
	}
	return last, nil
}

// fakeTxRunner calls fn with the shared in-memory repos; there is no real
// transaction boundary in tests.
type fakeTxRunner struct {
	invoices *memInvoiceRepo
	payments *memPaymentRepo
	parties  *memPartyRepo
}

func (t *fakeTxRunner) Run(_ context.Context, fn func(
	repository.InvoiceRepository,
	repository.PaymentRepository,
	repository.PartyRepository,
) error) error {
	return fn(t.invoices, t.payments, t.parties)
}
