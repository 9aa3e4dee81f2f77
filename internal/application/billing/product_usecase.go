package billing

import (
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
)

// ProductUseCase covers the product catalog. Tax rates are stored with the
// SGST/CGST halves precomputed; stock fields are informational only.
type ProductUseCase struct {
	repo repository.ProductRepository
}

// NewProductUseCase builds the use case.
func NewProductUseCase(repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo}
}

// Create registers a product.
func (uc *ProductUseCase) Create(companyID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, fmt.Errorf("%w: product name is required", domain.ErrInvalidInput)
	}
	if err := dto.Validate.Struct(in); err != nil {
		return nil, domain.ErrInvalidInput
	}
	if in.SalesRate.IsNegative() || in.PurchaseRate.IsNegative() || in.TaxRate.IsNegative() {
		return nil, fmt.Errorf("%w: rates cannot be negative", domain.ErrInvalidInput)
	}
	now := time.Now()
	product := &entity.Product{
		ID:              uuid.New().String(),
		CompanyID:       companyID,
		Name:            in.Name,
		HSNCode:         in.HSNCode,
		Barcode:         in.Barcode,
		Unit:            defaultStr(in.Unit, "PCS"),
		SalesRate:       in.SalesRate,
		PurchaseRate:    in.PurchaseRate,
		DiscountPercent: in.DiscountPercent,
		MRP:             in.MRP,
		TaxRate:         in.TaxRate,
		OpeningStock:    in.OpeningStock,
		CurrentStock:    in.OpeningStock,
		LowStock:        in.LowStock,
		Type:            defaultStr(in.Type, entity.ProductTypeGoods),
		TrackStock:      boolOr(in.TrackStock, true),
		IsGSTRegistered: boolOr(in.IsGSTRegistered, true),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	applyTaxSplit(product)
	if err := uc.repo.Create(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Get fetches one product.
func (uc *ProductUseCase) Get(companyID, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if product.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return toProductResponse(product), nil
}

// List returns the company's catalog ordered by name.
func (uc *ProductUseCase) List(companyID string) ([]*dto.ProductResponse, error) {
	list, err := uc.repo.ListByCompany(companyID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, toProductResponse(p))
	}
	return out, nil
}

// Update rewrites a product. Invoice lines keep their snapshots, so past
// invoices are unaffected.
func (uc *ProductUseCase) Update(companyID, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if product.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	if strings.TrimSpace(in.Name) == "" {
		return nil, fmt.Errorf("%w: product name is required", domain.ErrInvalidInput)
	}
	if err := dto.Validate.Struct(in); err != nil {
		return nil, domain.ErrInvalidInput
	}
	if in.SalesRate.IsNegative() || in.PurchaseRate.IsNegative() || in.TaxRate.IsNegative() {
		return nil, fmt.Errorf("%w: rates cannot be negative", domain.ErrInvalidInput)
	}
	product.Name = in.Name
	product.HSNCode = in.HSNCode
	product.Barcode = in.Barcode
	product.Unit = defaultStr(in.Unit, product.Unit)
	product.SalesRate = in.SalesRate
	product.PurchaseRate = in.PurchaseRate
	product.DiscountPercent = in.DiscountPercent
	product.MRP = in.MRP
	product.TaxRate = in.TaxRate
	product.OpeningStock = in.OpeningStock
	product.LowStock = in.LowStock
	product.Type = defaultStr(in.Type, product.Type)
	product.TrackStock = boolOr(in.TrackStock, product.TrackStock)
	product.IsGSTRegistered = boolOr(in.IsGSTRegistered, product.IsGSTRegistered)
	product.UpdatedAt = time.Now()
	applyTaxSplit(product)
	if err := uc.repo.Update(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Delete removes a product from the catalog.
func (uc *ProductUseCase) Delete(companyID, id string) error {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	if product.CompanyID != companyID {
		return domain.ErrForbidden
	}
	return uc.repo.Delete(id)
}

// applyTaxSplit fills SGSTRate/CGSTRate from TaxRate. Non-GST products carry
// zero halves.
func applyTaxSplit(p *entity.Product) {
	if !p.IsGSTRegistered {
		p.SGSTRate = decimal.Zero
		p.CGSTRate = decimal.Zero
		return
	}
	p.SGSTRate, p.CGSTRate = gst.SplitGST(p.TaxRate)
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:              p.ID,
		CompanyID:       p.CompanyID,
		Name:            p.Name,
		HSNCode:         p.HSNCode,
		Barcode:         p.Barcode,
		Unit:            p.Unit,
		SalesRate:       p.SalesRate,
		PurchaseRate:    p.PurchaseRate,
		DiscountPercent: p.DiscountPercent,
		MRP:             p.MRP,
		TaxRate:         p.TaxRate,
		SGSTRate:        p.SGSTRate,
		CGSTRate:        p.CGSTRate,
		OpeningStock:    p.OpeningStock,
		CurrentStock:    p.CurrentStock,
		LowStock:        p.LowStock,
		Type:            p.Type,
		TrackStock:      p.TrackStock,
		IsGSTRegistered: p.IsGSTRegistered,
		StockStatus:     p.StockStatus(),
	}
}

func boolOr(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}
