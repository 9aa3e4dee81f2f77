package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product types. Stock fields are meaningless for services.
const (
	ProductTypeGoods   = "Goods"
	ProductTypeService = "Service"
)

// Stock status labels derived from current stock vs. the low-stock threshold.
const (
	StockStatusService  = "Service"
	StockStatusInStock  = "In Stock"
	StockStatusLowStock = "Low Stock"
	StockStatusOut      = "Out of Stock"
)

// DefaultLowStockThreshold applies when a product has no explicit threshold.
const DefaultLowStockThreshold = 5

// Product represents goods or a service sold. SGSTRate and CGSTRate are each
// half of TaxRate when the product is GST-registered, zero otherwise. Stock
// is informational only: invoices never decrement it.
type Product struct {
	ID              string
	CompanyID       string
	Name            string
	HSNCode         string // 4, 6 or 8 digits
	Barcode         string
	Unit            string
	SalesRate       decimal.Decimal
	PurchaseRate    decimal.Decimal
	DiscountPercent decimal.Decimal
	MRP             decimal.Decimal
	TaxRate         decimal.Decimal // GST percent
	SGSTRate        decimal.Decimal
	CGSTRate        decimal.Decimal
	OpeningStock    decimal.Decimal
	CurrentStock    decimal.Decimal
	LowStock        decimal.Decimal // threshold; zero means use the default
	Type            string          // Goods, Service
	TrackStock      bool
	IsGSTRegistered bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// StockStatus classifies the product's availability. Services have no stock;
// for goods the live CurrentStock is preferred, falling back to OpeningStock.
func (p *Product) StockStatus() string {
	if p.Type == ProductTypeService {
		return StockStatusService
	}
	stock := p.CurrentStock
	if stock.IsZero() && !p.OpeningStock.IsZero() {
		stock = p.OpeningStock
	}
	threshold := p.LowStock
	if threshold.IsZero() {
		threshold = decimal.NewFromInt(DefaultLowStockThreshold)
	}
	switch {
	case stock.LessThanOrEqual(decimal.Zero):
		return StockStatusOut
	case stock.LessThanOrEqual(threshold):
		return StockStatusLowStock
	default:
		return StockStatusInStock
	}
}
