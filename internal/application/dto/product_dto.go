package dto

import "github.com/shopspring/decimal"

// CreateProductRequest body for POST /api/products.
type CreateProductRequest struct {
	Name            string          `json:"name" validate:"required"`
	HSNCode         string          `json:"hsn_code,omitempty" validate:"hsn"`
	Barcode         string          `json:"barcode,omitempty"`
	Unit            string          `json:"unit,omitempty"`
	SalesRate       decimal.Decimal `json:"sales_rate"`
	PurchaseRate    decimal.Decimal `json:"purchase_rate"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	MRP             decimal.Decimal `json:"mrp"`
	TaxRate         decimal.Decimal `json:"tax_rate"`
	OpeningStock    decimal.Decimal `json:"opening_stock"`
	LowStock        decimal.Decimal `json:"low_stock"`
	Type            string          `json:"type,omitempty" validate:"omitempty,oneof=Goods Service"`
	TrackStock      *bool           `json:"track_stock,omitempty"`
	IsGSTRegistered *bool           `json:"is_gst_registered,omitempty"`
}

// UpdateProductRequest body for PUT /api/products/:id.
type UpdateProductRequest = CreateProductRequest

// ProductResponse product in responses. SGSTRate and CGSTRate are each half
// of TaxRate; StockStatus is derived from stock vs the low-stock threshold.
type ProductResponse struct {
	ID              string          `json:"id"`
	CompanyID       string          `json:"company_id"`
	Name            string          `json:"name"`
	HSNCode         string          `json:"hsn_code,omitempty"`
	Barcode         string          `json:"barcode,omitempty"`
	Unit            string          `json:"unit"`
	SalesRate       decimal.Decimal `json:"sales_rate"`
	PurchaseRate    decimal.Decimal `json:"purchase_rate"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	MRP             decimal.Decimal `json:"mrp"`
	TaxRate         decimal.Decimal `json:"tax_rate"`
	SGSTRate        decimal.Decimal `json:"sgst_rate"`
	CGSTRate        decimal.Decimal `json:"cgst_rate"`
	OpeningStock    decimal.Decimal `json:"opening_stock"`
	CurrentStock    decimal.Decimal `json:"current_stock"`
	LowStock        decimal.Decimal `json:"low_stock"`
	Type            string          `json:"type"`
	TrackStock      bool            `json:"track_stock"`
	IsGSTRegistered bool            `json:"is_gst_registered"`
	StockStatus     string          `json:"stock_status"`
}
