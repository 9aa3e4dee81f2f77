package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/gstdesk/gstdesk-api/internal/domain"
	"github.com/gstdesk/gstdesk-api/internal/domain/entity"
	"github.com/gstdesk/gstdesk-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implements ProductRepository (usable with pool or tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository builds the adapter. Pass pool or tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `id, company_id, name, hsn_code, barcode, unit, sales_rate,
	purchase_rate, discount_percent, mrp, tax_rate, sgst_rate, cgst_rate,
	opening_stock, current_stock, low_stock_threshold, product_type, track_stock,
	is_gst_registered, created_at, updated_at`

// Create persists a new product.
func (r *ProductRepo) Create(product *entity.Product) error {
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.CompanyID, product.Name, product.HSNCode, product.Barcode,
		product.Unit, product.SalesRate, product.PurchaseRate, product.DiscountPercent,
		product.MRP, product.TaxRate, product.SGSTRate, product.CGSTRate,
		product.OpeningStock, product.CurrentStock, product.LowStock, product.Type,
		product.TrackStock, product.IsGSTRegistered, product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateName
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID fetches a product by ID.
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	p, err := scanProduct(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// ListByCompany lists the company's products ordered by name.
func (r *ProductRepo) ListByCompany(companyID string) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE company_id = $1 ORDER BY name`
	rows, err := r.q.Query(context.Background(), query, companyID)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// Update rewrites a product.
func (r *ProductRepo) Update(product *entity.Product) error {
	query := `
		UPDATE products SET name = $2, hsn_code = $3, barcode = $4, unit = $5,
			sales_rate = $6, purchase_rate = $7, discount_percent = $8, mrp = $9,
			tax_rate = $10, sgst_rate = $11, cgst_rate = $12, opening_stock = $13,
			current_stock = $14, low_stock_threshold = $15, product_type = $16,
			track_stock = $17, is_gst_registered = $18, updated_at = $19
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.Name, product.HSNCode, product.Barcode, product.Unit,
		product.SalesRate, product.PurchaseRate, product.DiscountPercent, product.MRP,
		product.TaxRate, product.SGSTRate, product.CGSTRate, product.OpeningStock,
		product.CurrentStock, product.LowStock, product.Type, product.TrackStock,
		product.IsGSTRegistered, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateName
		}
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// Delete removes a product by ID. Invoice lines keep their snapshotted
// product name and HSN.
func (r *ProductRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	var hsn, barcode *string
	err := row.Scan(
		&p.ID, &p.CompanyID, &p.Name, &hsn, &barcode, &p.Unit, &p.SalesRate,
		&p.PurchaseRate, &p.DiscountPercent, &p.MRP, &p.TaxRate, &p.SGSTRate,
		&p.CGSTRate, &p.OpeningStock, &p.CurrentStock, &p.LowStock, &p.Type,
		&p.TrackStock, &p.IsGSTRegistered, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.HSNCode = derefStr(hsn)
	p.Barcode = derefStr(barcode)
	return &p, nil
}
