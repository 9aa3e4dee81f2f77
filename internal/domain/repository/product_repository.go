package repository

import "github.com/gstdesk/gstdesk-api/internal/domain/entity"

// ProductRepository is the persistence port for Product.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	ListByCompany(companyID string) ([]*entity.Product, error)
	Update(product *entity.Product) error
	Delete(id string) error
}
