package repository

import "github.com/gstdesk/gstdesk-api/internal/domain/entity"

// CompanyRepository is the persistence port for Company.
type CompanyRepository interface {
	Create(company *entity.Company) error
	GetByID(id string) (*entity.Company, error)
	List() ([]*entity.Company, error)
	Update(company *entity.Company) error
}
