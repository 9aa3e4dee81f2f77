package repository

import "github.com/gstdesk/gstdesk-api/internal/domain/entity"

// UserRepository is the persistence port for User (auth).
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	FindByEmail(email string) (*entity.User, error)
	GetByEmailAndCompany(email, companyID string) (*entity.User, error)
}
