package repository

import "github.com/gstdesk/gstdesk-api/internal/domain/entity"

// PartyRepository is the persistence port for Party.
type PartyRepository interface {
	Create(party *entity.Party) error
	GetByID(id string) (*entity.Party, error)
	// FindByName looks up a party by case-insensitive name within the
	// company, skipping excludeID (pass "" on create). Used for the
	// duplicate-name guard.
	FindByName(companyID, name, excludeID string) (*entity.Party, error)
	// ListByCompany returns parties, optionally filtered by type. A type
	// filter matches the exact type or the catch-all "Both".
	ListByCompany(companyID, typeFilter string) ([]*entity.Party, error)
	Update(party *entity.Party) error
	Delete(id string) error
	// CountReferences reports how many invoices and payments point at the
	// party, for the delete guard.
	CountReferences(partyID string) (invoices, payments int, err error)
}
