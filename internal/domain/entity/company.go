package entity

import "time"

// Company represents the business issuing invoices (tenant). Its GSTIN drives
// the GST / Non-GST classification of every invoice.
type Company struct {
	ID        string
	Name      string
	GSTIN     string
	Mobile    string
	Email     string
	Address   string
	State     string
	Status    string // active, suspended, inactive
	CreatedAt time.Time
	UpdatedAt time.Time
}
