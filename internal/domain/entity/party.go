package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Party types.
const (
	PartyTypeCustomer = "Customer"
	PartyTypeSupplier = "Supplier"
	PartyTypeBoth     = "Both"
)

// Opening balance sign conventions: dr = the party owes the business,
// cr = the business owes the party.
const (
	BalanceTypeDebit  = "dr"
	BalanceTypeCredit = "cr"
)

// Party represents a customer and/or supplier. Name is unique per company
// under case-insensitive comparison and stored trimmed and upper-cased.
type Party struct {
	ID              string
	CompanyID       string
	Name            string
	Mobile          string
	Email           string
	Type            string // Customer, Supplier, Both
	GSTNumber       string
	PAN             string
	Address         string
	City            string
	State           string
	Pincode         string
	OpeningBalance  decimal.Decimal
	BalanceType     string // dr, cr
	CreditLimit     decimal.Decimal
	CreditDays      int
	IsGSTRegistered bool   // derived: true iff GSTNumber is present
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
