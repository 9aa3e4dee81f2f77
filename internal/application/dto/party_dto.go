package dto

import "github.com/shopspring/decimal"

// CreatePartyRequest body for POST /api/parties.
type CreatePartyRequest struct {
	Name           string          `json:"name" validate:"required"`
	Mobile         string          `json:"mobile,omitempty" validate:"inmobile"`
	Email          string          `json:"email,omitempty" validate:"omitempty,email"`
	Type           string          `json:"type" validate:"omitempty,oneof=Customer Supplier Both"`
	GSTNumber      string          `json:"gst_number,omitempty" validate:"gstin"`
	PAN            string          `json:"pan,omitempty" validate:"pan"`
	Address        string          `json:"address,omitempty"`
	City           string          `json:"city,omitempty"`
	State          string          `json:"state,omitempty"`
	Pincode        string          `json:"pincode,omitempty" validate:"pincode"`
	OpeningBalance decimal.Decimal `json:"opening_balance"`
	BalanceType    string          `json:"balance_type,omitempty" validate:"omitempty,oneof=dr cr"`
	CreditLimit    decimal.Decimal `json:"credit_limit"`
	CreditDays     int             `json:"credit_days"`
}

// UpdatePartyRequest body for PUT /api/parties/:id. Same shape as create.
type UpdatePartyRequest = CreatePartyRequest

// PartyResponse party in responses.
type PartyResponse struct {
	ID              string          `json:"id"`
	CompanyID       string          `json:"company_id"`
	Name            string          `json:"name"`
	Mobile          string          `json:"mobile,omitempty"`
	Email           string          `json:"email,omitempty"`
	Type            string          `json:"type"`
	GSTNumber       string          `json:"gst_number,omitempty"`
	PAN             string          `json:"pan,omitempty"`
	Address         string          `json:"address,omitempty"`
	City            string          `json:"city,omitempty"`
	State           string          `json:"state,omitempty"`
	Pincode         string          `json:"pincode,omitempty"`
	OpeningBalance  decimal.Decimal `json:"opening_balance"`
	BalanceType     string          `json:"balance_type"`
	CreditLimit     decimal.Decimal `json:"credit_limit"`
	CreditDays      int             `json:"credit_days"`
	IsGSTRegistered bool            `json:"is_gst_registered"`
	Balance         decimal.Decimal `json:"balance"`
	BalanceDisplay  string          `json:"balance_display,omitempty"`
}
