package dto

// CreateCompanyRequest body for POST /api/companies.
type CreateCompanyRequest struct {
	Name    string `json:"name" validate:"required"`
	GSTIN   string `json:"gstin,omitempty" validate:"gstin"`
	Mobile  string `json:"mobile,omitempty" validate:"inmobile"`
	Email   string `json:"email,omitempty" validate:"omitempty,email"`
	Address string `json:"address,omitempty"`
	State   string `json:"state,omitempty"`
}

// UpdateCompanyRequest body for PUT /api/companies/:id.
type UpdateCompanyRequest = CreateCompanyRequest

// CompanyResponse company in responses. State falls back to the GSTIN's
// state-code name when not set explicitly.
type CompanyResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	GSTIN   string `json:"gstin,omitempty"`
	Mobile  string `json:"mobile,omitempty"`
	Email   string `json:"email,omitempty"`
	Address string `json:"address,omitempty"`
	State   string `json:"state,omitempty"`
	Status  string `json:"status"`
}
