package billing

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/gstdesk/gstdesk-api/internal/application/dto"
	"github.com/gstdesk/gstdesk-api/internal/domain"
	"github.com/gstdesk/gstdesk-api/internal/domain/entity"
	"github.com/gstdesk/gstdesk-api/internal/domain/gst"
	"github.com/gstdesk/gstdesk-api/internal/domain/repository"
)

// CompanyUseCase maintains the issuing business profile. The company GSTIN
// decides GST applicability and the intra/inter-state split of every invoice.
type CompanyUseCase struct {
	repo repository.CompanyRepository
}

// NewCompanyUseCase builds the use case.
func NewCompanyUseCase(repo repository.CompanyRepository) *CompanyUseCase {
	return &CompanyUseCase{repo: repo}
}

// Create registers a company.
func (uc *CompanyUseCase) Create(in dto.CreateCompanyRequest) (*dto.CompanyResponse, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, fmt.Errorf("%w: company name is required", domain.ErrInvalidInput)
	}
	if err := dto.Validate.Struct(in); err != nil {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	company := &entity.Company{
		ID:        uuid.New().String(),
		Name:      in.Name,
		GSTIN:     strings.ToUpper(strings.TrimSpace(in.GSTIN)),
		Mobile:    in.Mobile,
		Email:     in.Email,
		Address:   in.Address,
		State:     in.State,
		Status:    "active",
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(company); err != nil {
		return nil, err
	}
	return toCompanyResponse(company), nil
}

// Get fetches the company profile.
func (uc *CompanyUseCase) Get(id string) (*dto.CompanyResponse, error) {
	company, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	return toCompanyResponse(company), nil
}

// Update rewrites the company profile.
func (uc *CompanyUseCase) Update(id string, in dto.UpdateCompanyRequest) (*dto.CompanyResponse, error) {
	company, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	if strings.TrimSpace(in.Name) == "" {
		return nil, fmt.Errorf("%w: company name is required", domain.ErrInvalidInput)
	}
	if err := dto.Validate.Struct(in); err != nil {
		return nil, domain.ErrInvalidInput
	}
	company.Name = in.Name
	company.GSTIN = strings.ToUpper(strings.TrimSpace(in.GSTIN))
	company.Mobile = in.Mobile
	company.Email = in.Email
	company.Address = in.Address
	company.State = in.State
	company.UpdatedAt = time.Now()
	if err := uc.repo.Update(company); err != nil {
		return nil, err
	}
	return toCompanyResponse(company), nil
}

func toCompanyResponse(c *entity.Company) *dto.CompanyResponse {
	state := c.State
	if state == "" {
		state = gst.StateFromGSTIN(c.GSTIN)
	}
	return &dto.CompanyResponse{
		ID:      c.ID,
		Name:    c.Name,
		GSTIN:   c.GSTIN,
		Mobile:  c.Mobile,
		Email:   c.Email,
		Address: c.Address,
		State:   state,
		Status:  c.Status,
	}
}
