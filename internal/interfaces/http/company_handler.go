package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gstdesk/gstdesk-api/internal/application/billing"
	"github.com/gstdesk/gstdesk-api/internal/application/dto"
)

// CompanyHandler handles the issuing business profile.
type CompanyHandler struct {
	uc *billing.CompanyUseCase
}

// NewCompanyHandler builds the handler.
func NewCompanyHandler(uc *billing.CompanyUseCase) *CompanyHandler {
	return &CompanyHandler{uc: uc}
}

// Create POST /api/companies (public, used on first-run setup before any
// user exists).
func (h *CompanyHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCompanyRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	company, err := h.uc.Create(in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(company)
}

// Get GET /api/company (protected, returns the caller's own company).
func (h *CompanyHandler) Get(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	company, err := h.uc.Get(companyID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(company)
}

// Update PUT /api/company (protected, rewrites the caller's own company).
func (h *CompanyHandler) Update(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	var in dto.UpdateCompanyRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	company, err := h.uc.Update(companyID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(company)
}
