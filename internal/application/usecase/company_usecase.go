package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/gestorpro/gestor-api/internal/application/dto"
	"github.com/gestorpro/gestor-api/internal/domain"
	"github.com/gestorpro/gestor-api/internal/domain/entity"
	"github.com/gestorpro/gestor-api/internal/domain/repository"
	"github.com/gestorpro/gestor-api/pkg/fiscal"
)

// CompanyUseCase consulta e atualização cadastral da empresa do chamador.
// Empresas nascem no signup; não há criação avulsa por aqui.
type CompanyUseCase struct {
	companyRepo repository.CompanyRepository
}

// NewCompanyUseCase constrói o caso de uso.
func NewCompanyUseCase(companyRepo repository.CompanyRepository) *CompanyUseCase {
	return &CompanyUseCase{companyRepo: companyRepo}
}

// GetByID devolve a empresa.
func (uc *CompanyUseCase) GetByID(ctx context.Context, companyID string) (*dto.CompanyResponse, error) {
	company, err := uc.companyRepo.GetByID(companyID)
	if err != nil {
		return nil, fmt.Errorf("buscando empresa: %w", err)
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	return toCompanyResponse(company), nil
}

// Update altera dados cadastrais. CNPJ/CPF é validado quando informado.
func (uc *CompanyUseCase) Update(ctx context.Context, companyID string, in dto.UpdateCompanyRequest) (*dto.CompanyResponse, error) {
	company, err := uc.companyRepo.GetByID(companyID)
	if err != nil {
		return nil, fmt.Errorf("buscando empresa: %w", err)
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}

	if in.Name != nil {
		if *in.Name == "" {
			return nil, domain.ErrInvalidInput
		}
		company.Name = *in.Name
	}
	if in.TaxID != nil {
		taxID := ""
		if *in.TaxID != "" {
			taxID = fiscal.Normalize(*in.TaxID)
			if err := fiscal.ValidateTaxID(taxID); err != nil {
				return nil, fmt.Errorf("%w: %v", domain.ErrInvalidTaxID, err)
			}
		}
		company.TaxID = taxID
	}
	if in.Phone != nil {
		company.Phone = *in.Phone
	}
	if in.Email != nil {
		company.Email = *in.Email
	}
	company.UpdatedAt = time.Now()

	if err := uc.companyRepo.Update(company); err != nil {
		return nil, fmt.Errorf("atualizando empresa: %w", err)
	}
	return toCompanyResponse(company), nil
}

// List devolve todas as empresas (visão do super-admin).
func (uc *CompanyUseCase) List(ctx context.Context, page dto.PageRequest) ([]dto.CompanyResponse, error) {
	page.DefaultPage()
	companies, err := uc.companyRepo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, fmt.Errorf("listando empresas: %w", err)
	}
	out := make([]dto.CompanyResponse, 0, len(companies))
	for _, c := range companies {
		out = append(out, *toCompanyResponse(c))
	}
	return out, nil
}

func toCompanyResponse(c *entity.Company) *dto.CompanyResponse {
	return &dto.CompanyResponse{
		ID:        c.ID,
		Name:      c.Name,
		TaxID:     c.TaxID,
		Phone:     c.Phone,
		Email:     c.Email,
		Status:    c.Status,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
