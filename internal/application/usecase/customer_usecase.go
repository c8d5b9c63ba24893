package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/gestorpro/gestor-api/internal/application/dto"
	"github.com/gestorpro/gestor-api/internal/domain"
	"github.com/gestorpro/gestor-api/internal/domain/entity"
	"github.com/gestorpro/gestor-api/internal/domain/repository"
	"github.com/gestorpro/gestor-api/pkg/fiscal"
)

// CustomerUseCase CRUD de clientes da empresa.
type CustomerUseCase struct {
	customerRepo repository.CustomerRepository
}

// NewCustomerUseCase constrói o caso de uso.
func NewCustomerUseCase(customerRepo repository.CustomerRepository) *CustomerUseCase {
	return &CustomerUseCase{customerRepo: customerRepo}
}

// Create cadastra um cliente. Documento é opcional, mas quando presente
// precisa ser um CPF/CNPJ válido.
func (uc *CustomerUseCase) Create(ctx context.Context, companyID string, in dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	document := ""
	if in.Document != "" {
		document = fiscal.Normalize(in.Document)
		if err := fiscal.ValidateTaxID(document); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidTaxID, err)
		}
	}

	now := time.Now()
	customer := &entity.Customer{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		Name:      in.Name,
		Document:  document,
		Phone:     in.Phone,
		Address:   in.Address,
		City:      in.City,
		Status:    entity.CustomerAtivo,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.customerRepo.Create(customer); err != nil {
		return nil, fmt.Errorf("criando cliente: %w", err)
	}
	return toCustomerResponse(customer), nil
}

// Update altera os dados do cliente.
func (uc *CustomerUseCase) Update(ctx context.Context, companyID, customerID string, in dto.UpdateCustomerRequest) (*dto.CustomerResponse, error) {
	customer, err := uc.getOwned(companyID, customerID)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		if *in.Name == "" {
			return nil, domain.ErrInvalidInput
		}
		customer.Name = *in.Name
	}
	if in.Document != nil {
		document := ""
		if *in.Document != "" {
			document = fiscal.Normalize(*in.Document)
			if err := fiscal.ValidateTaxID(document); err != nil {
				return nil, fmt.Errorf("%w: %v", domain.ErrInvalidTaxID, err)
			}
		}
		customer.Document = document
	}
	if in.Phone != nil {
		customer.Phone = *in.Phone
	}
	if in.Address != nil {
		customer.Address = *in.Address
	}
	if in.City != nil {
		customer.City = *in.City
	}
	if in.Status != nil {
		if *in.Status != entity.CustomerAtivo && *in.Status != entity.CustomerInativo {
			return nil, domain.ErrInvalidInput
		}
		customer.Status = *in.Status
	}
	customer.UpdatedAt = time.Now()

	if err := uc.customerRepo.Update(customer); err != nil {
		return nil, fmt.Errorf("atualizando cliente: %w", err)
	}
	return toCustomerResponse(customer), nil
}

// GetByID devolve um cliente da empresa.
func (uc *CustomerUseCase) GetByID(ctx context.Context, companyID, customerID string) (*dto.CustomerResponse, error) {
	customer, err := uc.getOwned(companyID, customerID)
	if err != nil {
		return nil, err
	}
	return toCustomerResponse(customer), nil
}

// List devolve os clientes da empresa.
func (uc *CustomerUseCase) List(ctx context.Context, companyID string, page dto.PageRequest) ([]dto.CustomerResponse, error) {
	page.DefaultPage()
	customers, err := uc.customerRepo.ListByCompany(companyID, page.Limit, page.Offset)
	if err != nil {
		return nil, fmt.Errorf("listando clientes: %w", err)
	}
	out := make([]dto.CustomerResponse, 0, len(customers))
	for _, c := range customers {
		out = append(out, *toCustomerResponse(c))
	}
	return out, nil
}

func (uc *CustomerUseCase) getOwned(companyID, customerID string) (*entity.Customer, error) {
	customer, err := uc.customerRepo.GetByID(customerID)
	if err != nil {
		return nil, fmt.Errorf("buscando cliente: %w", err)
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	if customer.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return customer, nil
}

func toCustomerResponse(c *entity.Customer) *dto.CustomerResponse {
	return &dto.CustomerResponse{
		ID:        c.ID,
		CompanyID: c.CompanyID,
		Name:      c.Name,
		Document:  c.Document,
		Phone:     c.Phone,
		Address:   c.Address,
		City:      c.City,
		Status:    c.Status,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
