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
)

// ProductUseCase CRUD de produtos do catálogo. Estoque e custo não são
// editáveis por aqui: depois da criação só mudam pelo livro de estoque.
type ProductUseCase struct {
	productRepo repository.ProductRepository
}

// NewProductUseCase constrói o caso de uso.
func NewProductUseCase(productRepo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{productRepo: productRepo}
}

// Create cadastra um produto. O estoque inicial informado é a semente do
// livro: os movimentos posteriores somam sobre ele. SKU é único por empresa.
func (uc *ProductUseCase) Create(ctx context.Context, companyID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.SKU == "" || in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.InitialStock.IsNegative() || in.MinStock.IsNegative() ||
		in.CostPrice.IsNegative() || in.SalePrice.IsNegative() {
		return nil, domain.ErrInvalidInput
	}

	existing, err := uc.productRepo.GetByCompanyAndSKU(companyID, in.SKU)
	if err != nil {
		return nil, fmt.Errorf("verificando SKU: %w", err)
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	now := time.Now()
	product := &entity.Product{
		ID:           uuid.New().String(),
		CompanyID:    companyID,
		SKU:          in.SKU,
		Name:         in.Name,
		Category:     in.Category,
		CostPrice:    in.CostPrice,
		SalePrice:    in.SalePrice,
		Stock:        in.InitialStock,
		MinStock:     in.MinStock,
		SoldByBox:    in.SoldByBox,
		SoldByWeight: in.SoldByWeight,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.productRepo.Create(product); err != nil {
		return nil, fmt.Errorf("criando produto: %w", err)
	}
	return ToProductResponse(product), nil
}

// Update altera os campos cadastrais. Stock e CostPrice ficam de fora de
// propósito: mudam só por entrada, ajuste ou venda.
func (uc *ProductUseCase) Update(ctx context.Context, companyID, productID string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.getOwned(companyID, productID)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		if *in.Name == "" {
			return nil, domain.ErrInvalidInput
		}
		product.Name = *in.Name
	}
	if in.Category != nil {
		product.Category = *in.Category
	}
	if in.SalePrice != nil {
		if in.SalePrice.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product.SalePrice = *in.SalePrice
	}
	if in.MinStock != nil {
		if in.MinStock.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product.MinStock = *in.MinStock
	}
	if in.SoldByBox != nil {
		product.SoldByBox = *in.SoldByBox
	}
	if in.SoldByWeight != nil {
		product.SoldByWeight = *in.SoldByWeight
	}
	if in.Active != nil {
		product.Active = *in.Active
	}
	product.UpdatedAt = time.Now()

	if err := uc.productRepo.Update(product); err != nil {
		return nil, fmt.Errorf("atualizando produto: %w", err)
	}
	return ToProductResponse(product), nil
}

// GetByID devolve um produto da empresa.
func (uc *ProductUseCase) GetByID(ctx context.Context, companyID, productID string) (*dto.ProductResponse, error) {
	product, err := uc.getOwned(companyID, productID)
	if err != nil {
		return nil, err
	}
	return ToProductResponse(product), nil
}

// List devolve os produtos da empresa, cada um com os derivados de leitura.
// lowOnly filtra só os abaixo do estoque mínimo.
func (uc *ProductUseCase) List(ctx context.Context, companyID string, page dto.PageRequest, lowOnly bool) (*dto.ProductListResponse, error) {
	page.DefaultPage()
	products, err := uc.productRepo.ListByCompany(companyID, page.Limit, page.Offset)
	if err != nil {
		return nil, fmt.Errorf("listando produtos: %w", err)
	}

	items := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		if lowOnly && !p.LowStock() {
			continue
		}
		items = append(items, *ToProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

func (uc *ProductUseCase) getOwned(companyID, productID string) (*entity.Product, error) {
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, fmt.Errorf("buscando produto: %w", err)
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if product.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return product, nil
}

// ToProductResponse converte a entidade recalculando os derivados de leitura
// (estoque baixo e margem), que nunca são armazenados.
func ToProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:           p.ID,
		CompanyID:    p.CompanyID,
		SKU:          p.SKU,
		Name:         p.Name,
		Category:     p.Category,
		CostPrice:    p.CostPrice,
		SalePrice:    p.SalePrice,
		Stock:        p.Stock,
		MinStock:     p.MinStock,
		LowStock:     p.LowStock(),
		MarginPct:    p.Margin(),
		SoldByBox:    p.SoldByBox,
		SoldByWeight: p.SoldByWeight,
		Active:       p.Active,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}
