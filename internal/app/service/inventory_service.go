package service

import (
	"context"
	"errors"
	"wings_cafe/internal/common"
	"wings_cafe/internal/domain/model"
	"wings_cafe/internal/domain/repository"
	"wings_cafe/internal/platform/cache"

	"github.com/shopspring/decimal"
)

type InventoryService struct {
	productRepo  repository.ProductRepository
	productCache *cache.ProductCache
}

func NewInventoryService(productRepo repository.ProductRepository, productCache *cache.ProductCache) *InventoryService {
	return &InventoryService{productRepo: productRepo, productCache: productCache}
}

// ProductRequest carries the full field set for create and update. Pointer
// fields distinguish "absent" from zero values, so a quantity of 0 is valid
// input while a missing quantity is not.
type ProductRequest struct {
	Name        string           `json:"name"`
	Description *string          `json:"description"`
	Category    string           `json:"category"`
	Price       *decimal.Decimal `json:"price"`
	Quantity    *int             `json:"quantity"`
}

func (req ProductRequest) validate() error {
	if req.Name == "" || req.Description == nil || req.Category == "" || req.Price == nil || req.Quantity == nil {
		return common.Errorf("all fields are required: %w", common.ErrValidation)
	}
	if req.Price.IsNegative() {
		return common.Errorf("price must not be negative: %w", common.ErrValidation)
	}
	if *req.Quantity < 0 {
		return common.Errorf("quantity must not be negative: %w", common.ErrValidation)
	}
	return nil
}

func (s *InventoryService) List(ctx context.Context) ([]model.Product, error) {
	if products, ok := s.productCache.GetProducts(ctx); ok {
		return products, nil
	}

	products, err := s.productRepo.List(ctx)
	if err != nil {
		return nil, common.Errorf("failed to list products: %w", err)
	}
	s.productCache.SetProducts(ctx, products)
	return products, nil
}

func (s *InventoryService) Create(ctx context.Context, req ProductRequest) (*model.Product, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	product := &model.Product{
		Name:        req.Name,
		Description: *req.Description,
		Category:    req.Category,
		Price:       *req.Price,
		Quantity:    *req.Quantity,
	}
	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, common.Errorf("failed to create product: %w", err)
	}

	s.productCache.Invalidate(ctx)
	return product, nil
}

func (s *InventoryService) Update(ctx context.Context, id int64, req ProductRequest) (*model.Product, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	product := &model.Product{
		ID:          id,
		Name:        req.Name,
		Description: *req.Description,
		Category:    req.Category,
		Price:       *req.Price,
		Quantity:    *req.Quantity,
	}
	if err := s.productRepo.Update(ctx, product); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.Errorf("product not found: %w", common.ErrNotFound)
		}
		return nil, common.Errorf("failed to update product: %w", err)
	}

	s.productCache.Invalidate(ctx)
	return product, nil
}

// Sell decrements a product's quantity by amount. The decrement and its
// stock check commit as one statement, so the quantity can never be driven
// below zero by concurrent sells.
func (s *InventoryService) Sell(ctx context.Context, id int64, amount int) (*model.Product, error) {
	if amount < 1 {
		return nil, common.Errorf("sell amount must be at least 1: %w", common.ErrValidation)
	}

	product, err := s.productRepo.DecrementQuantity(ctx, id, amount)
	if err == nil {
		s.productCache.Invalidate(ctx)
		return product, nil
	}
	if !errors.Is(err, common.ErrNotFound) {
		return nil, common.Errorf("failed to sell product: %w", err)
	}

	// No row matched: either the product does not exist or stock ran short.
	if _, findErr := s.productRepo.FindByID(ctx, id); findErr != nil {
		if errors.Is(findErr, common.ErrNotFound) {
			return nil, common.Errorf("product not found: %w", common.ErrNotFound)
		}
		return nil, common.Errorf("failed to sell product: %w", findErr)
	}
	return nil, common.Errorf("product is out of stock: %w", common.ErrOutOfStock)
}

func (s *InventoryService) Delete(ctx context.Context, id int64) error {
	if err := s.productRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return common.Errorf("product not found: %w", common.ErrNotFound)
		}
		return common.Errorf("failed to delete product: %w", err)
	}

	s.productCache.Invalidate(ctx)
	return nil
}
