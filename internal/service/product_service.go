package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"bazaar/internal/auth"
	"bazaar/internal/cache"
	apperrors "bazaar/internal/errors"
	"bazaar/internal/model"
	"bazaar/internal/repository"
)

const (
	productCacheTTL     = 5 * time.Minute
	productListCacheKey = "products:all"
)

// UpdateProductInput carries the fields a product owner may change. Nil
// fields are left untouched. The owner is deliberately absent: it is set at
// creation and never reassigned.
type UpdateProductInput struct {
	Name        *string
	Description *string
	Price       *float64
}

// ProductService exposes product operations. Mutations check existence first
// (a missing product is not-found, whoever asks) and ownership second.
type ProductService interface {
	Create(ctx context.Context, ownerID uuid.UUID, name, description string, price float64) (*model.Product, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Product, error)
	List(ctx context.Context) ([]model.Product, error)
	Update(ctx context.Context, callerID, id uuid.UUID, in UpdateProductInput) (*model.Product, error)
	Delete(ctx context.Context, callerID, id uuid.UUID) error
}

type productService struct {
	repo  repository.ProductRepository
	cache *cache.Client
}

// NewProductService builds a ProductService with repository and cache.
func NewProductService(repo repository.ProductRepository, cache *cache.Client) ProductService {
	return &productService{repo: repo, cache: cache}
}

func (s *productService) cacheKey(id uuid.UUID) string {
	return fmt.Sprintf("product:%s", id)
}

// Create persists a product owned by the caller.
func (s *productService) Create(ctx context.Context, ownerID uuid.UUID, name, description string, price float64) (*model.Product, error) {
	product := &model.Product{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		Name:        name,
		Description: description,
		Price:       price,
	}
	if err := s.repo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	_ = s.cache.Delete(ctx, productListCacheKey)
	return product, nil
}

// Get returns a product by id, serving from cache when possible.
func (s *productService) Get(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	if data, _ := s.cache.Get(ctx, s.cacheKey(id)); data != nil {
		var cached model.Product
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrProductNotFound
		}
		return nil, fmt.Errorf("find product: %w", err)
	}

	if payload, err := json.Marshal(product); err == nil {
		_ = s.cache.Set(ctx, s.cacheKey(id), payload, productCacheTTL)
	}
	return product, nil
}

// List returns all products, newest first.
func (s *productService) List(ctx context.Context) ([]model.Product, error) {
	if data, _ := s.cache.Get(ctx, productListCacheKey); data != nil {
		var cached []model.Product
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
	}

	products, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	if payload, err := json.Marshal(products); err == nil {
		_ = s.cache.Set(ctx, productListCacheKey, payload, productCacheTTL)
	}
	return products, nil
}

// Update applies the given fields to a product after the caller passes the
// ownership check. OwnerID is never copied from input.
func (s *productService) Update(ctx context.Context, callerID, id uuid.UUID, in UpdateProductInput) (*model.Product, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrProductNotFound
		}
		return nil, fmt.Errorf("find product: %w", err)
	}

	if err := auth.Authorize(product.OwnerID, callerID, auth.OpUpdate); err != nil {
		return nil, err
	}

	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Price != nil {
		product.Price = *in.Price
	}

	if err := s.repo.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}

	_ = s.cache.Delete(ctx, s.cacheKey(id))
	_ = s.cache.Delete(ctx, productListCacheKey)
	return product, nil
}

// Delete removes a product after the caller passes the ownership check.
func (s *productService) Delete(ctx context.Context, callerID, id uuid.UUID) error {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrProductNotFound
		}
		return fmt.Errorf("find product: %w", err)
	}

	if err := auth.Authorize(product.OwnerID, callerID, auth.OpDelete); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}

	_ = s.cache.Delete(ctx, s.cacheKey(id))
	_ = s.cache.Delete(ctx, productListCacheKey)
	return nil
}
