package service

import (
	"errors"
	"fmt"

	"go-pos-api/internal/model"
	"go-pos-api/internal/repository"
	"go-pos-api/internal/ws"
	"go-pos-api/pkg/validator"

	"github.com/google/uuid"
)

var (
	ErrProductCodeExists = errors.New("product code already exists")
	ErrProductNotFound   = errors.New("product not found")
	ErrCategoryNotFound  = errors.New("category not found")
)

type ProductService interface {
	Create(req *model.Product, actorName string) error
	GetAll() ([]model.Product, error)
	GetByID(id uuid.UUID) (*model.Product, error)
	Update(id uuid.UUID, req *model.Product, actorName string) (*model.Product, error)
	Delete(id uuid.UUID) error
}

type productService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	wsHub        *ws.Hub
}

func NewProductService(pRepo repository.ProductRepository, cRepo repository.CategoryRepository, hub *ws.Hub) ProductService {
	return &productService{
		productRepo:  pRepo,
		categoryRepo: cRepo,
		wsHub:        hub,
	}
}

func (s *productService) Create(req *model.Product, actorName string) error {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return fmt.Errorf("validation failed: field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag)
	}
	if req.Price.IsNegative() {
		return errors.New("price must not be negative")
	}

	// Duplicate code check (business key)
	existing, _ := s.productRepo.FindByCode(req.Code)
	if existing != nil && existing.ID != uuid.Nil {
		return ErrProductCodeExists
	}

	if req.CategoryID != nil {
		if _, err := s.categoryRepo.FindByID(*req.CategoryID); err != nil {
			return ErrCategoryNotFound
		}
	}

	if err := s.productRepo.Create(req); err != nil {
		return err
	}

	go s.wsHub.BroadcastJSON(map[string]interface{}{
		"type":   "pos_update",
		"action": "product_created",
		"product": map[string]interface{}{
			"id":    req.ID,
			"code":  req.Code,
			"name":  req.Name,
			"stock": req.Stock,
			"price": req.Price,
		},
		"message": fmt.Sprintf("%s created product '%s'", actorName, req.Name),
	})

	return nil
}

func (s *productService) GetAll() ([]model.Product, error) {
	return s.productRepo.FindAll()
}

func (s *productService) GetByID(id uuid.UUID) (*model.Product, error) {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

func (s *productService) Update(id uuid.UUID, req *model.Product, actorName string) (*model.Product, error) {
	existing, err := s.productRepo.FindByID(id)
	if err != nil {
		return nil, ErrProductNotFound
	}

	// Partial update: empty fields keep the stored value
	if req.Code != "" && req.Code != existing.Code {
		other, _ := s.productRepo.FindByCode(req.Code)
		if other != nil && other.ID != existing.ID {
			return nil, ErrProductCodeExists
		}
		existing.Code = req.Code
	}
	if req.Name != "" {
		existing.Name = req.Name
	}
	if !req.Price.IsZero() {
		if req.Price.IsNegative() {
			return nil, errors.New("price must not be negative")
		}
		existing.Price = req.Price
	}
	if req.Stock < 0 {
		return nil, errors.New("stock must not be negative")
	}
	if req.Stock > 0 {
		existing.Stock = req.Stock
	}
	if req.CategoryID != nil {
		if _, err := s.categoryRepo.FindByID(*req.CategoryID); err != nil {
			return nil, ErrCategoryNotFound
		}
		existing.CategoryID = req.CategoryID
	}

	if err := s.productRepo.Update(existing); err != nil {
		return nil, err
	}

	go s.wsHub.BroadcastJSON(map[string]interface{}{
		"type":   "pos_update",
		"action": "product_updated",
		"product": map[string]interface{}{
			"id":    existing.ID,
			"code":  existing.Code,
			"name":  existing.Name,
			"stock": existing.Stock,
			"price": existing.Price,
		},
		"message": fmt.Sprintf("%s updated product '%s'", actorName, existing.Name),
	})

	return existing, nil
}

func (s *productService) Delete(id uuid.UUID) error {
	if _, err := s.productRepo.FindByID(id); err != nil {
		return ErrProductNotFound
	}
	return s.productRepo.Delete(id)
}
