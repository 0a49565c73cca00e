package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/salesdesk/salesdesk/internal/domain"
	"github.com/salesdesk/salesdesk/internal/events"
	"github.com/salesdesk/salesdesk/internal/repository"
	"go.uber.org/zap"
)

type nopNotifier struct{}

func (nopNotifier) Notify(string, string, interface{}) {}

// ProductService implements create, read, update and delete for products
type ProductService struct {
	repo     repository.ProductRepository
	notifier events.Notifier
}

// NewProductService creates a product service. notifier may be nil.
func NewProductService(repo repository.ProductRepository, notifier events.Notifier) *ProductService {
	if notifier == nil {
		notifier = nopNotifier{}
	}
	return &ProductService{repo: repo, notifier: notifier}
}

// Create assigns a fresh id, validates and stores the product.
// Any id present in the payload is discarded.
func (s *ProductService) Create(ctx context.Context, payload domain.Product) (*domain.Product, error) {
	now := time.Now()
	p := domain.Product{
		ID:          uuid.NewString(),
		Name:        strings.TrimSpace(payload.Name),
		Price:       payload.Price,
		Desc:        strings.TrimSpace(payload.Desc),
		ProductType: strings.TrimSpace(payload.ProductType),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := validationError(ValidateProduct(&p)); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, &p); err != nil {
		return nil, err
	}

	zap.L().Info("product created", zap.String("namespace", "product"), zap.String("id", p.ID))
	s.notifier.Notify(events.ProductCreated, p.ID, p)
	return &p, nil
}

func (s *ProductService) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	return s.repo.GetByID(ctx, id)
}

// Update overwrites name, price and desc of an existing product.
// The id, product type and creation time are kept.
func (s *ProductService) Update(ctx context.Context, id string, payload domain.Product) (*domain.Product, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	p.Name = strings.TrimSpace(payload.Name)
	p.Price = payload.Price
	p.Desc = strings.TrimSpace(payload.Desc)
	p.UpdatedAt = time.Now()
	if err := validationError(ValidateProduct(p)); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, p); err != nil {
		return nil, err
	}

	zap.L().Info("product updated", zap.String("namespace", "product"), zap.String("id", p.ID))
	s.notifier.Notify(events.ProductUpdated, p.ID, p)
	return p, nil
}

func (s *ProductService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	zap.L().Info("product deleted", zap.String("namespace", "product"), zap.String("id", id))
	s.notifier.Notify(events.ProductDeleted, id, nil)
	return nil
}

// SalesByProductType returns the product projection used by analytics
func (s *ProductService) SalesByProductType(ctx context.Context) ([]domain.ProductProjection, error) {
	return s.repo.SalesByProductType(ctx)
}
