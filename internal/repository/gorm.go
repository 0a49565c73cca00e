package repository

import (
	"context"
	stderrors "errors"

	"github.com/pkg/errors"
	"github.com/salesdesk/salesdesk/internal/domain"
	"gorm.io/gorm"
)

// GormProductRepository is the GORM implementation of ProductRepository
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GORM-based product repository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

func (r *GormProductRepository) Create(ctx context.Context, p *domain.Product) error {
	return errors.Wrap(r.db.WithContext(ctx).Create(p).Error, "create product")
}

func (r *GormProductRepository) Save(ctx context.Context, p *domain.Product) error {
	return errors.Wrap(r.db.WithContext(ctx).Save(p).Error, "save product")
}

func (r *GormProductRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	var p domain.Product
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&p).Error
	if stderrors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, errors.Wrap(err, "query product")
	}
	return &p, nil
}

func (r *GormProductRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Product{})
	if result.Error != nil {
		return errors.Wrap(result.Error, "delete product")
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *GormProductRepository) SalesByProductType(ctx context.Context) ([]domain.ProductProjection, error) {
	rows := make([]domain.ProductProjection, 0)
	err := r.db.WithContext(ctx).Model(&domain.Product{}).
		Select("product_type, COUNT(*) AS count, COALESCE(SUM(price),0) AS total").
		Group("product_type").
		Order("product_type ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, errors.Wrap(err, "aggregate products by type")
	}
	return rows, nil
}

// GormTicketRepository is the GORM implementation of TicketRepository
type GormTicketRepository struct {
	db *gorm.DB
}

// NewGormTicketRepository creates a new GORM-based ticket repository
func NewGormTicketRepository(db *gorm.DB) *GormTicketRepository {
	return &GormTicketRepository{db: db}
}

func (r *GormTicketRepository) Create(ctx context.Context, t *domain.Ticket) error {
	return errors.Wrap(r.db.WithContext(ctx).Create(t).Error, "create ticket")
}

func (r *GormTicketRepository) GetByID(ctx context.Context, id string) (*domain.Ticket, error) {
	var t domain.Ticket
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&t).Error
	if stderrors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, errors.Wrap(err, "query ticket")
	}
	return &t, nil
}

func (r *GormTicketRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Ticket{})
	if result.Error != nil {
		return errors.Wrap(result.Error, "delete ticket")
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *GormTicketRepository) List(ctx context.Context) ([]domain.Ticket, error) {
	tickets := make([]domain.Ticket, 0)
	if err := r.db.WithContext(ctx).Order("created_at ASC, id ASC").Find(&tickets).Error; err != nil {
		return nil, errors.Wrap(err, "list tickets")
	}
	return tickets, nil
}

func (r *GormTicketRepository) CountByPaymentType(ctx context.Context) ([]domain.TicketProjection, error) {
	rows := make([]domain.TicketProjection, 0)
	err := r.db.WithContext(ctx).Model(&domain.Ticket{}).
		Select("payment_type, COUNT(*) AS count, COALESCE(SUM(total),0) AS total").
		Group("payment_type").
		Order("payment_type ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, errors.Wrap(err, "aggregate tickets by payment type")
	}
	return rows, nil
}
