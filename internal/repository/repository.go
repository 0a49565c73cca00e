package repository

import (
	"context"
	"errors"

	"github.com/salesdesk/salesdesk/internal/domain"
)

// ErrNotFound is returned when no record matches the requested id.
var ErrNotFound = errors.New("record not found")

// ProductRepository handles storage of products
type ProductRepository interface {
	// Create inserts a new product
	Create(ctx context.Context, p *domain.Product) error

	// Save writes an existing product back
	Save(ctx context.Context, p *domain.Product) error

	// GetByID retrieves a product by ID
	GetByID(ctx context.Context, id string) (*domain.Product, error)

	// Delete removes a product by ID
	Delete(ctx context.Context, id string) error

	// SalesByProductType groups products by product type, ordered by type
	SalesByProductType(ctx context.Context) ([]domain.ProductProjection, error)
}

// TicketRepository handles storage of tickets. Tickets are never updated.
type TicketRepository interface {
	Create(ctx context.Context, t *domain.Ticket) error
	GetByID(ctx context.Context, id string) (*domain.Ticket, error)
	Delete(ctx context.Context, id string) error

	// List returns every ticket, oldest first
	List(ctx context.Context) ([]domain.Ticket, error)

	// CountByPaymentType groups tickets by payment type, ordered by type
	CountByPaymentType(ctx context.Context) ([]domain.TicketProjection, error)
}
