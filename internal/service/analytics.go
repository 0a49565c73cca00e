package service

import (
	"context"

	"github.com/salesdesk/salesdesk/internal/domain"
	"golang.org/x/sync/errgroup"
)

// ProductProjector is the read side of products consumed by analytics
type ProductProjector interface {
	SalesByProductType(ctx context.Context) ([]domain.ProductProjection, error)
}

// TicketProjector is the read side of tickets consumed by analytics
type TicketProjector interface {
	QueryByPaymentType(ctx context.Context) ([]domain.TicketProjection, error)
}

// AnalyticsAggregator joins the product and ticket projections
type AnalyticsAggregator struct {
	products ProductProjector
	tickets  TicketProjector
}

func NewAnalyticsAggregator(products ProductProjector, tickets TicketProjector) *AnalyticsAggregator {
	return &AnalyticsAggregator{products: products, tickets: tickets}
}

// Analytics runs both queries concurrently and returns only once both have finished.
func (a *AnalyticsAggregator) Analytics(ctx context.Context) (*domain.Analytics, error) {
	var (
		sold    []domain.ProductProjection
		tickets []domain.TicketProjection
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		sold, err = a.products.SalesByProductType(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		tickets, err = a.tickets.QueryByPaymentType(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if sold == nil {
		sold = []domain.ProductProjection{}
	}
	if tickets == nil {
		tickets = []domain.TicketProjection{}
	}
	return &domain.Analytics{SoldProducts: sold, TicketsList: tickets}, nil
}
