package app

import (
	"context"

	"github.com/salesdesk/salesdesk/internal/domain"
	"go.uber.org/zap"
)

// checkProducts initializes a demo catalogue when no product exists yet
func (a *Application) checkProducts() {
	ctx := context.Background()
	existing, err := a.productService.SalesByProductType(ctx)
	if err != nil {
		zap.L().Error("failed to inspect product catalogue", zap.Error(err))
		return
	}
	if len(existing) > 0 {
		return
	}

	defaultProducts := []domain.Product{
		{Name: "Pen", Price: domain.Amount(1.5), Desc: "Blue pen", ProductType: "stationery"},
		{Name: "Notebook", Price: domain.Amount(4.25), Desc: "A5 squared notebook", ProductType: "stationery"},
		{Name: "Coffee", Price: domain.Amount(1.2), Desc: "Espresso", ProductType: "food"},
		{Name: "USB cable", Price: domain.Amount(7.99), Desc: "USB-C, 1m", ProductType: "electronics"},
	}

	for _, p := range defaultProducts {
		created, err := a.productService.Create(ctx, p)
		if err != nil {
			zap.L().Error("failed to create default product", zap.String("name", p.Name), zap.Error(err))
			continue
		}
		zap.L().Info("initialized default product", zap.String("name", created.Name), zap.String("id", created.ID))
	}
}
