package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/salesdesk/salesdesk/internal/domain"
	"github.com/salesdesk/salesdesk/internal/events"
	"github.com/salesdesk/salesdesk/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(domain.Tables...))
	return db
}

type fixture struct {
	products  *ProductService
	tickets   *TicketService
	analytics *AnalyticsAggregator
	bus       *events.Bus
}

func newFixture(t *testing.T) *fixture {
	db := setupTestDB(t)
	bus := events.NewBus()
	products := NewProductService(repository.NewGormProductRepository(db), bus)
	tickets := NewTicketService(repository.NewGormTicketRepository(db), bus)
	return &fixture{
		products:  products,
		tickets:   tickets,
		analytics: NewAnalyticsAggregator(products, tickets),
		bus:       bus,
	}
}

func pen() domain.Product {
	return domain.Product{Name: "Pen", Price: domain.Amount(1.5), Desc: "Blue pen", ProductType: "stationery"}
}

func TestProductService_CreateAssignsFreshIDs(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	payload := pen()
	payload.ID = "client-supplied"

	seen := map[string]bool{}
	for i := 0; i < 5; i++ {
		p, err := f.products.Create(ctx, payload)
		require.NoError(t, err)
		_, perr := uuid.Parse(p.ID)
		assert.NoError(t, perr)
		assert.NotEqual(t, "client-supplied", p.ID)
		assert.False(t, seen[p.ID], "duplicate id %s", p.ID)
		seen[p.ID] = true
	}
}

func TestProductService_CreateRejectsInvalid(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.products.Create(ctx, domain.Product{Desc: "no name, no price"})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{
		"field name: must not be blank",
		"field price: must not be null",
		"field productType: must not be blank",
	}, verr.Messages())

	rows, err := f.products.SalesByProductType(ctx)
	require.NoError(t, err)
	assert.Empty(t, rows, "rejected payload must not be stored")
}

func TestProductService_Lifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.products.Create(ctx, pen())
	require.NoError(t, err)

	found, err := f.products.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)
	assert.Equal(t, "Pen", found.Name)
	assert.Equal(t, "Blue pen", found.Desc)
	assert.Equal(t, "stationery", found.ProductType)
	assert.InDelta(t, 1.5, *found.Price, 1e-9)

	updated, err := f.products.Update(ctx, created.ID, domain.Product{
		ID:          uuid.NewString(),
		Name:        "Red pen",
		Price:       domain.Amount(2),
		Desc:        "Red ink",
		ProductType: "ignored",
	})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Red pen", updated.Name)
	assert.Equal(t, "stationery", updated.ProductType)

	found, err = f.products.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Red ink", found.Desc)
	assert.InDelta(t, 2, *found.Price, 1e-9)

	require.NoError(t, f.products.Delete(ctx, created.ID))
	_, err = f.products.FindByID(ctx, created.ID)
	assert.True(t, IsNotFound(err))
}

func TestProductService_NotFound(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := uuid.NewString()

	_, err := f.products.FindByID(ctx, id)
	assert.True(t, IsNotFound(err))
	_, err = f.products.Update(ctx, id, pen())
	assert.True(t, IsNotFound(err))
	assert.True(t, IsNotFound(f.products.Delete(ctx, id)))
}

func TestProductService_UpdateRejectsInvalidMerge(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.products.Create(ctx, pen())
	require.NoError(t, err)

	_, err = f.products.Update(ctx, created.ID, domain.Product{Name: "Nameless price"})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)

	found, err := f.products.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Pen", found.Name)
}

func TestProductService_EmitsEvents(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	var topics []string
	require.NoError(t, f.bus.SubscribeAll(func(evt events.Event) {
		topics = append(topics, evt.Topic)
	}, true))

	p, err := f.products.Create(ctx, pen())
	require.NoError(t, err)
	f.bus.Wait()
	_, err = f.products.Update(ctx, p.ID, pen())
	require.NoError(t, err)
	f.bus.Wait()
	require.NoError(t, f.products.Delete(ctx, p.ID))
	f.bus.Wait()

	assert.Equal(t, []string{events.ProductCreated, events.ProductUpdated, events.ProductDeleted}, topics)
}

func TestTicketService_Lifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.tickets.Create(ctx, domain.Ticket{PaymentType: "visa", Total: domain.Amount(20)})
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentVisa, created.PaymentType)
	assert.NotNil(t, created.Products)

	found, err := f.tickets.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)
	assert.InDelta(t, 20, *found.Total, 1e-9)

	all, err := f.tickets.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, created.ID, all[0].ID)

	require.NoError(t, f.tickets.Delete(ctx, created.ID))
	_, err = f.tickets.FindByID(ctx, created.ID)
	assert.True(t, IsNotFound(err))
	assert.True(t, IsNotFound(f.tickets.Delete(ctx, created.ID)))
}

func TestTicketService_CreateRejectsInvalid(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.tickets.Create(ctx, domain.Ticket{
		PaymentType: "bitcoin",
		Total:       domain.Amount(-1),
		Products:    []domain.TicketItem{{ProductID: "nope", Quantity: 0}},
	})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{
		"field paymentType: must be one of VISA, MASTERCARD, AMEX, CASH",
		"field total: must be greater than or equal to 0",
		"field products[0].productId: must be a valid UUID",
		"field products[0].quantity: must be greater than or equal to 1",
	}, verr.Messages())

	all, err := f.tickets.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestAnalyticsAggregator(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	empty, err := f.analytics.Analytics(ctx)
	require.NoError(t, err)
	assert.NotNil(t, empty.SoldProducts)
	assert.NotNil(t, empty.TicketsList)

	_, err = f.products.Create(ctx, pen())
	require.NoError(t, err)
	_, err = f.tickets.Create(ctx, domain.Ticket{PaymentType: "VISA", Total: domain.Amount(20)})
	require.NoError(t, err)

	got, err := f.analytics.Analytics(ctx)
	require.NoError(t, err)
	require.Len(t, got.SoldProducts, 1)
	assert.Equal(t, "stationery", got.SoldProducts[0].ProductType)
	require.Len(t, got.TicketsList, 1)
	assert.Equal(t, domain.TicketProjection{PaymentType: "VISA", Count: 1, Total: 20}, got.TicketsList[0])
}

type slowProducts struct{ delay time.Duration }

func (s slowProducts) SalesByProductType(ctx context.Context) ([]domain.ProductProjection, error) {
	select {
	case <-time.After(s.delay):
		return []domain.ProductProjection{{ProductType: "food", Count: 3, Total: 9}}, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

type failingTickets struct{ err error }

func (f failingTickets) QueryByPaymentType(context.Context) ([]domain.TicketProjection, error) {
	return nil, f.err
}

type staticTickets []domain.TicketProjection

func (s staticTickets) QueryByPaymentType(context.Context) ([]domain.TicketProjection, error) {
	return s, nil
}

func TestAnalyticsAggregator_WaitsForBothQueries(t *testing.T) {
	agg := NewAnalyticsAggregator(slowProducts{delay: 50 * time.Millisecond}, staticTickets{{PaymentType: "CASH", Count: 1, Total: 2}})

	got, err := agg.Analytics(context.Background())
	require.NoError(t, err)
	assert.Len(t, got.SoldProducts, 1, "slow query result must be present")
	assert.Len(t, got.TicketsList, 1)
}

func TestAnalyticsAggregator_PropagatesErrors(t *testing.T) {
	boom := errors.New("store unavailable")
	agg := NewAnalyticsAggregator(slowProducts{delay: time.Second}, failingTickets{err: boom})

	_, err := agg.Analytics(context.Background())
	assert.ErrorIs(t, err, boom)
}
