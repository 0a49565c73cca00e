package repository

import (
	"context"
	"sort"

	jsoniter "github.com/json-iterator/go"
	"github.com/montanaflynn/stats"
	"github.com/pkg/errors"
	"github.com/salesdesk/salesdesk/internal/domain"
	"go.etcd.io/bbolt"
)

var (
	productBucket = []byte("product")
	ticketBucket  = []byte("ticket")
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// InitBoltBuckets creates the buckets used by the bolt repositories.
func InitBoltBuckets(db *bbolt.DB) error {
	return db.Update(func(tx *bbolt.Tx) error {
		for _, name := range [][]byte{productBucket, ticketBucket} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return errors.Wrapf(err, "create bucket %s", name)
			}
		}
		return nil
	})
}

// DropBoltBuckets removes all stored documents.
func DropBoltBuckets(db *bbolt.DB) error {
	return db.Update(func(tx *bbolt.Tx) error {
		for _, name := range [][]byte{productBucket, ticketBucket} {
			if err := tx.DeleteBucket(name); err != nil && !errors.Is(err, bbolt.ErrBucketNotFound) {
				return err
			}
		}
		return nil
	})
}

func boltGet(db *bbolt.DB, bucket []byte, id string, v interface{}) error {
	return db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucket).Get([]byte(id))
		if data == nil {
			return ErrNotFound
		}
		return json.Unmarshal(data, v)
	})
}

func boltPut(db *bbolt.DB, bucket []byte, id string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucket).Put([]byte(id), data)
	})
}

func boltDelete(db *bbolt.DB, bucket []byte, id string) error {
	return db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucket)
		if b.Get([]byte(id)) == nil {
			return ErrNotFound
		}
		return b.Delete([]byte(id))
	})
}

// BoltProductRepository stores products as JSON documents in a bbolt bucket
type BoltProductRepository struct {
	db *bbolt.DB
}

func NewBoltProductRepository(db *bbolt.DB) *BoltProductRepository {
	return &BoltProductRepository{db: db}
}

func (r *BoltProductRepository) Create(_ context.Context, p *domain.Product) error {
	return errors.Wrap(boltPut(r.db, productBucket, p.ID, p), "create product")
}

func (r *BoltProductRepository) Save(_ context.Context, p *domain.Product) error {
	return errors.Wrap(boltPut(r.db, productBucket, p.ID, p), "save product")
}

func (r *BoltProductRepository) GetByID(_ context.Context, id string) (*domain.Product, error) {
	var p domain.Product
	if err := boltGet(r.db, productBucket, id, &p); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, errors.Wrap(err, "query product")
	}
	return &p, nil
}

func (r *BoltProductRepository) Delete(_ context.Context, id string) error {
	if err := boltDelete(r.db, productBucket, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}
		return errors.Wrap(err, "delete product")
	}
	return nil
}

func (r *BoltProductRepository) SalesByProductType(ctx context.Context) ([]domain.ProductProjection, error) {
	prices := make(map[string]stats.Float64Data)
	err := r.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(productBucket).ForEach(func(_, v []byte) error {
			if err := ctx.Err(); err != nil {
				return err
			}
			var p domain.Product
			if err := json.Unmarshal(v, &p); err != nil {
				return err
			}
			prices[p.ProductType] = append(prices[p.ProductType], domain.AmountValue(p.Price))
			return nil
		})
	})
	if err != nil {
		return nil, errors.Wrap(err, "aggregate products by type")
	}

	rows := make([]domain.ProductProjection, 0, len(prices))
	for productType, data := range prices {
		total, _ := stats.Sum(data)
		rows = append(rows, domain.ProductProjection{
			ProductType: productType,
			Count:       int64(data.Len()),
			Total:       total,
		})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].ProductType < rows[j].ProductType })
	return rows, nil
}

// BoltTicketRepository stores tickets as JSON documents in a bbolt bucket
type BoltTicketRepository struct {
	db *bbolt.DB
}

func NewBoltTicketRepository(db *bbolt.DB) *BoltTicketRepository {
	return &BoltTicketRepository{db: db}
}

func (r *BoltTicketRepository) Create(_ context.Context, t *domain.Ticket) error {
	return errors.Wrap(boltPut(r.db, ticketBucket, t.ID, t), "create ticket")
}

func (r *BoltTicketRepository) GetByID(_ context.Context, id string) (*domain.Ticket, error) {
	var t domain.Ticket
	if err := boltGet(r.db, ticketBucket, id, &t); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, errors.Wrap(err, "query ticket")
	}
	return &t, nil
}

func (r *BoltTicketRepository) Delete(_ context.Context, id string) error {
	if err := boltDelete(r.db, ticketBucket, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}
		return errors.Wrap(err, "delete ticket")
	}
	return nil
}

func (r *BoltTicketRepository) List(ctx context.Context) ([]domain.Ticket, error) {
	tickets := make([]domain.Ticket, 0)
	err := r.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(ticketBucket).ForEach(func(_, v []byte) error {
			if err := ctx.Err(); err != nil {
				return err
			}
			var t domain.Ticket
			if err := json.Unmarshal(v, &t); err != nil {
				return err
			}
			tickets = append(tickets, t)
			return nil
		})
	})
	if err != nil {
		return nil, errors.Wrap(err, "list tickets")
	}
	sort.SliceStable(tickets, func(i, j int) bool {
		if tickets[i].CreatedAt.Equal(tickets[j].CreatedAt) {
			return tickets[i].ID < tickets[j].ID
		}
		return tickets[i].CreatedAt.Before(tickets[j].CreatedAt)
	})
	return tickets, nil
}

func (r *BoltTicketRepository) CountByPaymentType(ctx context.Context) ([]domain.TicketProjection, error) {
	totals := make(map[string]stats.Float64Data)
	tickets, err := r.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "aggregate tickets by payment type")
	}
	for _, t := range tickets {
		totals[t.PaymentType] = append(totals[t.PaymentType], domain.AmountValue(t.Total))
	}

	rows := make([]domain.TicketProjection, 0, len(totals))
	for paymentType, data := range totals {
		total, _ := stats.Sum(data)
		rows = append(rows, domain.TicketProjection{
			PaymentType: paymentType,
			Count:       int64(data.Len()),
			Total:       total,
		})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].PaymentType < rows[j].PaymentType })
	return rows, nil
}
