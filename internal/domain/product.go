package domain

import "time"

// Product is a catalogue item that can be sold on a ticket.
type Product struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	Name        string    `gorm:"size:200;index;not null" json:"name"`
	Price       *float64  `gorm:"not null" json:"price"` // main currency units, nil only on undecoded payloads
	Desc        string    `gorm:"size:1000" json:"desc"`
	ProductType string    `gorm:"size:64;index" json:"productType"` // grouping key for analytics
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// TableName returns table name
func (Product) TableName() string {
	return "product"
}

// ProductProjection is the per product type aggregate used by analytics
type ProductProjection struct {
	ProductType string  `json:"productType"`
	Count       int64   `json:"count"`
	Total       float64 `json:"total"`
}
