package domain

import (
	"strings"
	"time"
)

// Payment types accepted on a ticket.
const (
	PaymentVisa       = "VISA"
	PaymentMastercard = "MASTERCARD"
	PaymentAmex       = "AMEX"
	PaymentCash       = "CASH"
)

var PaymentTypes = []string{PaymentVisa, PaymentMastercard, PaymentAmex, PaymentCash}

// IsPaymentType reports whether v is a recognised payment type.
func IsPaymentType(v string) bool {
	for _, p := range PaymentTypes {
		if p == v {
			return true
		}
	}
	return false
}

// NormalizePaymentType trims and upper-cases a client supplied payment type.
func NormalizePaymentType(v string) string {
	return strings.ToUpper(strings.TrimSpace(v))
}

// TicketItem is one purchased line on a ticket.
type TicketItem struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

// Ticket records a sale. Tickets are immutable once created.
type Ticket struct {
	ID          string       `gorm:"primaryKey;size:36" json:"id"`
	PaymentType string       `gorm:"size:32;index;not null" json:"paymentType"`
	Products    []TicketItem `gorm:"type:text;serializer:json" json:"products"`
	Total       *float64     `gorm:"not null" json:"total"`
	CreatedAt   time.Time    `gorm:"index" json:"createdAt"`
}

// TableName returns table name
func (Ticket) TableName() string {
	return "ticket"
}

// TicketProjection is the per payment type aggregate used by analytics
type TicketProjection struct {
	PaymentType string  `json:"paymentType"`
	Count       int64   `json:"count"`
	Total       float64 `json:"total"`
}
