package service

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/salesdesk/salesdesk/internal/domain"
)

const (
	maxNameLen        = 200
	maxDescLen        = 1000
	maxProductTypeLen = 64
)

// ValidateProduct checks a product before it is stored
func ValidateProduct(p *domain.Product) []FieldError {
	var errs []FieldError
	switch {
	case strings.TrimSpace(p.Name) == "":
		errs = append(errs, FieldError{"name", "must not be blank"})
	case utf8.RuneCountInString(p.Name) > maxNameLen:
		errs = append(errs, FieldError{"name", fmt.Sprintf("size must be at most %d", maxNameLen)})
	}
	switch {
	case p.Price == nil:
		errs = append(errs, FieldError{"price", "must not be null"})
	case *p.Price < 0:
		errs = append(errs, FieldError{"price", "must be greater than or equal to 0"})
	}
	if utf8.RuneCountInString(p.Desc) > maxDescLen {
		errs = append(errs, FieldError{"desc", fmt.Sprintf("size must be at most %d", maxDescLen)})
	}
	switch {
	case strings.TrimSpace(p.ProductType) == "":
		errs = append(errs, FieldError{"productType", "must not be blank"})
	case utf8.RuneCountInString(p.ProductType) > maxProductTypeLen:
		errs = append(errs, FieldError{"productType", fmt.Sprintf("size must be at most %d", maxProductTypeLen)})
	}
	return errs
}

// ValidateTicket checks a ticket before it is stored
func ValidateTicket(t *domain.Ticket) []FieldError {
	var errs []FieldError
	switch {
	case t.PaymentType == "":
		errs = append(errs, FieldError{"paymentType", "must not be null"})
	case !domain.IsPaymentType(t.PaymentType):
		errs = append(errs, FieldError{"paymentType", "must be one of " + strings.Join(domain.PaymentTypes, ", ")})
	}
	switch {
	case t.Total == nil:
		errs = append(errs, FieldError{"total", "must not be null"})
	case *t.Total < 0:
		errs = append(errs, FieldError{"total", "must be greater than or equal to 0"})
	}
	for i, item := range t.Products {
		field := fmt.Sprintf("products[%d]", i)
		if _, err := uuid.Parse(item.ProductID); err != nil {
			errs = append(errs, FieldError{field + ".productId", "must be a valid UUID"})
		}
		if item.Quantity < 1 {
			errs = append(errs, FieldError{field + ".quantity", "must be greater than or equal to 1"})
		}
		if item.Price < 0 {
			errs = append(errs, FieldError{field + ".price", "must be greater than or equal to 0"})
		}
	}
	return errs
}
