package domain

// Amount returns a pointer to v, for building Product.Price and Ticket.Total literals.
func Amount(v float64) *float64 {
	return &v
}

// AmountValue dereferences an optional amount, nil reads as zero.
func AmountValue(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
