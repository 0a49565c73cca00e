package domain

// Analytics joins both projections. It is built per request and never stored.
type Analytics struct {
	SoldProducts []ProductProjection `json:"soldProducts"`
	TicketsList  []TicketProjection  `json:"ticketsList"`
}
