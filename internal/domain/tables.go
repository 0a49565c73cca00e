package domain

var Tables = []interface{}{
	&Product{},
	&Ticket{},
}
