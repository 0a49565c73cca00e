package api

import (
	"net/http"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/labstack/echo/v4"
	"github.com/salesdesk/salesdesk/internal/domain"
	"github.com/salesdesk/salesdesk/internal/webserver"
)

type ticketPayload struct {
	PaymentType string              `json:"paymentType"`
	Products    []domain.TicketItem `json:"products"`
	Total       *float64            `json:"total"`
}

type ticketCSVRow struct {
	ID          string  `csv:"id"`
	PaymentType string  `csv:"payment_type"`
	Total       float64 `csv:"total"`
	Items       int     `csv:"items"`
	CreatedAt   string  `csv:"created_at"`
}

// registerTicketRoutes registers ticket endpoints. Tickets cannot be updated.
func registerTicketRoutes() {
	webserver.ApiGET("/ticket", listTickets)
	webserver.ApiGET("/ticket/analytics", getAnalytics)
	webserver.ApiGET("/ticket/export", exportTickets)
	webserver.ApiGET("/ticket/:id", getTicket)
	webserver.ApiPOST("/ticket", createTicket)
	webserver.ApiDELETE("/ticket/:id", deleteTicket)
}

func createTicket(c echo.Context) error {
	var payload ticketPayload
	if handled, err := bindPayload(c, &payload); handled {
		return err
	}
	t, err := GetServices(c).Tickets().Create(c.Request().Context(), domain.Ticket{
		PaymentType: payload.PaymentType,
		Products:    payload.Products,
		Total:       payload.Total,
	})
	if err != nil {
		return handleServiceError(c, err)
	}
	return created(c, "/ticket/"+t.ID, t)
}

func getTicket(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return invalidID(c)
	}
	t, err := GetServices(c).Tickets().FindByID(c.Request().Context(), id)
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.JSON(http.StatusOK, t)
}

func deleteTicket(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return invalidID(c)
	}
	if err := GetServices(c).Tickets().Delete(c.Request().Context(), id); err != nil {
		return handleServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func listTickets(c echo.Context) error {
	tickets, err := GetServices(c).Tickets().ListAll(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tickets)
}

func getAnalytics(c echo.Context) error {
	analytics, err := GetServices(c).Analytics().Analytics(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, analytics)
}

// exportTickets renders every ticket as CSV
func exportTickets(c echo.Context) error {
	tickets, err := GetServices(c).Tickets().ListAll(c.Request().Context())
	if err != nil {
		return err
	}
	rows := make([]ticketCSVRow, 0, len(tickets))
	for _, t := range tickets {
		rows = append(rows, ticketCSVRow{
			ID:          t.ID,
			PaymentType: t.PaymentType,
			Total:       domain.AmountValue(t.Total),
			Items:       len(t.Products),
			CreatedAt:   t.CreatedAt.Format(time.RFC3339),
		})
	}
	data, err := gocsv.MarshalBytes(&rows)
	if err != nil {
		return err
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="tickets.csv"`)
	return c.Blob(http.StatusOK, "text/csv; charset=utf-8", data)
}
