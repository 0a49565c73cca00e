package api

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/salesdesk/salesdesk/internal/app"
	"github.com/salesdesk/salesdesk/internal/service"
	"github.com/salesdesk/salesdesk/internal/webserver"
)

// Init registers every route on the global web server
func Init() {
	registerProductRoutes()
	registerTicketRoutes()
}

// GetServices returns the services stored in the request context by the web server
func GetServices(c echo.Context) app.ServiceProvider {
	return c.Get(webserver.AppContextKey).(app.ServiceProvider)
}

// parseIDParam reads a UUID path parameter and returns it in canonical form
func parseIDParam(c echo.Context, name string) (string, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

func invalidID(c echo.Context) error {
	return c.JSON(http.StatusBadRequest, []string{"field id: must be a valid UUID"})
}

// bindPayload decodes the JSON body. Malformed bodies are answered here and
// reported back as handled, other binder errors go to the error handler.
func bindPayload(c echo.Context, payload interface{}) (bool, error) {
	err := c.Bind(payload)
	if err == nil {
		return false, nil
	}
	var he *echo.HTTPError
	if errors.As(err, &he) && he.Code == http.StatusBadRequest {
		return true, c.JSON(http.StatusBadRequest, []string{"field body: cannot be parsed as JSON"})
	}
	return true, err
}

// created answers 201 with a Location header pointing at the resource
func created(c echo.Context, location string, body interface{}) error {
	c.Response().Header().Set(echo.HeaderLocation, location)
	return c.JSON(http.StatusCreated, body)
}

// handleServiceError maps service errors onto the HTTP contract
func handleServiceError(c echo.Context, err error) error {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		return c.JSON(http.StatusBadRequest, verr.Messages())
	case service.IsNotFound(err):
		return c.NoContent(http.StatusNotFound)
	default:
		return err
	}
}
