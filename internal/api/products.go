package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/salesdesk/salesdesk/internal/domain"
	"github.com/salesdesk/salesdesk/internal/webserver"
)

// productPayload is the writable part of a product. Client ids are never read.
type productPayload struct {
	Name        string   `json:"name"`
	Price       *float64 `json:"price"`
	Desc        string   `json:"desc"`
	ProductType string   `json:"productType"`
}

func (p productPayload) toProduct() domain.Product {
	return domain.Product{
		Name:        p.Name,
		Price:       p.Price,
		Desc:        p.Desc,
		ProductType: p.ProductType,
	}
}

// registerProductRoutes registers product CRUD endpoints
func registerProductRoutes() {
	webserver.ApiPOST("/product", createProduct)
	webserver.ApiGET("/product/:id", getProduct)
	webserver.ApiPUT("/product/:id", updateProduct)
	webserver.ApiDELETE("/product/:id", deleteProduct)
}

func createProduct(c echo.Context) error {
	var payload productPayload
	if handled, err := bindPayload(c, &payload); handled {
		return err
	}
	p, err := GetServices(c).Products().Create(c.Request().Context(), payload.toProduct())
	if err != nil {
		return handleServiceError(c, err)
	}
	return created(c, "/product/"+p.ID, p)
}

func getProduct(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return invalidID(c)
	}
	p, err := GetServices(c).Products().FindByID(c.Request().Context(), id)
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

// updateProduct answers 201 like create does, clients depend on it
func updateProduct(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return invalidID(c)
	}
	var payload productPayload
	if handled, err := bindPayload(c, &payload); handled {
		return err
	}
	p, err := GetServices(c).Products().Update(c.Request().Context(), id, payload.toProduct())
	if err != nil {
		return handleServiceError(c, err)
	}
	return created(c, "/product/"+p.ID, p)
}

func deleteProduct(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return invalidID(c)
	}
	if err := GetServices(c).Products().Delete(c.Request().Context(), id); err != nil {
		return handleServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
