package handler

import (
	"net/http"

	"lotadmin/internal/registry/model"

	"github.com/labstack/echo/v4"
)

// GetCustomers handles GET /api/customers
func (h *RegistryHandler) GetCustomers(c echo.Context) error {
	customers, err := h.Service.ListCustomers(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}
	if customers == nil {
		customers = []*model.Customer{}
	}
	return c.JSON(http.StatusOK, customers)
}

// GetCustomer handles GET /api/customers/:id
func (h *RegistryHandler) GetCustomer(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return badRequest(c, "Invalid customer id")
	}

	customer, err := h.Service.GetCustomer(c.Request().Context(), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, customer)
}

// PostCustomer handles POST /api/customers
func (h *RegistryHandler) PostCustomer(c echo.Context) error {
	var req model.UpsertCustomerReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid body")
	}

	if err := req.Validate(); err != nil {
		code, body := validationError(err)
		return respondError(c, code, body)
	}

	customer, err := h.Service.CreateCustomer(c.Request().Context(), req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, customer)
}

// PutCustomer handles PUT /api/customers/:id
func (h *RegistryHandler) PutCustomer(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return badRequest(c, "Invalid customer id")
	}

	var req model.UpsertCustomerReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid body")
	}

	if err := req.Validate(); err != nil {
		code, body := validationError(err)
		return respondError(c, code, body)
	}

	customer, err := h.Service.UpdateCustomer(c.Request().Context(), id, req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, customer)
}

// DeleteCustomer handles DELETE /api/customers/:id
func (h *RegistryHandler) DeleteCustomer(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return badRequest(c, "Invalid customer id")
	}

	if err := h.Service.DeleteCustomer(c.Request().Context(), id); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
