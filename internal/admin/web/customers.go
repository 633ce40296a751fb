package web

import (
	"net/http"
	"strconv"

	"lotadmin/internal/admin/client"
	"lotadmin/internal/admin/form"
	"lotadmin/internal/registry/model"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// CustomersContent is the body of the customers page.
type CustomersContent struct {
	Customers []model.Customer
	Modal     *CustomerModal
}

// CustomerModal is an open create/edit modal. ID is 0 for a new customer.
type CustomerModal struct {
	ID     int64
	Form   form.CustomerForm
	Errors form.Errors
	Error  string
}

// Action is the URL the modal posts to.
func (m *CustomerModal) Action() string {
	if m.ID == 0 {
		return "/customers"
	}
	return "/customers/" + strconv.FormatInt(m.ID, 10)
}

// CustomersPage handles GET /
func (s *Server) CustomersPage(c echo.Context) error {
	content := CustomersContent{}
	page := PageData{Title: "Customers", Active: navCustomers, Content: &content}

	customers, err := s.registry.ListCustomers(c.Request().Context())
	if err != nil {
		logAPIFailure(c, "list customers", err)
		page.FlashErr = "Не удалось загрузить клиентов: " + apiMessage(err)
		return s.render(c, http.StatusBadGateway, "customers.html", page)
	}
	content.Customers = customers

	switch {
	case c.QueryParam("modal") == "new":
		content.Modal = &CustomerModal{Form: form.NewCustomerForm()}
	case c.QueryParam("edit") != "":
		id, err := strconv.ParseInt(c.QueryParam("edit"), 10, 64)
		if err != nil || id <= 0 {
			page.FlashErr = "Клиент не найден"
			break
		}
		cu, err := s.registry.GetCustomer(c.Request().Context(), id)
		switch {
		case client.IsNotFound(err):
			page.FlashErr = "Клиент не найден"
		case err != nil:
			logAPIFailure(c, "get customer", err)
			page.FlashErr = "Не удалось открыть клиента: " + apiMessage(err)
		default:
			content.Modal = &CustomerModal{ID: id, Form: form.CustomerFormFrom(cu)}
		}
	}

	return s.render(c, http.StatusOK, "customers.html", page)
}

// CreateCustomer handles POST /customers
func (s *Server) CreateCustomer(c echo.Context) error {
	return s.saveCustomer(c, 0)
}

// UpdateCustomer handles POST /customers/:id
func (s *Server) UpdateCustomer(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid customer id")
	}
	return s.saveCustomer(c, id)
}

func (s *Server) saveCustomer(c echo.Context, id int64) error {
	values, err := c.FormParams()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}

	f := form.ParseCustomerForm(values)
	modal := &CustomerModal{ID: id, Form: f}

	// Nothing is sent while the form is invalid.
	if errs := f.Validate(); errs != nil {
		modal.Errors = errs
		return s.customerModalPage(c, http.StatusUnprocessableEntity, modal)
	}

	ctx := c.Request().Context()
	req := f.ToRequest()
	if id == 0 {
		_, err = s.registry.CreateCustomer(ctx, req)
	} else {
		_, err = s.registry.UpdateCustomer(ctx, id, req)
	}
	if err != nil {
		logAPIFailure(c, "save customer", err)
		modal.Errors = f.APIErrors(apiFields(err))
		modal.Error = apiMessage(err)
		return s.customerModalPage(c, saveFailureStatus(err), modal)
	}

	log.Info().Int64("id", id).Str("code", f.CustomerCode).Msg("Customer saved")
	return c.Redirect(http.StatusSeeOther, "/")
}

// customerModalPage re-renders the list with the modal kept open.
func (s *Server) customerModalPage(c echo.Context, status int, modal *CustomerModal) error {
	content := CustomersContent{Modal: modal}
	page := PageData{Title: "Customers", Active: navCustomers, Content: &content}

	customers, err := s.registry.ListCustomers(c.Request().Context())
	if err != nil {
		logAPIFailure(c, "list customers", err)
	}
	content.Customers = customers
	return s.render(c, status, "customers.html", page)
}

// DeleteCustomer handles POST /customers/:id/delete
func (s *Server) DeleteCustomer(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid customer id")
	}

	if err := s.registry.DeleteCustomer(c.Request().Context(), id); err != nil {
		logAPIFailure(c, "delete customer", err)
		flash(c, "flash_err", "Не удалось удалить клиента: "+apiMessage(err))
		return c.Redirect(http.StatusSeeOther, "/")
	}

	log.Info().Int64("id", id).Msg("Customer deleted")
	flash(c, "flash", "Клиент удалён")
	return c.Redirect(http.StatusSeeOther, "/")
}
