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

// LotsContent is the body of the lots page.
type LotsContent struct {
	Lots  []model.Lot
	Modal *LotModal
}

// LotModal is an open create/edit modal. ID is 0 for a new lot.
type LotModal struct {
	ID     int64
	Form   form.LotForm
	Errors form.Errors
	Error  string
}

// Action is the URL the modal posts to.
func (m *LotModal) Action() string {
	if m.ID == 0 {
		return "/lots"
	}
	return "/lots/" + strconv.FormatInt(m.ID, 10)
}

// LotsPage handles GET /lots
func (s *Server) LotsPage(c echo.Context) error {
	content := LotsContent{}
	page := PageData{Title: "Lots", Active: navLots, Content: &content}

	lots, err := s.registry.ListLots(c.Request().Context())
	if err != nil {
		logAPIFailure(c, "list lots", err)
		page.FlashErr = "Не удалось загрузить лоты: " + apiMessage(err)
		return s.render(c, http.StatusBadGateway, "lots.html", page)
	}
	content.Lots = lots

	switch {
	case c.QueryParam("modal") == "new":
		content.Modal = &LotModal{Form: form.NewLotForm()}
	case c.QueryParam("edit") != "":
		id, err := strconv.ParseInt(c.QueryParam("edit"), 10, 64)
		if err != nil || id <= 0 {
			page.FlashErr = "Лот не найден"
			break
		}
		l, err := s.registry.GetLot(c.Request().Context(), id)
		switch {
		case client.IsNotFound(err):
			page.FlashErr = "Лот не найден"
		case err != nil:
			logAPIFailure(c, "get lot", err)
			page.FlashErr = "Не удалось открыть лот: " + apiMessage(err)
		default:
			content.Modal = &LotModal{ID: id, Form: form.LotFormFrom(l)}
		}
	}

	return s.render(c, http.StatusOK, "lots.html", page)
}

// CreateLot handles POST /lots
func (s *Server) CreateLot(c echo.Context) error {
	return s.saveLot(c, 0)
}

// UpdateLot handles POST /lots/:id
func (s *Server) UpdateLot(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid lot id")
	}
	return s.saveLot(c, id)
}

func (s *Server) saveLot(c echo.Context, id int64) error {
	values, err := c.FormParams()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}

	f := form.ParseLotForm(values)
	modal := &LotModal{ID: id, Form: f}

	if errs := f.Validate(); errs != nil {
		modal.Errors = errs
		return s.lotModalPage(c, http.StatusUnprocessableEntity, modal)
	}

	ctx := c.Request().Context()
	req := f.ToRequest()
	if id == 0 {
		_, err = s.registry.CreateLot(ctx, req)
	} else {
		_, err = s.registry.UpdateLot(ctx, id, req)
	}
	if err != nil {
		logAPIFailure(c, "save lot", err)
		modal.Errors = f.APIErrors(apiFields(err))
		modal.Error = apiMessage(err)
		return s.lotModalPage(c, saveFailureStatus(err), modal)
	}

	log.Info().Int64("id", id).Str("customer_code", f.CustomerCode).Msg("Lot saved")
	return c.Redirect(http.StatusSeeOther, "/lots")
}

func (s *Server) lotModalPage(c echo.Context, status int, modal *LotModal) error {
	content := LotsContent{Modal: modal}
	page := PageData{Title: "Lots", Active: navLots, Content: &content}

	lots, err := s.registry.ListLots(c.Request().Context())
	if err != nil {
		logAPIFailure(c, "list lots", err)
	}
	content.Lots = lots
	return s.render(c, status, "lots.html", page)
}

// DeleteLot handles POST /lots/:id/delete
func (s *Server) DeleteLot(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid lot id")
	}

	if err := s.registry.DeleteLot(c.Request().Context(), id); err != nil {
		logAPIFailure(c, "delete lot", err)
		flash(c, "flash_err", "Не удалось удалить лот: "+apiMessage(err))
		return c.Redirect(http.StatusSeeOther, "/lots")
	}

	log.Info().Int64("id", id).Msg("Lot deleted")
	flash(c, "flash", "Лот удалён")
	return c.Redirect(http.StatusSeeOther, "/lots")
}
