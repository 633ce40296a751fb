package web

import (
	"errors"
	"html/template"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"lotadmin/internal/admin/client"
	"lotadmin/internal/registry/model"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

const (
	navCustomers = "customers"
	navLots      = "lots"
)

// PageData is what the base layout renders.
type PageData struct {
	Title    string
	Active   string
	Flash    string
	FlashErr string
	Content  any
}

func templateFuncMap() template.FuncMap {
	return template.FuncMap{
		"orgKind": func(isOrganization bool) string {
			if isOrganization {
				return "organization"
			}
			return "person"
		},
		"formatDate": func(t time.Time) string {
			if t.IsZero() {
				return ""
			}
			return t.UTC().Format("02.01.2006 15:04")
		},
		"currencies": func() []string { return model.CurrencyOptions },
		"ndsRates":   func() []string { return model.NdsRateOptions },
	}
}

func (s *Server) render(c echo.Context, status int, page string, data PageData) error {
	if cookie, err := c.Cookie("flash"); err == nil {
		data.Flash = readFlash(cookie)
		clearCookie(c, "flash")
	}
	if cookie, err := c.Cookie("flash_err"); err == nil {
		if data.FlashErr == "" {
			data.FlashErr = readFlash(cookie)
		}
		clearCookie(c, "flash_err")
	}
	return c.Render(status, page, data)
}

// flash sets a message shown once on the next page.
func flash(c echo.Context, name, message string) {
	c.SetCookie(&http.Cookie{
		Name:     name,
		Value:    url.QueryEscape(message),
		Path:     "/",
		MaxAge:   60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func readFlash(cookie *http.Cookie) string {
	msg, err := url.QueryUnescape(cookie.Value)
	if err != nil {
		return ""
	}
	return msg
}

func clearCookie(c echo.Context, name string) {
	c.SetCookie(&http.Cookie{Name: name, Path: "/", MaxAge: -1})
}

func pathID(c echo.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// apiMessage turns a registry failure into a banner text.
func apiMessage(err error) string {
	var apiErr *client.APIError
	if !errors.As(err, &apiErr) {
		return "Сервис недоступен, попробуйте позже"
	}
	switch apiErr.Status {
	case http.StatusNotFound:
		return "Запись не найдена"
	case http.StatusConflict:
		if apiErr.Code == "customer_in_use" {
			return "Клиент используется в лотах или дочерних клиентах"
		}
		return "Клиент с таким кодом уже существует"
	case http.StatusUnprocessableEntity:
		if apiErr.Code == "unknown_parent" {
			return "Основной код не найден"
		}
		return "Клиент с таким кодом не найден"
	case http.StatusBadRequest:
		return "Проверьте заполнение полей"
	default:
		return "Ошибка сервиса: " + strconv.Itoa(apiErr.Status)
	}
}

// saveFailureStatus is 502 when the registry could not be reached or failed
// itself, and 422 when it rejected the submitted record.
func saveFailureStatus(err error) int {
	var apiErr *client.APIError
	if !errors.As(err, &apiErr) || apiErr.Status >= http.StatusInternalServerError {
		return http.StatusBadGateway
	}
	return http.StatusUnprocessableEntity
}

// apiFields returns the per-field map of a 400 answer, if any.
func apiFields(err error) map[string]string {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) && apiErr.Status == http.StatusBadRequest {
		return apiErr.Fields
	}
	return nil
}

func logAPIFailure(c echo.Context, op string, err error) {
	log.Error().Err(err).
		Str("op", op).
		Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
		Msg("Registry call failed")
}
